// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Environment: "development"},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{URL: "postgres://localhost/accounts"},
		Redis:    RedisConfig{URL: "redis://localhost:6379"},
		JWT: JWTConfig{
			AccessSecret:       "access-secret",
			RefreshSecret:      "refresh-secret",
			AccessTokenExpire:  15 * time.Minute,
			RefreshTokenExpire: 168 * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowCredentials: true,
		},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateRequiresBothJWTSecrets(t *testing.T) {
	c := validConfig()
	c.JWT.AccessSecret = ""
	assert.Error(t, Validate(c))

	c = validConfig()
	c.JWT.RefreshSecret = ""
	assert.Error(t, Validate(c))
}

// The two signing secrets must differ, otherwise an access token could be
// replayed as a refresh token.
func TestValidateRejectsEqualJWTSecrets(t *testing.T) {
	c := validConfig()
	c.JWT.RefreshSecret = c.JWT.AccessSecret
	assert.Error(t, Validate(c))
}

func TestValidateRejectsNonPositiveExpiry(t *testing.T) {
	c := validConfig()
	c.JWT.AccessTokenExpire = 0
	assert.Error(t, Validate(c))
}

func TestValidateRejectsWildcardWithCredentials(t *testing.T) {
	c := validConfig()
	c.CORS.AllowedOrigins = []string{"*"}
	assert.Error(t, Validate(c))
}

func TestValidateRequiresURLs(t *testing.T) {
	c := validConfig()
	c.Database.URL = ""
	assert.Error(t, Validate(c))

	c = validConfig()
	c.Redis.URL = ""
	assert.Error(t, Validate(c))
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", s.Address())
}

func TestEnvironmentHelpers(t *testing.T) {
	c := validConfig()
	assert.True(t, c.IsDevelopment())
	assert.False(t, c.IsProduction())

	c.App.Environment = "production"
	assert.True(t, c.IsProduction())
}
