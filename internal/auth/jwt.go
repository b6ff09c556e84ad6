// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/knguyen-dev/account-service/internal/config"
	"github.com/knguyen-dev/account-service/internal/core"
	"github.com/knguyen-dev/account-service/internal/middleware"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTManager signs and verifies the token pair. The two keys are distinct
// by construction (config validation rejects equal secrets): an access key
// can never verify a refresh token and vice versa.
type JWTManager struct {
	accessKey  jwk.Key
	refreshKey jwk.Key
	config     config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	accessKey, err := jwk.Import([]byte(cfg.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("import access key: %w", err)
	}

	refreshKey, err := jwk.Import([]byte(cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("import refresh key: %w", err)
	}

	return &JWTManager{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		config:     cfg,
	}, nil
}

func (m *JWTManager) IssueAccessToken(userID int64, role string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Subject(strconv.FormatInt(userID, 10)).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(m.config.AccessTokenExpire)).
		Claim("role", role).
		Claim("type", tokenTypeAccess).
		Build()
	if err != nil {
		return "", fmt.Errorf("build access token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.accessKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return string(signed), nil
}

func (m *JWTManager) IssueRefreshToken(userID int64) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Subject(strconv.FormatInt(userID, 10)).
		IssuedAt(now).
		Expiration(now.Add(m.config.RefreshTokenExpire)).
		Claim("type", tokenTypeRefresh).
		Build()
	if err != nil {
		return "", fmt.Errorf("build refresh token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.refreshKey))
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}

	return string(signed), nil
}

// IssuePair mints both tokens together; refresh always returns a brand-new
// pair rather than only a fresh access token.
func (m *JWTManager) IssuePair(userID int64, role string) (*TokenPair, error) {
	access, err := m.IssueAccessToken(userID, role)
	if err != nil {
		return nil, err
	}

	refresh, err := m.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *JWTManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := m.parse(tokenString, m.accessKey)
	if err != nil {
		return nil, err
	}

	if err := requireTokenType(token, tokenTypeAccess); err != nil {
		return nil, err
	}

	userID, err := subjectID(token)
	if err != nil {
		return nil, err
	}

	var role string
	if err := token.Get("role", &role); err != nil || role == "" {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID: userID,
		Role:   role,
	}, nil
}

// VerifyRefreshToken validates against the refresh key and returns the
// subject user id.
func (m *JWTManager) VerifyRefreshToken(
	ctx context.Context,
	tokenString string,
) (int64, error) {
	token, err := m.parse(tokenString, m.refreshKey)
	if err != nil {
		return 0, err
	}

	if err := requireTokenType(token, tokenTypeRefresh); err != nil {
		return 0, err
	}

	return subjectID(token)
}

func (m *JWTManager) parse(tokenString string, key jwk.Key) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
	)
	if err != nil {
		// Only a genuinely expired token reports expiry; every other
		// validation failure (signature, issuer, malformed) is invalid.
		if errors.Is(err, jwt.TokenExpiredError()) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return token, nil
}

func requireTokenType(token jwt.Token, want string) error {
	var tokenType string
	if err := token.Get("type", &tokenType); err != nil || tokenType != want {
		return fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}
	return nil
}

func subjectID(token jwt.Token) (int64, error) {
	subject, ok := token.Subject()
	if !ok || subject == "" {
		return 0, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf(
			"verify token: malformed subject: %w",
			core.ErrTokenInvalid,
		)
	}

	return id, nil
}
