// AngelaMos | 2026
// security.go

package core

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt embeds a random per-hash salt and an adaptive cost factor, so
// identical passwords never share a digest.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored digest. A
// mismatch or a malformed digest both return false; it never panics.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(encodedHash),
		[]byte(password),
	) == nil
}

var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

// VerifyPasswordTimingSafe verifies against a dummy digest when no stored
// hash exists, so login latency does not reveal whether the account exists.
func VerifyPasswordTimingSafe(password string, encodedHash *string) bool {
	hashToVerify := dummyHash
	if encodedHash != nil && *encodedHash != "" {
		hashToVerify = *encodedHash
	}

	valid := VerifyPassword(password, hashToVerify)

	if encodedHash == nil || *encodedHash == "" {
		return false
	}

	return valid
}
