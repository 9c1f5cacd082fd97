package server

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// adminTokenTTL bounds how long an issued admin session stays valid.
const adminTokenTTL = 12 * time.Hour

// adminRole is the only role the assessment service issues tokens for.
const adminRole = "admin"

var errInvalidCredentials = errors.New("invalid credentials")

// adminClaims is the token payload for an authenticated administrator.
type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// checkAdminPassword compares a login attempt against the configured
// password. A bcrypt hash is recognized by its prefix; anything else is
// treated as a plaintext secret and compared in constant time.
func checkAdminPassword(configured, attempt string) error {
	if configured == "" {
		return errInvalidCredentials
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		if err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(attempt)); err != nil {
			return errInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(configured), []byte(attempt)) != 1 {
		return errInvalidCredentials
	}
	return nil
}

// issueAdminToken signs a fresh HS256 admin token.
func issueAdminToken(secret string, now time.Time) (string, error) {
	claims := adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateAdminToken parses and verifies a token string, returning its
// claims when the signature, expiry, and role all check out.
func validateAdminToken(secret, tokenStr string) (*adminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &adminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || claims.Role != adminRole {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
