// Package auth implements the single-admin credential scheme: a shared
// secret exchanged for a signed, time-limited bearer token.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned when the supplied password does not match.
var ErrInvalidCredentials = errors.New("invalid password")

// ErrInvalidToken is returned when a token fails signature or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and verifies admin tokens. Stateless apart from the two
// configured secrets; tokens cannot be revoked before expiry.
type Service struct {
	jwtSecret     []byte
	adminPassword string
}

// NewService creates an auth Service from the configured secrets.
func NewService(jwtSecret, adminPassword string) *Service {
	return &Service{jwtSecret: []byte(jwtSecret), adminPassword: adminPassword}
}

// Login compares password against the admin secret and, on match, returns a
// signed token valid for 24 hours.
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry of a token and returns the embedded role.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return role, nil
}
