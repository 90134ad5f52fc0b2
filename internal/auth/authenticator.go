// Package auth checks the single admin credential pair.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dogao/cardapio/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// Authenticator verifies the admin username and bcrypt-hashed password
type Authenticator struct {
	username string
	hash     []byte
}

// NewAuthenticator builds an Authenticator from configuration.
// A plain-text password is hashed once here and never kept.
func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		generated, err := HashPassword(cfg.Password)
		if err != nil {
			return nil, err
		}
		hash = []byte(generated)
	}

	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}

	return &Authenticator{username: cfg.Username, hash: hash}, nil
}

// Verify reports whether the credentials match the admin account
func (a *Authenticator) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// compare the password even for a wrong username so both paths cost the same
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return userOK && passOK
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
