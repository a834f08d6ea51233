// Package password hides how roster secrets are stored and compared.
package password

import (
	"crypto/subtle"
	"fmt"

	"go-leave/internal/config"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=password.go -destination=mock/password_mock.go -package=mock
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(stored, given string) bool
}

// Plaintext stores secrets as given. It matches rosters imported from
// spreadsheets that carry clear-text passwords and is not safe for
// production use.
type Plaintext struct{}

func (Plaintext) Hash(secret string) (string, error) {
	return secret, nil
}

func (Plaintext) Verify(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (Bcrypt) Verify(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}

func New(cfg config.AuthConfig) (Hasher, error) {
	switch cfg.PasswordMode {
	case "", config.PasswordModePlaintext:
		return Plaintext{}, nil
	case config.PasswordModeBcrypt:
		return Bcrypt{Cost: cfg.BcryptCost}, nil
	}
	return nil, fmt.Errorf("unsupported password mode %q", cfg.PasswordMode)
}
