package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and verifies passwords.
type Credentials struct {
	cost int
}

// NewCredentials uses bcrypt.DefaultCost when cost is 0.
func NewCredentials(cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify returns an authentication error when password does not match hash.
func (c *Credentials) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return Authentication(MsgInvalidCredentials)
	default:
		return &Error{Kind: KindAuthentication, Message: MsgInvalidCredentials, Err: err}
	}
}
