// Package password hashes account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for new hashes.
const Cost = bcrypt.DefaultCost

// MaxLength is the longest input bcrypt accepts, in bytes.
const MaxLength = 72

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > MaxLength:
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, bcrypt.ErrPasswordTooLong)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword when plain does not match hash.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}
}

// NeedsRehash reports whether hash was produced with a weaker cost than Cost.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))

	return err == nil && cost < Cost
}
