package session

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HasherPlain  = "plain"
	HasherBcrypt = "bcrypt"
)

// PasswordHasher turns a password into its stored form and checks a
// candidate against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) bool
}

// NewHasher picks a hasher by name; "" selects the plain hasher.
func NewHasher(name string) (PasswordHasher, error) {
	switch name {
	case "", HasherPlain:
		return PlainHasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownHasher, name)
	}
}

// PlainHasher stores passwords verbatim and compares them exactly.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Matches(stored, password string) bool {
	return stored == password
}

type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	return string(bytes), err
}

func (b BcryptHasher) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
