package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/health_account/internal/apperr"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type Bcrypt struct {
	Cost int
}

func NewBcrypt() *Bcrypt { return &Bcrypt{Cost: bcrypt.DefaultCost} }

func (b *Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation("Password must be at most %d bytes", MaxPasswordBytes)
	}
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
