// Package hasher provides password hashing helpers on top of bcrypt.
package hasher

import (
	"github.com/code19m/errx"
	"golang.org/x/crypto/bcrypt"
)

// Hash returns the bcrypt hash of the password at the default cost.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errx.Wrap(err)
	}
	return string(hash), nil
}

// Compare reports whether the password matches the hash.
func Compare(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
