package security

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// compared against when the username is unknown so a failed login costs the same either way
var dummyHash = sync.OnceValue(func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	return string(h)
})

// VerifyLogin reports whether plain matches hash. An empty hash (no such user)
// still pays for one bcrypt comparison and always fails.
func VerifyLogin(hash, plain string) bool {
	if hash == "" {
		_ = CheckPassword(dummyHash(), plain)
		return false
	}

	return CheckPassword(hash, plain) == nil
}
