package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string, cost int) (string, error) {
	if len(password) < PasswordMinLength {
		return "", errors.New("password too short")
	}
	if len(password) > PasswordMaxLength {
		return "", errors.New("password too long")
	}
	if cost == 0 {
		cost = BcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword reports whether the plaintext candidate matches the stored hash.
func ComparePassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
