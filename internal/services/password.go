package services

import "golang.org/x/crypto/bcrypt"

// HashPassword generates the bcrypt hash for a password. It errors if the
// password is longer than 72 bytes.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword returns an error if password does not resolve to hash.
func ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
