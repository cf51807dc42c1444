package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns the bcrypt hash of plain using the given cost.
func Hash(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A malformed hash never matches.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
