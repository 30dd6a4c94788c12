package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates every stored hash.
const (
	hashTime    = 1
	hashMemory  = 64 * 1024
	hashThreads = 4
	hashKeyLen  = 32
	saltLen     = 16
)

func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPassword derives a key from password and salt. Same inputs, same output.
func HashPassword(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), hashTime, hashMemory, hashThreads, hashKeyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}

func ValidatePassword(entered, stored, salt string) bool {
	derived := HashPassword(entered, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(stored)) == 1
}
