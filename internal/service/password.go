package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"

	"github.com/kiddoland/backend/internal/model"
)

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLength  = 32
	pbkdf2SaltLength = 16
)

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// HashPBKDF2 derives a PBKDF2-SHA256 hash with a fresh random salt, the format accepted
// by password_hash/password_salt entries in the users file.
func HashPBKDF2(password string) (hash, salt []byte, err error) {
	salt = make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return derivePBKDF2(password, salt, pbkdf2KeyLength), salt, nil
}

func derivePBKDF2(password string, salt []byte, keyLen int) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(user *model.User, password string) bool {
	if len(user.PBKDF2Hash) > 0 {
		candidate := derivePBKDF2(password, user.PBKDF2Salt, len(user.PBKDF2Hash))
		return subtle.ConstantTimeCompare(candidate, user.PBKDF2Hash) == 1
	}
	if user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
