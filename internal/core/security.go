// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"unicode"
)

const (
	// SaltLength matches the 64-character salts issued by every observed
	// account, so old and new credentials stay interchangeable.
	SaltLength = 64

	// TokenLength is the size of opaque session tokens. A token is pure
	// entropy; it means nothing until matched against a stored user row.
	TokenLength = 64
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomString draws length characters from the token alphabet using
// crypto/rand with rejection sampling, so no character is favored.
func randomString(length int) (string, error) {
	out := make([]byte, length)
	// largest multiple of len(alphabet) below 256
	maxByte := byte(256 - (256 % len(tokenAlphabet)))

	buf := make([]byte, length)
	i := 0
	for i < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= maxByte {
				continue
			}
			out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
			i++
			if i == length {
				break
			}
		}
	}

	return string(out), nil
}

func GenerateSalt() (string, error) {
	return randomString(SaltLength)
}

func GenerateSessionToken() (string, error) {
	return randomString(TokenLength)
}

// HashPassword computes the credential digest: hex(SHA-256(password || salt)).
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func VerifyPassword(password, salt, storedHash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(
		[]byte(computed),
		[]byte(storedHash),
	) == 1
}

// CheckPasswordPolicy enforces the signup complexity policy: at least 8
// characters with upper, lower, digit and symbol classes all present.
func CheckPasswordPolicy(password string) error {
	if len(password) < 8 {
		return ValidationError("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ValidationError(
			"password must contain upper and lower case letters, a digit and a symbol",
		)
	}

	return nil
}
