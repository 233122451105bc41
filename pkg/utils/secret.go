package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenKeySize is the symmetric key length required by PASETO v2 local tokens.
const TokenKeySize = 32

// GenerateTokenSecret returns a fresh random token key, URL-safe base64 encoded.
func GenerateTokenSecret() (string, error) {
	key := make([]byte, TokenKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return base64.URLEncoding.EncodeToString(key), nil
}
