package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSecret(t *testing.T) {
	raw := []byte(strings.Repeat("k", 32))

	for name, enc := range map[string]*base64.Encoding{
		"url":     base64.URLEncoding,
		"raw url": base64.RawURLEncoding,
		"std":     base64.StdEncoding,
	} {
		t.Run(name, func(t *testing.T) {
			key, err := DecodeSecret(enc.EncodeToString(raw))
			require.NoError(t, err)
			assert.Equal(t, raw, key)
		})
	}

	_, err := DecodeSecret(base64.URLEncoding.EncodeToString([]byte("short")))
	assert.ErrorContains(t, err, "32 bytes")

	_, err = DecodeSecret("!!not base64!!")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PASETO_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "Asia/Jakarta", cfg.Location.String())
	assert.True(t, cfg.GeneratedSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)

	_, err = DecodeSecret(cfg.PasetoSecret)
	assert.NoError(t, err)
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}
