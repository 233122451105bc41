package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenSecret(t *testing.T) {
	a, err := GenerateTokenSecret()
	require.NoError(t, err)
	b, err := GenerateTokenSecret()
	require.NoError(t, err)

	key, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, key, TokenKeySize)
	assert.NotEqual(t, a, b)
}
