package paseto

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"attendance-tracker/models"
)

func testKey() []byte {
	return bytes.Repeat([]byte{7}, 32)
}

func TestMaker_RoundTrip(t *testing.T) {
	m, err := NewMaker(testKey(), time.Hour)
	require.NoError(t, err)

	user := &models.User{ID: primitive.NewObjectID(), Email: "john@company.com", Role: models.RoleEmployee}
	token, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestMaker_Expired(t *testing.T) {
	m, err := NewMaker(testKey(), time.Hour)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.GenerateToken(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestMaker_WrongKey(t *testing.T) {
	m, err := NewMaker(testKey(), time.Hour)
	require.NoError(t, err)
	token, err := m.GenerateToken(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	other, err := NewMaker(bytes.Repeat([]byte{9}, 32), time.Hour)
	require.NoError(t, err)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewMaker_RejectsShortKey(t *testing.T) {
	_, err := NewMaker([]byte("short"), time.Hour)
	assert.Error(t, err)
}
