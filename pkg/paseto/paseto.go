package paseto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"attendance-tracker/models"
)

const footer = "attendance-tracker"

// Maker issues and checks PASETO v2 local tokens.
type Maker struct {
	v2  *paseto.V2
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewMaker(key []byte, ttl time.Duration) (*Maker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("paseto key must be exactly 32 bytes, got %d", len(key))
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Maker{v2: paseto.NewV2(), key: key, ttl: ttl, now: time.Now}, nil
}

func (m *Maker) GenerateToken(user *models.User) (string, error) {
	now := m.now()

	token := paseto.JSONToken{
		Jti:        uuid.NewString(),
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		Expiration: now.Add(m.ttl),
		NotBefore:  now,
	}
	token.Set("user_id", user.ID.Hex())
	token.Set("email", user.Email)
	token.Set("role", user.Role)

	return m.v2.Encrypt(m.key, token, footer)
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var f string

	if err := m.v2.Decrypt(tokenString, m.key, &token, &f); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}
	if err := token.Validate(paseto.ValidAt(m.now())); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	objectID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %w", err)
	}

	return &models.Claims{
		UserID: objectID,
		Email:  token.Get("email"),
		Role:   token.Get("role"),
	}, nil
}
