package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode is the day's check-in code shown at the office entrance.
type QRCode struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string               `json:"code" bson:"code"`
	Date      time.Time            `json:"date" bson:"date"`
	ExpiresAt time.Time            `json:"expires_at" bson:"expires_at"`
	ScannedBy []primitive.ObjectID `json:"scanned_by" bson:"scanned_by"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

type QRCodeScanPayload struct {
	QRCodeValue string `json:"qr_code_value" validate:"required"`
}
