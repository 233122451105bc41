package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-tracker/config"
	"attendance-tracker/models"
)

type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) error
	FindByCode(ctx context.Context, code string) (*models.QRCode, error)
	FindActive(ctx context.Context, day, now time.Time) (*models.QRCode, error)
	RecordScan(ctx context.Context, id, userID primitive.ObjectID) error
}

type qrCodeRepository struct {
	collection *mongo.Collection
}

func NewQRCodeRepository() QRCodeRepository {
	return &qrCodeRepository{
		collection: config.GetCollection(config.QRCodeCollection),
	}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	if qr.ID.IsZero() {
		qr.ID = primitive.NewObjectID()
	}
	if qr.ScannedBy == nil {
		qr.ScannedBy = []primitive.ObjectID{}
	}
	if _, err := r.collection.InsertOne(ctx, qr); err != nil {
		return fmt.Errorf("failed to create QR code: %w", err)
	}
	return nil
}

func (r *qrCodeRepository) FindByCode(ctx context.Context, code string) (*models.QRCode, error) {
	var qr models.QRCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&qr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find QR code: %w", err)
	}
	return &qr, nil
}

// FindActive returns the newest code issued for day that has not expired at now.
func (r *qrCodeRepository) FindActive(ctx context.Context, day, now time.Time) (*models.QRCode, error) {
	filter := bson.M{
		"date":       day,
		"expires_at": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var qr models.QRCode
	err := r.collection.FindOne(ctx, filter, opts).Decode(&qr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active QR code: %w", err)
	}
	return &qr, nil
}

func (r *qrCodeRepository) RecordScan(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"scanned_by": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to record QR scan: %w", err)
	}
	return nil
}
