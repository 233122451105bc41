package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var MongoConn *mongo.Client

var DBName = "attendance-tracker"

const (
	UserCollection       = "users"
	AttendanceCollection = "attendances"
	DepartmentCollection = "departments"
	QRCodeCollection     = "qr_codes"
)

func MongoConnect(cfg *AppConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoString))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	zap.L().Info("connected to MongoDB", zap.String("db", cfg.DBName))
	MongoConn = client
	DBName = cfg.DBName
	return nil
}

// GetCollection panics when called before MongoConnect.
func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		panic("MongoDB client is not initialised, call MongoConnect first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the data model relies on.
func EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		AttendanceCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_day_unique"),
			},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		DepartmentCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		QRCodeCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := GetCollection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func DisconnectDB() {
	if MongoConn == nil {
		return
	}
	if err := MongoConn.Disconnect(context.Background()); err != nil {
		zap.L().Error("error disconnecting from MongoDB", zap.Error(err))
		return
	}
	zap.L().Info("disconnected from MongoDB")
}
