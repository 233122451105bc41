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
	"attendance-tracker/pkg/attendance"
)

// AttendanceFilter narrows a range query. Zero values leave that dimension open.
type AttendanceFilter struct {
	UserID *primitive.ObjectID
	Start  time.Time
	End    time.Time
	Status models.AttendanceStatus
}

func (f AttendanceFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.UserID != nil {
		filter["user_id"] = *f.UserID
	}
	date := bson.M{}
	if !f.Start.IsZero() {
		date["$gte"] = f.Start
	}
	if !f.End.IsZero() {
		date["$lte"] = f.End
	}
	if len(date) > 0 {
		filter["date"] = date
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

type AttendanceRepository interface {
	attendance.Store

	Find(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error)
	FindWithUsers(ctx context.Context, f AttendanceFilter) ([]models.AttendanceWithUser, error)
	InsertMany(ctx context.Context, records []models.Attendance) error
	DeleteAll(ctx context.Context) error
}

type attendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		collection: config.GetCollection(config.AttendanceCollection),
	}
}

func (r *attendanceRepository) FindDay(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*models.Attendance, error) {
	var rec models.Attendance
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": start, "$lte": end},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance for day: %w", err)
	}
	return &rec, nil
}

func (r *attendanceRepository) Insert(ctx context.Context, rec *models.Attendance) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return attendance.ErrDuplicateDay
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) MarkCheckIn(ctx context.Context, id primitive.ObjectID, checkIn time.Time, status models.AttendanceStatus) (*models.Attendance, error) {
	filter := bson.M{"_id": id, "check_in_time": nil}
	update := bson.M{"$set": bson.M{
		"check_in_time": checkIn,
		"status":        status,
		"updated_at":    checkIn,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *attendanceRepository) MarkCheckOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, status models.AttendanceStatus, hours float64) (*models.Attendance, error) {
	filter := bson.M{
		"_id":            id,
		"check_in_time":  bson.M{"$ne": nil},
		"check_out_time": nil,
	}
	update := bson.M{"$set": bson.M{
		"check_out_time": checkOut,
		"status":         status,
		"total_hours":    hours,
		"updated_at":     checkOut,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// findOneAndUpdate returns nil, nil when the filter matched nothing.
func (r *attendanceRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Attendance, error) {
	var rec models.Attendance
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	return &rec, nil
}

func (r *attendanceRepository) Find(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, f.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Attendance{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) FindWithUsers(ctx context.Context, f AttendanceFilter) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.toBSON()}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "check_in_time", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "user.password", Value: 0},
			{Key: "user.role", Value: 0},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance with users: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.AttendanceWithUser{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance with users: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) InsertMany(ctx context.Context, records []models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i := range records {
		if records[i].ID.IsZero() {
			records[i].ID = primitive.NewObjectID()
		}
		docs[i] = records[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear attendance: %w", err)
	}
	return nil
}
