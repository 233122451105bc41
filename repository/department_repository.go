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

var ErrDepartmentExists = errors.New("department name already exists")

type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetAll(ctx context.Context) ([]models.Department, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
}

type departmentRepository struct {
	collection *mongo.Collection
}

func NewDepartmentRepository() DepartmentRepository {
	return &departmentRepository{
		collection: config.GetCollection(config.DepartmentCollection),
	}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	department.ID = primitive.NewObjectID()
	department.CreatedAt = time.Now()
	department.UpdatedAt = department.CreatedAt

	if _, err := r.collection.InsertOne(ctx, department); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDepartmentExists
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find departments: %w", err)
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err = cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	return departments, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&department)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find department by name: %w", err)
	}
	return &department, nil
}
