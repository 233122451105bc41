package seeder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/password"
	"attendance-tracker/repository"
)

const DefaultPassword = "password123"

var SeedUsersData = []models.User{
	{Name: "John Doe", Email: "john@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1001", Department: "Engineering"},
	{Name: "Jane Smith", Email: "jane@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1002", Department: "Marketing"},
	{Name: "Bob Johnson", Email: "bob@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1003", Department: "Sales"},
	{Name: "Alice Williams", Email: "alice@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1004", Department: "HR"},
	{Name: "Charlie Brown", Email: "charlie@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1005", Department: "Engineering"},
	{Name: "Manager One", Email: "manager@example.com", Role: models.RoleManager, EmployeeID: "MGR1001", Department: "Management"},
}

// SeedUsers clears the users collection and recreates SeedUsersData.
func SeedUsers(ctx context.Context, userRepo repository.UserRepository, logger *zap.Logger) ([]models.User, error) {
	if err := userRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}

	hashed, err := password.HashPassword(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created := make([]models.User, 0, len(SeedUsersData))
	for _, u := range SeedUsersData {
		u.Password = hashed
		if err := userRepo.Create(ctx, &u); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", u.Email, err)
		}
		logger.Info("user added", zap.String("email", u.Email), zap.String("role", u.Role))
		created = append(created, u)
	}
	return created, nil
}
