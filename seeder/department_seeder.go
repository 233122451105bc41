package seeder

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/repository"
)

var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Management"}

// SeedDepartments inserts any of Departments that are missing.
func SeedDepartments(ctx context.Context, departmentRepo repository.DepartmentRepository, logger *zap.Logger) error {
	for _, name := range Departments {
		existing, err := departmentRepo.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			logger.Debug("department exists, skipping", zap.String("name", name))
			continue
		}

		err = departmentRepo.Create(ctx, &models.Department{Name: name})
		if err != nil && !errors.Is(err, repository.ErrDepartmentExists) {
			return err
		}
		logger.Info("department added", zap.String("name", name))
	}
	return nil
}
