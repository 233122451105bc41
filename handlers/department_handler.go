package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"attendance-tracker/repository"
)

type DepartmentHandler struct {
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

func NewDepartmentHandler(departments repository.DepartmentRepository, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, logger: logger}
}

// GetAllDepartments godoc
// @Summary List departments
// @Description Used by the registration form.
// @Tags Departments
// @Produce json
// @Success 200 {array} models.Department
// @Router /departments [get]
func (h *DepartmentHandler) GetAllDepartments(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	departments, err := h.departments.GetAll(ctx)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(departments)
}
