package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"attendance-tracker/models"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

type UserHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Employees godoc
// @Summary List employees
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) Employees(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.users.FindByRole(ctx, models.RoleEmployee)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(users)
}

// GetProfile godoc
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Name and department are optional but cannot be blank when given.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body models.ProfileUpdatePayload true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var payload models.ProfileUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updateData := bson.M{}
	if payload.Name != nil {
		updateData["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Department != nil {
		updateData["department"] = strings.TrimSpace(*payload.Department)
	}

	var user *models.User
	if len(updateData) == 0 {
		user, err = h.users.FindByID(ctx, claims.UserID)
	} else {
		user, err = h.users.UpdateProfile(ctx, claims.UserID, updateData)
	}
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}
