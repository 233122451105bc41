package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/password"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

// TokenMaker issues access tokens for authenticated users.
type TokenMaker interface {
	GenerateToken(user *models.User) (string, error)
}

type AuthHandler struct {
	users  repository.UserRepository
	tokens TokenMaker
	logger *zap.Logger
}

func NewAuthHandler(users repository.UserRepository, tokens TokenMaker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// Register godoc
// @Summary Register user
// @Description Creates an employee (default) or manager account and returns a token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body models.UserRegisterPayload true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ValidationErrorResponse "Validation error or email already registered"
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return validationFailed(c, errs)
	}

	role := payload.Role
	if role == "" {
		role = models.RoleEmployee
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	ctx, cancel := requestContext(c)
	defer cancel()

	existing, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists with this email"})
	}

	hashed, err := password.HashPassword(payload.Password)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	user := &models.User{
		Name:       strings.TrimSpace(payload.Name),
		Email:      email,
		Password:   hashed,
		Role:       role,
		Department: strings.TrimSpace(payload.Department),
	}

	// A concurrent registration can still take the generated code; draw again.
	for attempt := 0; ; attempt++ {
		user.EmployeeID, err = util.GenerateEmployeeID(ctx, h.users.EmployeeIDExists)
		if err != nil {
			return handleError(c, h.logger, err)
		}
		err = h.users.Create(ctx, user)
		if !errors.Is(err, repository.ErrEmployeeIDTaken) || attempt >= 2 {
			break
		}
	}
	if err != nil {
		return handleError(c, h.logger, err)
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	h.logger.Info("user registered", zap.String("employee_id", user.EmployeeID), zap.String("role", user.Role))
	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{User: *user, Token: token})
}

// Login godoc
// @Summary Login
// @Description Exchanges email and password for a PASETO token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, strings.TrimSpace(payload.Email))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if user == nil || !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(models.AuthResponse{User: *user, Token: token})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
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
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}
