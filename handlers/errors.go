package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"attendance-tracker/pkg/attendance"
	"attendance-tracker/repository"
)

// handleError maps domain errors to HTTP responses. Anything unrecognised
// is logged and reported as a 500.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var bad badRequestError

	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already checked in today"})
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already checked out today"})
	case errors.Is(err, attendance.ErrNoCheckInYet):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please check in first"})
	case errors.Is(err, attendance.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attendance record not found"})
	case errors.Is(err, repository.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
	case errors.Is(err, errUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized"})
	case errors.As(err, &bad):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": bad.msg})
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}

func validationFailed(c *fiber.Ctx, errs interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}
