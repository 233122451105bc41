package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
)

const requestTimeout = 5 * time.Second

var errUnauthenticated = errors.New("not authenticated")

func claimsFrom(c *fiber.Ctx) (*models.Claims, error) {
	claims, ok := c.Locals("user").(*models.Claims)
	if !ok || claims == nil {
		return nil, errUnauthenticated
	}
	return claims, nil
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), requestTimeout)
}

type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

// dateRangeQuery reads startDate and endDate (YYYY-MM-DD). The range only
// applies when both are present, and then spans whole local days.
func dateRangeQuery(c *fiber.Ctx, loc *time.Location) (start, end time.Time, err error) {
	from, to := c.Query("startDate"), c.Query("endDate")
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, nil
	}

	s, err := time.ParseInLocation("2006-01-02", from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, badRequestError{"startDate must be YYYY-MM-DD"}
	}
	e, err := time.ParseInLocation("2006-01-02", to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, badRequestError{"endDate must be YYYY-MM-DD"}
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, badRequestError{"endDate must not be before startDate"}
	}

	start, _ = attendance.DayBounds(s)
	_, end = attendance.DayBounds(e)
	return start, end, nil
}

// monthQuery reads month (1-12) and year. ok is false when either is missing.
func monthQuery(c *fiber.Ctx) (year int, month time.Month, ok bool, err error) {
	ms, ys := c.Query("month"), c.Query("year")
	if ms == "" || ys == "" {
		return 0, 0, false, nil
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false, badRequestError{"month must be between 1 and 12"}
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 1970 || y > 9999 {
		return 0, 0, false, badRequestError{"year is invalid"}
	}
	return y, time.Month(m), true, nil
}

func statusQuery(c *fiber.Ctx) (models.AttendanceStatus, error) {
	s := models.AttendanceStatus(c.Query("status"))
	if s != "" && !s.Valid() {
		return "", badRequestError{"status must be one of present, absent, late, half-day"}
	}
	return s, nil
}
