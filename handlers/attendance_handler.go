package handlers

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

// qrExpiryHour is the local hour at which the day's QR code stops working.
const qrExpiryHour = 23

type AttendanceHandler struct {
	reconciler *attendance.Reconciler
	records    repository.AttendanceRepository
	qrCodes    repository.QRCodeRepository
	clock      attendance.Clock
	logger     *zap.Logger
}

func NewAttendanceHandler(
	reconciler *attendance.Reconciler,
	records repository.AttendanceRepository,
	qrCodes repository.QRCodeRepository,
	clock attendance.Clock,
	logger *zap.Logger,
) *AttendanceHandler {
	return &AttendanceHandler{
		reconciler: reconciler,
		records:    records,
		qrCodes:    qrCodes,
		clock:      clock,
		logger:     logger,
	}
}

// CheckIn godoc
// @Summary Check in
// @Description Records today's check-in for the current employee. Arrivals after 09:30 are marked late.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceActionResponse
// @Failure 400 {object} models.ErrorResponse "Already checked in today"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.reconciler.CheckIn(ctx, claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(models.AttendanceActionResponse{
		Message:    "Checked in successfully",
		Attendance: *rec,
	})
}

// CheckOut godoc
// @Summary Check out
// @Description Records today's check-out, computes total hours and settles the day's status.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceActionResponse
// @Failure 400 {object} models.ErrorResponse "Not checked in, or already checked out"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.reconciler.CheckOut(ctx, claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(models.AttendanceActionResponse{
		Message:    "Checked out successfully",
		Attendance: *rec,
	})
}

// MyHistory godoc
// @Summary My attendance history
// @Description Newest first. Filtered to one month when both month and year are given.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {array} models.Attendance
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/my-history [get]
func (h *AttendanceHandler) MyHistory(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	year, month, ok, err := monthQuery(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	filter := repository.AttendanceFilter{UserID: &claims.UserID}
	if ok {
		filter.Start, filter.End = attendance.MonthBounds(year, month, h.clock.Now().Location())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.records.Find(ctx, filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(records)
}

// MySummary godoc
// @Summary My monthly summary
// @Description Counts by status and total hours for a month, defaulting to the current one.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} attendance.Summary
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/my-summary [get]
func (h *AttendanceHandler) MySummary(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	now := h.clock.Now()
	year, month, ok, err := monthQuery(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if !ok {
		year, month = now.Year(), now.Month()
	}
	start, end := attendance.MonthBounds(year, month, now.Location())

	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.records.Find(ctx, repository.AttendanceFilter{UserID: &claims.UserID, Start: start, End: end})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(attendance.Summarize(records))
}

// Today godoc
// @Summary Today's status
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TodayAttendance
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.reconciler.Today(ctx, claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(models.NewTodayAttendance(rec))
}

// GenerateQRCode godoc
// @Summary Today's check-in QR code
// @Description Returns the active code for today, creating one if needed. Codes expire at 23:00 local time.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{code=string,qr_code_image=string,expires_at=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /attendance/qr [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	now := h.clock.Now()
	day, endOfDay := attendance.DayBounds(now)

	ctx, cancel := requestContext(c)
	defer cancel()

	qr, err := h.qrCodes.FindActive(ctx, day, now)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if qr == nil {
		expiresAt := time.Date(now.Year(), now.Month(), now.Day(), qrExpiryHour, 0, 0, 0, now.Location())
		if !now.Before(expiresAt) {
			expiresAt = endOfDay
		}
		qr = &models.QRCode{
			Code:      uuid.New().String(),
			Date:      day,
			ExpiresAt: expiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := h.qrCodes.Create(ctx, qr); err != nil {
			return handleError(c, h.logger, err)
		}
		h.logger.Info("issued QR code", zap.Time("expires_at", expiresAt))
	}

	png, err := qrcode.Encode(qr.Code, qrcode.Medium, 256)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"code":          qr.Code,
		"qr_code_image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"expires_at":    qr.ExpiresAt,
	})
}

// ScanQRCode godoc
// @Summary Scan the office QR code
// @Description Checks the employee in, or out if already checked in today.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Scanned value"
// @Success 200 {object} models.AttendanceActionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	qr, err := h.qrCodes.FindByCode(ctx, payload.QRCodeValue)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if qr == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR code not found or invalid"})
	}

	now := h.clock.Now()
	day, _ := attendance.DayBounds(now)
	if !now.Before(qr.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code has expired"})
	}
	if !qr.Date.Equal(day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code is not valid for today"})
	}

	today, err := h.reconciler.Today(ctx, claims.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var (
		rec     *models.Attendance
		message string
	)
	if today == nil || today.CheckInTime == nil {
		rec, err = h.reconciler.CheckIn(ctx, claims.UserID)
		message = "Checked in successfully"
	} else {
		rec, err = h.reconciler.CheckOut(ctx, claims.UserID)
		message = "Checked out successfully"
	}
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.qrCodes.RecordScan(ctx, qr.ID, claims.UserID); err != nil {
		h.logger.Warn("failed to record QR scan", zap.String("user_id", claims.UserID.Hex()), zap.Error(err))
	}

	return c.JSON(models.AttendanceActionResponse{Message: message, Attendance: *rec})
}
