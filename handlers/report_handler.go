package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
	"attendance-tracker/repository"
)

var exportHeader = []string{
	"Employee ID", "Employee Name", "Email", "Department",
	"Date", "Check In", "Check Out", "Status", "Total Hours",
}

type ReportHandler struct {
	records repository.AttendanceRepository
	users   repository.UserRepository
	clock   attendance.Clock
	logger  *zap.Logger
}

func NewReportHandler(records repository.AttendanceRepository, users repository.UserRepository, clock attendance.Clock, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{records: records, users: users, clock: clock, logger: logger}
}

type teamSummaryResponse struct {
	attendance.Summary
	DepartmentWise map[string]attendance.DepartmentStats `json:"department_wise"`
}

func (h *ReportHandler) location() *time.Location {
	return h.clock.Now().Location()
}

// filterFromQuery builds a filter from employeeId, startDate, endDate and
// status. found is false when an employeeId was given but matches nobody.
func (h *ReportHandler) filterFromQuery(ctx context.Context, c *fiber.Ctx) (f repository.AttendanceFilter, found bool, err error) {
	f.Start, f.End, err = dateRangeQuery(c, h.location())
	if err != nil {
		return f, false, err
	}
	if f.Status, err = statusQuery(c); err != nil {
		return f, false, err
	}

	if code := c.Query("employeeId"); code != "" {
		user, err := h.users.FindByEmployeeID(ctx, code)
		if err != nil {
			return f, false, err
		}
		if user == nil {
			return f, false, nil
		}
		f.UserID = &user.ID
	}
	return f, true, nil
}

// All godoc
// @Summary All attendance
// @Description Every attendance record with its owner, newest first.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param employeeId query string false "Employee code, e.g. EMP1001"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param status query string false "present, absent, late or half-day"
// @Success 200 {array} models.AttendanceWithUser
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /attendance/all [get]
func (h *ReportHandler) All(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	filter, found, err := h.filterFromQuery(ctx, c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if !found {
		return c.JSON([]models.AttendanceWithUser{})
	}

	records, err := h.records.FindWithUsers(ctx, filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(records)
}

// ByEmployee godoc
// @Summary Attendance of one employee
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {array} models.AttendanceWithUser
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/employee/{id} [get]
func (h *ReportHandler) ByEmployee(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	start, end, err := dateRangeQuery(c, h.location())
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.records.FindWithUsers(ctx, repository.AttendanceFilter{UserID: &userID, Start: start, End: end})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(records)
}

// Summary godoc
// @Summary Team summary
// @Description Counts by status plus a per-department breakdown.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} object{total_records=int,present=int,absent=int,late=int,half_day=int,total_hours=number,department_wise=object}
// @Router /attendance/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	start, end, err := dateRangeQuery(c, h.location())
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	records, err := h.records.Find(ctx, repository.AttendanceFilter{Start: start, End: end})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	lookup, err := departmentLookup(ctx, h.users, records)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(teamSummaryResponse{
		Summary:        attendance.Summarize(records),
		DepartmentWise: attendance.DepartmentBreakdown(records, lookup),
	})
}

// Export godoc
// @Summary Export attendance
// @Description Downloads the filtered attendance as CSV (default) or XLSX.
// @Tags Reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param employeeId query string false "Employee code"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param status query string false "Status"
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", "csv")
	if format != "csv" && format != "xlsx" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be csv or xlsx"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	// An unknown employeeId exports everything rather than nothing.
	filter, _, err := h.filterFromQuery(ctx, c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	records, err := h.records.FindWithUsers(ctx, filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	rows := exportRows(records, h.location())

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "xlsx":
		body, err = renderXLSX(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		body, err = renderCSV(rows)
		contentType = "text/csv"
	}
	if err != nil {
		return handleError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=attendance-%d.%s", h.clock.Now().UnixMilli(), format))
	return c.Send(body)
}

// TodayStatus godoc
// @Summary Today's team status
// @Description Check-ins, late arrivals and the employees without a check-in today.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TodayStatusReport
// @Router /attendance/today-status [get]
func (h *ReportHandler) TodayStatus(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := buildTodayStatus(ctx, h.records, h.users, h.clock.Now())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return c.JSON(report)
}

// buildTodayStatus is shared by the today-status report and the manager dashboard.
func buildTodayStatus(ctx context.Context, records repository.AttendanceRepository, users repository.UserRepository, now time.Time) (*models.TodayStatusReport, error) {
	start, end := attendance.DayBounds(now)

	today, err := records.FindWithUsers(ctx, repository.AttendanceFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	roster, err := users.FindByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, err
	}

	plain := make([]models.Attendance, len(today))
	for i, r := range today {
		plain[i] = r.Attendance
	}
	rosterIDs := make([]primitive.ObjectID, len(roster))
	byID := make(map[primitive.ObjectID]models.User, len(roster))
	for i, u := range roster {
		rosterIDs[i] = u.ID
		byID[u.ID] = u
	}
	presence := attendance.PresenceVsRoster(plain, rosterIDs)

	report := &models.TodayStatusReport{
		TotalEmployees:  len(roster),
		Absent:          len(presence.Absent),
		AbsentEmployees: make([]models.AbsentEmployee, 0, len(presence.Absent)),
		LateArrivals:    []models.LateArrival{},
	}
	for _, r := range today {
		if r.CheckInTime != nil {
			report.CheckedIn++
		}
		switch r.Status {
		case models.StatusPresent:
			report.Present++
		case models.StatusLate:
			report.Late++
			la := models.LateArrival{ID: r.ID, CheckInTime: r.CheckInTime}
			if r.User != nil {
				la.User = *r.User
			}
			report.LateArrivals = append(report.LateArrivals, la)
		}
	}
	for _, id := range presence.Absent {
		report.AbsentEmployees = append(report.AbsentEmployees, models.NewAbsentEmployee(byID[id]))
	}
	return report, nil
}

// departmentLookup resolves the departments of every user owning one of records.
func departmentLookup(ctx context.Context, users repository.UserRepository, records []models.Attendance) (attendance.DepartmentLookup, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, r := range records {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}

	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	depts := make(map[primitive.ObjectID]string, len(found))
	for _, u := range found {
		depts[u.ID] = u.Department
	}
	return func(id primitive.ObjectID) (string, bool) {
		d, ok := depts[id]
		return d, ok
	}, nil
}

func exportRows(records []models.AttendanceWithUser, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, exportHeader)

	clock := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.In(loc).Format("15:04:05")
	}
	for _, r := range records {
		var u models.UserSummary
		if r.User != nil {
			u = *r.User
		}
		rows = append(rows, []string{
			u.EmployeeID,
			u.Name,
			u.Email,
			u.Department,
			r.Date.In(loc).Format("2006-01-02"),
			clock(r.CheckInTime),
			clock(r.CheckOutTime),
			string(r.Status),
			strconv.FormatFloat(r.TotalHours, 'f', -1, 64),
		})
	}
	return rows
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if i > 0 {
			if hours, err := strconv.ParseFloat(row[len(row)-1], 64); err == nil {
				values[len(row)-1] = hours
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
