package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

const trendDays = 7

type DashboardHandler struct {
	records repository.AttendanceRepository
	users   repository.UserRepository
	clock   attendance.Clock
	logger  *zap.Logger
}

func NewDashboardHandler(records repository.AttendanceRepository, users repository.UserRepository, clock attendance.Clock, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{records: records, users: users, clock: clock, logger: logger}
}

type employeeDashboard struct {
	Today      models.TodayAttendance `json:"today"`
	Monthly    attendance.Summary     `json:"monthly"`
	Recent7Day []models.RecentDay     `json:"recent_7_days"`
}

type managerTodayStats struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Late      int `json:"late"`
	CheckedIn int `json:"checked_in"`
}

type managerDashboard struct {
	TotalEmployees  int                                   `json:"total_employees"`
	Today           managerTodayStats                     `json:"today"`
	LateArrivals    []models.LateArrival                  `json:"late_arrivals"`
	AbsentEmployees []models.AbsentEmployee               `json:"absent_employees"`
	WeeklyTrend     []attendance.TrendPoint               `json:"weekly_trend"`
	DepartmentWise  map[string]attendance.DepartmentStats `json:"department_wise"`
}

// Employee godoc
// @Summary Employee dashboard
// @Description Today's record, the current month's summary and the last seven days.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{today=models.TodayAttendance,monthly=attendance.Summary,recent_7_days=[]models.RecentDay}
// @Router /dashboard/employee [get]
func (h *DashboardHandler) Employee(c *fiber.Ctx) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	now := h.clock.Now()
	dayStart, dayEnd := attendance.DayBounds(now)
	monthStart, monthEnd := attendance.MonthBounds(now.Year(), now.Month(), now.Location())
	weekStart, _ := attendance.DayBounds(now.AddDate(0, 0, -(trendDays - 1)))

	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		today   *models.Attendance
		monthly []models.Attendance
		recent  []models.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		today, err = h.records.FindDay(gctx, claims.UserID, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = h.records.Find(gctx, repository.AttendanceFilter{UserID: &claims.UserID, Start: monthStart, End: monthEnd})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = h.records.Find(gctx, repository.AttendanceFilter{UserID: &claims.UserID, Start: weekStart, End: dayEnd})
		return err
	})
	if err := g.Wait(); err != nil {
		return handleError(c, h.logger, err)
	}

	resp := employeeDashboard{
		Today:      models.NewTodayAttendance(today),
		Monthly:    attendance.Summarize(monthly),
		Recent7Day: make([]models.RecentDay, 0, len(recent)),
	}
	for _, r := range recent {
		resp.Recent7Day = append(resp.Recent7Day, models.RecentDay{
			Date:         r.Date,
			Status:       r.Status,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			TotalHours:   r.TotalHours,
		})
	}
	return c.JSON(resp)
}

// Manager godoc
// @Summary Manager dashboard
// @Description Today's team status, a seven day trend and the current month by department.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{total_employees=int,today=object,late_arrivals=[]models.LateArrival,absent_employees=[]models.AbsentEmployee,weekly_trend=[]attendance.TrendPoint,department_wise=object}
// @Router /dashboard/manager [get]
func (h *DashboardHandler) Manager(c *fiber.Ctx) error {
	now := h.clock.Now()
	days := util.LastNDays(now, trendDays)
	if len(days) != trendDays {
		return handleError(c, h.logger, errors.New("failed to build trend calendar"))
	}
	_, dayEnd := attendance.DayBounds(now)
	monthStart, monthEnd := attendance.MonthBounds(now.Year(), now.Month(), now.Location())

	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		status  *models.TodayStatusReport
		week    []models.Attendance
		monthly []models.Attendance
		lookup  attendance.DepartmentLookup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = buildTodayStatus(gctx, h.records, h.users, now)
		return err
	})
	g.Go(func() error {
		var err error
		week, err = h.records.Find(gctx, repository.AttendanceFilter{Start: days[0], End: dayEnd})
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = h.records.Find(gctx, repository.AttendanceFilter{Start: monthStart, End: monthEnd})
		if err != nil {
			return err
		}
		lookup, err = departmentLookup(gctx, h.users, monthly)
		return err
	})
	if err := g.Wait(); err != nil {
		return handleError(c, h.logger, err)
	}

	return c.JSON(managerDashboard{
		TotalEmployees: status.TotalEmployees,
		Today: managerTodayStats{
			Present:   status.Present,
			Absent:    status.Absent,
			Late:      status.Late,
			CheckedIn: status.CheckedIn,
		},
		LateArrivals:    status.LateArrivals,
		AbsentEmployees: status.AbsentEmployees,
		WeeklyTrend:     attendance.WeeklyTrend(status.TotalEmployees, attendance.GroupByDay(week, days[0], trendDays)),
		DepartmentWise:  attendance.DepartmentBreakdown(monthly, lookup),
	})
}
