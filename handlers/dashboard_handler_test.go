package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
)

func (f *teamFixture) dashboardApp(as models.User) *fiber.App {
	h := NewDashboardHandler(f.records, f.users, f.clock, zap.NewNop())
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &models.Claims{UserID: as.ID, Email: as.Email, Role: as.Role})
		return c.Next()
	})
	app.Get("/employee", h.Employee)
	app.Get("/manager", h.Manager)
	return app
}

func TestDashboardHandler_Manager(t *testing.T) {
	f := newTeamFixture(t)
	app := f.dashboardApp(f.manager)

	code, body := doRequest(t, app, http.MethodGet, "/manager", "")
	require.Equal(t, http.StatusOK, code, string(body))

	got := decode[managerDashboard](t, body)
	assert.Equal(t, 3, got.TotalEmployees)
	assert.Equal(t, managerTodayStats{Present: 1, Absent: 1, Late: 1, CheckedIn: 2}, got.Today)
	require.Len(t, got.AbsentEmployees, 1)
	assert.Equal(t, f.cid.ID, got.AbsentEmployees[0].ID)
	require.Len(t, got.LateArrivals, 1)
	assert.Equal(t, f.ben.ID, got.LateArrivals[0].User.ID)

	assert.Equal(t, []attendance.TrendPoint{
		{Date: "2024-03-06", Present: 0, Absent: 3},
		{Date: "2024-03-07", Present: 0, Absent: 3},
		{Date: "2024-03-08", Present: 0, Absent: 3},
		{Date: "2024-03-09", Present: 0, Absent: 3},
		{Date: "2024-03-10", Present: 0, Absent: 3},
		{Date: "2024-03-11", Present: 1, Absent: 1},
		{Date: "2024-03-12", Present: 2, Absent: 1},
	}, got.WeeklyTrend)

	assert.Equal(t, map[string]attendance.DepartmentStats{
		"Engineering": {Present: 2, Total: 2},
		"Sales":       {Late: 1, HalfDay: 1, Total: 2},
	}, got.DepartmentWise)
}

func TestDashboardHandler_Employee(t *testing.T) {
	f := newTeamFixture(t)
	app := f.dashboardApp(f.ann)

	code, body := doRequest(t, app, http.MethodGet, "/employee", "")
	require.Equal(t, http.StatusOK, code, string(body))

	got := decode[employeeDashboard](t, body)
	assert.True(t, got.Today.CheckedIn)
	assert.False(t, got.Today.CheckedOut)
	require.NotNil(t, got.Today.Status)
	assert.Equal(t, models.StatusPresent, *got.Today.Status)
	assert.Equal(t, attendance.Summary{TotalRecords: 2, Present: 2, TotalHours: 8.08}, got.Monthly)
	require.Len(t, got.Recent7Day, 2)
	assert.True(t, got.Recent7Day[0].Date.Equal(at(12, 0, 0)))
}

func TestDashboardHandler_EmployeeWithoutRecords(t *testing.T) {
	f := newTeamFixture(t)
	app := f.dashboardApp(f.cid)

	code, body := doRequest(t, app, http.MethodGet, "/employee", "")
	require.Equal(t, http.StatusOK, code)

	got := decode[employeeDashboard](t, body)
	assert.False(t, got.Today.CheckedIn)
	assert.Nil(t, got.Today.Status)
	assert.Equal(t, attendance.Summary{}, got.Monthly)
	assert.Empty(t, got.Recent7Day)
}

func TestDashboardHandler_StoreFailure(t *testing.T) {
	f := newTeamFixture(t)
	f.records.err = errors.New("timeout")

	code, body := doRequest(t, f.dashboardApp(f.manager), http.MethodGet, "/manager", "")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Server error"}`, string(body))
}
