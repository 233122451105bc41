package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
)

type attendanceFixture struct {
	app     *fiber.App
	clock   *attendance.FixedClock
	records *memAttendanceRepo
	users   *memUserRepo
	qr      *fakeQRCodeRepo
	me      models.User
}

func newAttendanceFixture(t *testing.T, now time.Time) *attendanceFixture {
	t.Helper()

	users := &memUserRepo{}
	me := users.add(models.User{Name: "John Doe", Email: "john@example.com", Role: models.RoleEmployee, EmployeeID: "EMP1001", Department: "Engineering"})
	records := newMemAttendanceRepo(users)
	clock := &attendance.FixedClock{T: now}
	qr := &fakeQRCodeRepo{}

	reconciler := attendance.NewReconciler(records, clock, zap.NewNop())
	h := NewAttendanceHandler(reconciler, records, qr, clock, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &models.Claims{UserID: me.ID, Email: me.Email, Role: me.Role})
		return c.Next()
	})
	app.Post("/checkin", h.CheckIn)
	app.Post("/checkout", h.CheckOut)
	app.Post("/scan", h.ScanQRCode)
	app.Get("/today", h.Today)
	app.Get("/my-history", h.MyHistory)
	app.Get("/my-summary", h.MySummary)
	app.Get("/qr", h.GenerateQRCode)

	return &attendanceFixture{app: app, clock: clock, records: records, users: users, qr: qr, me: me}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestAttendanceHandler_CheckInCheckOut(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 9, 45))

	code, body := doRequest(t, f.app, http.MethodPost, "/checkin", "")
	require.Equal(t, http.StatusOK, code, string(body))
	res := decode[models.AttendanceActionResponse](t, body)
	assert.Equal(t, "Checked in successfully", res.Message)
	assert.Equal(t, models.StatusLate, res.Attendance.Status)

	code, body = doRequest(t, f.app, http.MethodPost, "/checkin", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"You have already checked in today"}`, string(body))

	f.clock.Set(at(12, 12, 0))
	code, body = doRequest(t, f.app, http.MethodPost, "/checkout", "")
	require.Equal(t, http.StatusOK, code, string(body))
	res = decode[models.AttendanceActionResponse](t, body)
	assert.Equal(t, "Checked out successfully", res.Message)
	assert.Equal(t, models.StatusLate, res.Attendance.Status)
	assert.Equal(t, 2.25, res.Attendance.TotalHours)

	code, body = doRequest(t, f.app, http.MethodPost, "/checkout", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"You have already checked out today"}`, string(body))
}

func TestAttendanceHandler_CheckOutWithoutCheckIn(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 17, 0))

	code, body := doRequest(t, f.app, http.MethodPost, "/checkout", "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"Please check in first"}`, string(body))
}

func TestAttendanceHandler_StoreFailure(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 9, 0))
	f.records.err = errors.New("connection refused")

	code, body := doRequest(t, f.app, http.MethodPost, "/checkin", "")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Server error"}`, string(body))
}

func TestAttendanceHandler_Today(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 9, 0))

	code, body := doRequest(t, f.app, http.MethodGet, "/today", "")
	require.Equal(t, http.StatusOK, code)
	empty := decode[map[string]interface{}](t, body)
	assert.Equal(t, false, empty["checked_in"])
	assert.Nil(t, empty["status"])

	doRequest(t, f.app, http.MethodPost, "/checkin", "")

	_, body = doRequest(t, f.app, http.MethodGet, "/today", "")
	today := decode[map[string]interface{}](t, body)
	assert.Equal(t, true, today["checked_in"])
	assert.Equal(t, false, today["checked_out"])
	assert.Equal(t, "present", today["status"])
}

func TestAttendanceHandler_MySummaryAndHistory(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 9, 0))
	ctx := context.Background()

	days := []struct {
		day     int
		in, out time.Time
	}{
		{4, at(4, 9, 0), at(4, 17, 0)},
		{5, at(5, 9, 45), at(5, 17, 0)},
		{6, at(6, 9, 0), at(6, 12, 0)},
	}
	for _, d := range days {
		in, out := d.in, d.out
		start, _ := attendance.DayBounds(in)
		require.NoError(t, f.records.Insert(ctx, &models.Attendance{
			UserID:       f.me.ID,
			Date:         start,
			CheckInTime:  &in,
			CheckOutTime: &out,
			Status:       attendance.ClassifySettledDay(&in, &out),
			TotalHours:   attendance.ElapsedHours(&in, &out),
		}))
	}
	feb := time.Date(2024, time.February, 20, 0, 0, 0, 0, wib)
	require.NoError(t, f.records.Insert(ctx, &models.Attendance{UserID: f.me.ID, Date: feb, Status: models.StatusAbsent}))

	code, body := doRequest(t, f.app, http.MethodGet, "/my-summary", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, attendance.Summary{TotalRecords: 3, Present: 1, Late: 1, HalfDay: 1, TotalHours: 18.25}, decode[attendance.Summary](t, body))

	_, body = doRequest(t, f.app, http.MethodGet, "/my-summary?month=2&year=2024", "")
	assert.Equal(t, attendance.Summary{TotalRecords: 1, Absent: 1}, decode[attendance.Summary](t, body))

	code, body = doRequest(t, f.app, http.MethodGet, "/my-summary?month=13&year=2024", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "month")

	_, body = doRequest(t, f.app, http.MethodGet, "/my-history", "")
	history := decode[[]models.Attendance](t, body)
	require.Len(t, history, 4)
	assert.True(t, history[0].Date.Equal(at(6, 0, 0)), "newest first")

	_, body = doRequest(t, f.app, http.MethodGet, "/my-history?month=3&year=2024", "")
	assert.Len(t, decode[[]models.Attendance](t, body), 3)
}

func TestAttendanceHandler_GenerateQRCode(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 8, 0))
	var created *models.QRCode
	f.qr.FindActiveFn = func(context.Context, time.Time, time.Time) (*models.QRCode, error) {
		return created, nil
	}
	f.qr.CreateFn = func(_ context.Context, qr *models.QRCode) error {
		created = qr
		return nil
	}

	code, body := doRequest(t, f.app, http.MethodGet, "/qr", "")
	require.Equal(t, http.StatusOK, code, string(body))
	first := decode[map[string]interface{}](t, body)
	assert.True(t, strings.HasPrefix(first["qr_code_image"].(string), "data:image/png;base64,"))
	require.NotNil(t, created)
	assert.True(t, created.ExpiresAt.Equal(at(12, 23, 0)))

	_, body = doRequest(t, f.app, http.MethodGet, "/qr", "")
	second := decode[map[string]interface{}](t, body)
	assert.Equal(t, first["code"], second["code"], "active code is reused")
}

func TestAttendanceHandler_ScanQRCode(t *testing.T) {
	f := newAttendanceFixture(t, at(12, 9, 10))
	day, _ := attendance.DayBounds(f.clock.Now())
	qr := &models.QRCode{ID: primitive.NewObjectID(), Code: "abc", Date: day, ExpiresAt: at(12, 23, 0)}
	var scans []primitive.ObjectID
	f.qr.FindByCodeFn = func(_ context.Context, code string) (*models.QRCode, error) {
		if code == qr.Code {
			return qr, nil
		}
		return nil, nil
	}
	f.qr.RecordScanFn = func(_ context.Context, _, userID primitive.ObjectID) error {
		scans = append(scans, userID)
		return nil
	}

	code, body := doRequest(t, f.app, http.MethodPost, "/scan", `{"qr_code_value":"nope"}`)
	assert.Equal(t, http.StatusNotFound, code, string(body))

	code, body = doRequest(t, f.app, http.MethodPost, "/scan", `{}`)
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	code, body = doRequest(t, f.app, http.MethodPost, "/scan", `{"qr_code_value":"abc"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, "Checked in successfully", decode[models.AttendanceActionResponse](t, body).Message)

	f.clock.Set(at(12, 17, 30))
	code, body = doRequest(t, f.app, http.MethodPost, "/scan", `{"qr_code_value":"abc"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	res := decode[models.AttendanceActionResponse](t, body)
	assert.Equal(t, "Checked out successfully", res.Message)
	assert.Equal(t, 8.33, res.Attendance.TotalHours)
	assert.Equal(t, []primitive.ObjectID{f.me.ID, f.me.ID}, scans)

	f.clock.Set(at(12, 23, 30))
	code, _ = doRequest(t, f.app, http.MethodPost, "/scan", `{"qr_code_value":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
