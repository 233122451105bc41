package seeder

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
)

func TestGenerateAttendance(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2024, time.March, 12, 8, 0, 0, 0, loc)

	users := make([]models.User, len(SeedUsersData))
	copy(users, SeedUsersData)
	for i := range users {
		users[i].ID = primitive.NewObjectID()
	}
	manager := users[len(users)-1].ID

	records := GenerateAttendance(users, now, rand.New(rand.NewPCG(1, 2)))
	require.NotEmpty(t, records)

	today, _ := attendance.DayBounds(now)
	seen := map[string]bool{}
	for _, r := range records {
		assert.NotEqual(t, manager, r.UserID)
		assert.True(t, r.Date.Before(today), "history must end before today")
		assert.NotEqual(t, time.Saturday, r.Date.Weekday())
		assert.NotEqual(t, time.Sunday, r.Date.Weekday())

		require.NotNil(t, r.CheckInTime)
		require.NotNil(t, r.CheckOutTime)
		assert.Equal(t, attendance.ClassifySettledDay(r.CheckInTime, r.CheckOutTime), r.Status)
		assert.Equal(t, attendance.ElapsedHours(r.CheckInTime, r.CheckOutTime), r.TotalHours)
		assert.GreaterOrEqual(t, r.CheckInTime.Hour(), 9)
		assert.Less(t, r.CheckInTime.Hour(), 11)

		key := r.UserID.Hex() + r.Date.Format("2006-01-02")
		assert.False(t, seen[key], "duplicate day for user")
		seen[key] = true
	}
}

func TestGenerateAttendance_Deterministic(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 12, 8, 0, 0, 0, loc)
	users := []models.User{{ID: primitive.NewObjectID(), Role: models.RoleEmployee}}

	a := GenerateAttendance(users, now, rand.New(rand.NewPCG(7, 7)))
	b := GenerateAttendance(users, now, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}
