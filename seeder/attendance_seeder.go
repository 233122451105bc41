package seeder

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

const historyDays = 30

// GenerateAttendance builds settled history for every employee over the
// working days among the historyDays calendar days before now. Today is left
// empty so seeded users can still check in.
func GenerateAttendance(users []models.User, now time.Time, rng *rand.Rand) []models.Attendance {
	yesterday := now.AddDate(0, 0, -1)
	days := util.WorkingDays(yesterday, historyDays-1)

	var records []models.Attendance
	for _, day := range days {
		for _, u := range users {
			if u.Role != models.RoleEmployee {
				continue
			}
			// 80% attendance
			if rng.Float64() <= 0.2 {
				continue
			}

			in := checkInFor(day, rng)
			out := checkOutFor(day, in, rng)

			records = append(records, models.Attendance{
				UserID:       u.ID,
				Date:         day,
				CheckInTime:  &in,
				CheckOutTime: &out,
				Status:       attendance.ClassifySettledDay(&in, &out),
				TotalHours:   attendance.ElapsedHours(&in, &out),
				CreatedAt:    out,
				UpdatedAt:    out,
			})
		}
	}
	return records
}

// checkInFor: 70% 09:00-09:29, 20% 09:30-09:59, 10% 10:00-10:59.
func checkInFor(day time.Time, rng *rand.Rand) time.Time {
	at := func(h, m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
	}
	switch r := rng.Float64(); {
	case r < 0.7:
		return at(9, rng.IntN(30))
	case r < 0.9:
		return at(9, 30+rng.IntN(30))
	default:
		return at(10, rng.IntN(60))
	}
}

// checkOutFor: 5% leave after three and a half hours, the rest between 17:00 and 18:59.
func checkOutFor(day, in time.Time, rng *rand.Rand) time.Time {
	if rng.Float64() < 0.05 {
		return in.Add(3*time.Hour + 30*time.Minute)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 17+rng.IntN(2), rng.IntN(60), 0, 0, day.Location())
}

func SeedAttendance(ctx context.Context, attendanceRepo repository.AttendanceRepository, users []models.User, now time.Time, logger *zap.Logger) error {
	if err := attendanceRepo.DeleteAll(ctx); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0x5eed))
	records := GenerateAttendance(users, now, rng)
	if err := attendanceRepo.InsertMany(ctx, records); err != nil {
		return err
	}
	logger.Info("attendance history generated", zap.Int("records", len(records)))
	return nil
}
