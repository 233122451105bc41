package attendance

import (
	"time"

	"attendance-tracker/models"

	"github.com/shopspring/decimal"
)

const (
	LateCutoffHour   = 9
	LateCutoffMinute = 30

	// HalfDayThresholdHours is the worked time below which a day counts as half.
	HalfDayThresholdHours = 4.0
)

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// IsLateArrival reports whether checkIn falls strictly after 09:30:00.000 of
// its own calendar day, in checkIn's location.
func IsLateArrival(checkIn time.Time) bool {
	y, m, d := checkIn.Date()
	cutoff := time.Date(y, m, d, LateCutoffHour, LateCutoffMinute, 0, 0, checkIn.Location())
	return checkIn.After(cutoff)
}

// DayBounds returns 00:00:00.000 and 23:59:59.999 of t's local calendar day.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// MonthBounds returns the first instant of the month and 23:59:59.999 of its
// last day.
func MonthBounds(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	_, end = DayBounds(start.AddDate(0, 1, -1))
	return start, end
}

// ElapsedHours is checkOut minus checkIn in hours, rounded half away from
// zero to two places. A missing endpoint or a negative span yields 0.
func ElapsedHours(checkIn, checkOut *time.Time) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	ms := checkOut.Sub(*checkIn).Milliseconds()
	if ms <= 0 {
		return 0
	}
	h, _ := decimal.NewFromInt(ms).Div(msPerHour).Round(2).Float64()
	return h
}

// ClassifyCheckIn is the status assigned when a check-in is recorded.
func ClassifyCheckIn(checkIn time.Time) models.AttendanceStatus {
	if IsLateArrival(checkIn) {
		return models.StatusLate
	}
	return models.StatusPresent
}

// ClassifyDay is the status assigned at check-out. A late status carried in
// prior is never replaced by half-day; any other status is when the worked
// time is under the threshold.
func ClassifyDay(checkIn, checkOut *time.Time, prior models.AttendanceStatus) models.AttendanceStatus {
	if checkIn == nil {
		return models.StatusAbsent
	}
	status := prior
	if status == "" || status == models.StatusAbsent {
		status = ClassifyCheckIn(*checkIn)
	}
	if status != models.StatusLate && isShortDay(checkIn, checkOut) {
		return models.StatusHalfDay
	}
	return status
}

// isShortDay compares the unrounded span with the threshold, so 3h59m59.999s
// is short even though it rounds to 4.00.
func isShortDay(checkIn, checkOut *time.Time) bool {
	if checkIn == nil || checkOut == nil {
		return false
	}
	return checkOut.Sub(*checkIn).Hours() < HalfDayThresholdHours
}

// ClassifySettledDay classifies a finished day from scratch, as done for
// generated history. Short days are half-day whether or not they started late.
func ClassifySettledDay(checkIn, checkOut *time.Time) models.AttendanceStatus {
	if checkIn == nil {
		return models.StatusAbsent
	}
	if isShortDay(checkIn, checkOut) {
		return models.StatusHalfDay
	}
	return ClassifyCheckIn(*checkIn)
}
