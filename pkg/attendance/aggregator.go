package attendance

import (
	"time"

	"attendance-tracker/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownDepartment collects records whose owner has no resolvable department.
const UnknownDepartment = "Unknown"

type Summary struct {
	TotalRecords int     `json:"total_records"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	Late         int     `json:"late"`
	HalfDay      int     `json:"half_day"`
	TotalHours   float64 `json:"total_hours"`
}

// Summarize counts records by status and sums their hours. Absent only
// counts persisted absent records, not users without a record.
func Summarize(records []models.Attendance) Summary {
	var s Summary
	total := decimal.Zero
	for _, rec := range records {
		switch rec.Status {
		case models.StatusPresent:
			s.Present++
		case models.StatusAbsent:
			s.Absent++
		case models.StatusLate:
			s.Late++
		case models.StatusHalfDay:
			s.HalfDay++
		}
		total = total.Add(decimal.NewFromFloat(rec.TotalHours))
	}
	s.TotalRecords = len(records)
	s.TotalHours, _ = total.Round(2).Float64()
	return s
}

// RosterPresence splits a roster by whether each member checked in.
type RosterPresence struct {
	CheckedIn []primitive.ObjectID
	Absent    []primitive.ObjectID
}

// PresenceVsRoster returns the roster members with a check-in among records
// and, in roster order, those without one.
func PresenceVsRoster(records []models.Attendance, roster []primitive.ObjectID) RosterPresence {
	checkedIn := make(map[primitive.ObjectID]bool, len(records))
	for _, rec := range records {
		if rec.CheckInTime != nil {
			checkedIn[rec.UserID] = true
		}
	}

	var p RosterPresence
	for _, id := range roster {
		if checkedIn[id] {
			p.CheckedIn = append(p.CheckedIn, id)
		} else {
			p.Absent = append(p.Absent, id)
		}
	}
	return p
}

type DepartmentStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
	Total   int `json:"total"`
}

// DepartmentLookup resolves a user's department. ok is false when the user is unknown.
type DepartmentLookup func(userID primitive.ObjectID) (department string, ok bool)

func DepartmentBreakdown(records []models.Attendance, lookup DepartmentLookup) map[string]DepartmentStats {
	out := make(map[string]DepartmentStats)
	for _, rec := range records {
		dept := UnknownDepartment
		if lookup != nil {
			if d, ok := lookup(rec.UserID); ok && d != "" {
				dept = d
			}
		}

		st := out[dept]
		st.Total++
		switch rec.Status {
		case models.StatusPresent:
			st.Present++
		case models.StatusAbsent:
			st.Absent++
		case models.StatusLate:
			st.Late++
		case models.StatusHalfDay:
			st.HalfDay++
		}
		out[dept] = st
	}
	return out
}

// DayRecords is the set of records stored for one calendar day.
type DayRecords struct {
	Day     time.Time
	Records []models.Attendance
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// WeeklyTrend counts present and late as present, and takes absent as the
// roster size minus every record not marked absent. Half-day records are
// therefore neither present nor absent here, unlike PresenceVsRoster.
func WeeklyTrend(rosterSize int, days []DayRecords) []TrendPoint {
	out := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		var present, attended int
		for _, rec := range d.Records {
			if rec.Status == models.StatusPresent || rec.Status == models.StatusLate {
				present++
			}
			if rec.Status != models.StatusAbsent {
				attended++
			}
		}
		out = append(out, TrendPoint{
			Date:    d.Day.Format("2006-01-02"),
			Present: present,
			Absent:  rosterSize - attended,
		})
	}
	return out
}

// GroupByDay buckets records into the consecutive days starting at first.
// Records outside the window are dropped.
func GroupByDay(records []models.Attendance, first time.Time, n int) []DayRecords {
	days := make([]DayRecords, n)
	for i := range days {
		start, _ := DayBounds(first.AddDate(0, 0, i))
		days[i].Day = start
	}
	for _, rec := range records {
		d := rec.Date.In(first.Location())
		for i := range days {
			start, end := DayBounds(days[i].Day)
			if !d.Before(start) && !d.After(end) {
				days[i].Records = append(days[i].Records, rec)
				break
			}
		}
	}
	return days
}
