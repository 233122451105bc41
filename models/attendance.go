package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusHalfDay AttendanceStatus = "half-day"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Attendance is one user's record for one calendar day. Date holds local
// midnight of that day; TotalHours is derived from the check-in/check-out pair.
type Attendance struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	Date         time.Time          `json:"date" bson:"date"`
	CheckInTime  *time.Time         `json:"check_in_time,omitempty" bson:"check_in_time,omitempty"`
	CheckOutTime *time.Time         `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	Status       AttendanceStatus   `json:"status" bson:"status"`
	TotalHours   float64            `json:"total_hours" bson:"total_hours"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// AttendanceWithUser is an attendance record joined with its owner.
// User is nil when the owner no longer exists.
type AttendanceWithUser struct {
	Attendance `bson:",inline"`
	User       *UserSummary `json:"user,omitempty" bson:"user,omitempty"`
}

type TodayAttendance struct {
	CheckedIn    bool              `json:"checked_in"`
	CheckedOut   bool              `json:"checked_out"`
	CheckInTime  *time.Time        `json:"check_in_time"`
	CheckOutTime *time.Time        `json:"check_out_time"`
	Status       *AttendanceStatus `json:"status"`
	TotalHours   float64           `json:"total_hours"`
}

func NewTodayAttendance(a *Attendance) TodayAttendance {
	if a == nil {
		return TodayAttendance{}
	}
	status := a.Status
	return TodayAttendance{
		CheckedIn:    a.CheckInTime != nil,
		CheckedOut:   a.CheckOutTime != nil,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       &status,
		TotalHours:   a.TotalHours,
	}
}
