package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LateArrival struct {
	ID          primitive.ObjectID `json:"id"`
	User        UserSummary        `json:"user"`
	CheckInTime *time.Time         `json:"check_in_time"`
}

type AbsentEmployee struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	EmployeeID string             `json:"employee_id"`
	Department string             `json:"department"`
}

func NewAbsentEmployee(u User) AbsentEmployee {
	return AbsentEmployee{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
	}
}

// TodayStatusReport is the manager's view of the current day.
type TodayStatusReport struct {
	TotalEmployees  int              `json:"total_employees"`
	CheckedIn       int              `json:"checked_in"`
	Present         int              `json:"present"`
	Late            int              `json:"late"`
	Absent          int              `json:"absent"`
	AbsentEmployees []AbsentEmployee `json:"absent_employees"`
	LateArrivals    []LateArrival    `json:"late_arrivals"`
}

type RecentDay struct {
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	CheckInTime  *time.Time       `json:"check_in_time"`
	CheckOutTime *time.Time       `json:"check_out_time"`
	TotalHours   float64          `json:"total_hours"`
}
