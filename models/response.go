package models

type MessageResponse struct {
	Message string `json:"message" example:"Checked in successfully"`
}

type AttendanceActionResponse struct {
	Message    string     `json:"message" example:"Checked in successfully"`
	Attendance Attendance `json:"attendance"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"unexpected end of JSON input"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type FieldError struct {
	Field string `json:"field" example:"email"`
	Tag   string `json:"tag" example:"email"`
	Msg   string `json:"message" example:"Please provide a valid email"`
}
