// Package docs registers the OpenAPI description served at /docs.
// Regenerate with: swag init -g main.go --parseDependency
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "Register user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/me": {"get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/departments": {"get": {"tags": ["Departments"], "summary": "List departments", "responses": {"200": {"description": "OK"}}}},
        "/users": {"get": {"tags": ["Users"], "summary": "List employees", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/users/profile": {
            "get": {"tags": ["Users"], "summary": "Get my profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Users"], "summary": "Update my profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/attendance/checkin": {"post": {"tags": ["Attendance"], "summary": "Check in", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Already checked in today"}}}},
        "/attendance/checkout": {"post": {"tags": ["Attendance"], "summary": "Check out", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Not checked in, or already checked out"}}}},
        "/attendance/scan": {"post": {"tags": ["Attendance"], "summary": "Scan the office QR code", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/my-history": {"get": {"tags": ["Attendance"], "summary": "My attendance history", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/my-summary": {"get": {"tags": ["Attendance"], "summary": "My monthly summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/today": {"get": {"tags": ["Attendance"], "summary": "Today's status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/qr": {"get": {"tags": ["Attendance"], "summary": "Today's check-in QR code", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/all": {"get": {"tags": ["Reports"], "summary": "All attendance", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/employee/{id}": {"get": {"tags": ["Reports"], "summary": "Attendance of one employee", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/summary": {"get": {"tags": ["Reports"], "summary": "Team summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/export": {"get": {"tags": ["Reports"], "summary": "Export attendance", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/attendance/today-status": {"get": {"tags": ["Reports"], "summary": "Today's team status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/dashboard/employee": {"get": {"tags": ["Dashboard"], "summary": "Employee dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/dashboard/manager": {"get": {"tags": ["Dashboard"], "summary": "Manager dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Attendance Tracker API",
	Description:      "Employee check-in/check-out, history and manager reporting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
