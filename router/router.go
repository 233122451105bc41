package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"attendance-tracker/config/middleware"
	_ "attendance-tracker/docs"
	"attendance-tracker/handlers"
	"attendance-tracker/pkg/attendance"
	"attendance-tracker/pkg/paseto"
	"attendance-tracker/repository"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Users       repository.UserRepository
	Departments repository.DepartmentRepository
	Attendance  repository.AttendanceRepository
	QRCodes     repository.QRCodeRepository
	Tokens      *paseto.Maker
	Clock       attendance.Clock
	Logger      *zap.Logger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	logger := deps.Logger
	logger.Info("registering routes")

	reconciler := attendance.NewReconciler(deps.Attendance, deps.Clock, logger.Named("reconciler"))

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens, logger)
	userHandler := handlers.NewUserHandler(deps.Users, logger)
	deptHandler := handlers.NewDepartmentHandler(deps.Departments, logger)
	attendanceHandler := handlers.NewAttendanceHandler(reconciler, deps.Attendance, deps.QRCodes, deps.Clock, logger)
	reportHandler := handlers.NewReportHandler(deps.Attendance, deps.Users, deps.Clock, logger)
	dashboardHandler := handlers.NewDashboardHandler(deps.Attendance, deps.Users, deps.Clock, logger)

	auth := middleware.AuthMiddleware(deps.Tokens, deps.Users)
	employeeOnly := middleware.EmployeeOnly()
	managerOnly := middleware.ManagerOnly()
	// Check-in/out and login are cheap to hammer; one every 2s with a small burst.
	throttle := middleware.RateLimitByUser(rate.Limit(0.5), 5)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Attendance Tracker API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", throttle, authHandler.Register)
	authGroup.Post("/login", throttle, authHandler.Login)
	authGroup.Get("/me", auth, authHandler.Me)

	api.Get("/departments", deptHandler.GetAllDepartments)

	userGroup := api.Group("/users", auth)
	userGroup.Get("/", userHandler.Employees)
	userGroup.Get("/profile", userHandler.GetProfile)
	userGroup.Put("/profile", userHandler.UpdateProfile)

	att := api.Group("/attendance", auth)
	att.Post("/checkin", employeeOnly, throttle, attendanceHandler.CheckIn)
	att.Post("/checkout", employeeOnly, throttle, attendanceHandler.CheckOut)
	att.Post("/scan", employeeOnly, throttle, attendanceHandler.ScanQRCode)
	att.Get("/my-history", employeeOnly, attendanceHandler.MyHistory)
	att.Get("/my-summary", employeeOnly, attendanceHandler.MySummary)
	att.Get("/today", employeeOnly, attendanceHandler.Today)

	att.Get("/qr", managerOnly, attendanceHandler.GenerateQRCode)
	att.Get("/all", managerOnly, reportHandler.All)
	att.Get("/employee/:id", managerOnly, reportHandler.ByEmployee)
	att.Get("/summary", managerOnly, reportHandler.Summary)
	att.Get("/export", managerOnly, reportHandler.Export)
	att.Get("/today-status", managerOnly, reportHandler.TodayStatus)

	dash := api.Group("/dashboard", auth)
	dash.Get("/employee", employeeOnly, dashboardHandler.Employee)
	dash.Get("/manager", managerOnly, dashboardHandler.Manager)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})
}
