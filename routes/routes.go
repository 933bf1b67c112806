package routes

import (
	"srms_go/controllers"
	"srms_go/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	studentController := &controllers.StudentController{}
	paymentController := &controllers.PaymentController{}
	marksController := &controllers.MarksController{}
	teacherController := &controllers.TeacherController{}
	reportController := &controllers.ReportController{}

	// API group
	api := app.Group("/api")

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/auth/me", authController.GetProfile)
	protected.Post("/auth/logout", authController.Logout)

	// Student self-service routes
	student := protected.Group("/student")
	student.Get("/profile", studentController.GetMyRecord)
	student.Put("/profile", middleware.RequireEdit("profile"), studentController.UpdateMyProfile)

	// Student management routes
	students := protected.Group("/students")
	students.Get("/", middleware.RequireView("students"), studentController.GetStudents)
	students.Post("/", middleware.RequireTeacherOrAbove(), studentController.CreateStudent)
	students.Get("/email/:email", middleware.RequireView("students"), studentController.GetStudentByEmail)
	students.Get("/:id", studentController.GetStudent) // students reach their own record
	students.Put("/:id", middleware.RequireTeacherOrAbove(), studentController.UpdateStudent)
	students.Delete("/:id", middleware.RequireTeacherOrAbove(), studentController.DeleteStudent)

	// Payment routes
	students.Post("/:id/payment", middleware.RequireTeacherOrAbove(), paymentController.RecordPayment)
	students.Get("/:id/payments", paymentController.GetPaymentHistory) // ownership checked in handler

	// Marks routes
	marks := protected.Group("/marks")
	marks.Get("/", middleware.RequireView("students"), marksController.GetMarks)
	marks.Post("/", middleware.RequireEdit("marks"), marksController.UpsertMarks)
	marks.Delete("/:id/:semester", middleware.RequireEdit("marks"), marksController.DeleteMarks)

	// Teacher management routes (the teachers capability is superadmin-only)
	teachers := protected.Group("/teachers")
	teachers.Get("/", middleware.RequireView("teachers"), teacherController.GetTeachers)
	teachers.Get("/:id", middleware.RequireView("teachers"), teacherController.GetTeacher)
	teachers.Post("/", middleware.RequireEdit("teachers"), teacherController.CreateTeacher)
	teachers.Put("/:id", middleware.RequireEdit("teachers"), teacherController.UpdateTeacher)
	teachers.Delete("/:id", middleware.RequireEdit("teachers"), teacherController.DeleteTeacher)

	// Reports (superadmin only)
	reports := protected.Group("/reports", middleware.RequireSuperadmin())
	reports.Get("/fees.xlsx", reportController.ExportFeeReport)
}
