package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/studentdesk/studentdesk/internal/app/controllers"
	"github.com/studentdesk/studentdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Health check endpoint (public)
	router.GET("/health", healthController.Health)

	// --- Public auth routes ---
	auth := router.Group("/api/auth")
	{
		auth.GET("/status", authController.Status)
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Protected student routes ---
	students := router.Group("/students")
	students.Use(authMiddleware.RequireSession())
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
