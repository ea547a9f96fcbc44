package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmdelacruz/sis-backend/internal/app/controllers"
	"github.com/jmdelacruz/sis-backend/internal/app/models/dto"
	"github.com/jmdelacruz/sis-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Student Information System API")
	})

	api := router.Group("/api")

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	users := api.Group("/users")
	{
		users.POST("/register", userController.Register)
		users.POST("/login", userController.Login)
	}

	// --- Protected user management routes ---
	usersProtected := users.Group("")
	usersProtected.Use(authMiddleware.RequireToken())
	{
		usersProtected.GET("", userController.GetUsers)
		usersProtected.GET("/id/:id", userController.GetUserByID)
		usersProtected.PUT("/id/:id", userController.UpdateUserByID)
		usersProtected.DELETE("/id/:id", userController.DeleteUserByID)
		usersProtected.GET("/:userId", userController.GetUserProfile)
		usersProtected.PUT("/:userId", userController.UpdateUser)
		usersProtected.DELETE("/:userId", userController.DeleteUser)
	}

	// --- Protected student routes ---
	students := api.Group("/students")
	students.Use(authMiddleware.RequireToken())
	{
		students.GET("", studentController.GetAllStudents)
		students.POST("/profile", studentController.CreateStudentProfile)
		students.POST("/validate", studentController.ValidateStudentProfile)
		students.GET("/profile/:studentId", studentController.GetStudentProfile)
		students.PUT("/profile/:studentId", studentController.UpdateStudentProfile)
		students.DELETE("/profile/:studentId", studentController.DeleteStudentProfile)
		students.GET("/id/:id", studentController.GetStudentByID)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Route not found"))
	})
}
