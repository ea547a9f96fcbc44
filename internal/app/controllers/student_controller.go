package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmdelacruz/sis-backend/internal/app/models/dto"
	"github.com/jmdelacruz/sis-backend/internal/app/services"
	"github.com/jmdelacruz/sis-backend/internal/middleware"
)

// StudentController handles student profile CRUD endpoints
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetAllStudents lists every student record
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// CreateStudentProfile creates a new student profile
func (c *StudentController) CreateStudentProfile(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request payload"))
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", req.StudentID).Msg("Student creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.StudentResponse{
		Message: "Student profile created successfully",
		Student: student,
	})
}

// ValidateStudentProfile dry-runs the creation payload's required-field
// check without writing anything.
func (c *StudentController) ValidateStudentProfile(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request payload"))
		return
	}

	ctx.JSON(http.StatusOK, c.studentService.Validate(&req))
}

// GetStudentProfile looks up a student by natural key
func (c *StudentController) GetStudentProfile(ctx *gin.Context) {
	student, err := c.studentService.GetByStudentID(ctx.Request.Context(), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// GetStudentByID looks up a student by storage-assigned id
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid id parameter"))
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// UpdateStudentProfile applies a partial update; the studentId in the path
// is authoritative and any studentId in the body is ignored.
func (c *StudentController) UpdateStudentProfile(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request payload"))
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), ctx.Param("studentId"), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", ctx.Param("studentId")).Msg("Student update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentResponse{
		Message: "Student profile updated successfully",
		Student: student,
	})
}

// DeleteStudentProfile removes a student by natural key
func (c *StudentController) DeleteStudentProfile(ctx *gin.Context) {
	if err := c.studentService.Delete(ctx.Request.Context(), ctx.Param("studentId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student profile deleted successfully"})
}
