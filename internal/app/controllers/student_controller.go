package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/app/services"
	"github.com/studentdesk/studentdesk/internal/middleware"
)

// StudentController handles student record CRUD operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ListStudents retrieves all student records, newest first
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Error fetching students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().Int("count", len(students)).Msg("Fetched students")
	ctx.JSON(http.StatusOK, students)
}

// CreateStudent inserts a new student record
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// Non-numeric age/year land here via FlexInt
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Age and year must be valid numbers")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error adding student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("id", student.ID).Msg("Student inserted")
	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent rewrites the full field set of an existing record
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Age and year must be valid numbers")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Error updating student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student record by ID
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := studentIDParam(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Error deleting student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// studentIDParam parses the :id path parameter, answering 400 when it is not a number
func studentIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
