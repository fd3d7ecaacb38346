package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studentdesk/studentdesk/internal/app/models"
	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/app/repositories"
	"github.com/studentdesk/studentdesk/internal/pkg/apperrors"
)

// StudentService handles student record operations
type StudentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentService{
		studentRepo: studentRepo,
	}
}

// validateStudentRequest checks field presence and numeric plausibility.
// Validation is deliberately shallow: this is a demonstration-grade surface,
// not a domain model with business rules.
func validateStudentRequest(req *dto.StudentRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Course) == "" ||
		strings.TrimSpace(req.Gender) == "" ||
		req.Age == nil ||
		req.Year == nil {
		return apperrors.NewValidationError("All fields are required")
	}

	if req.Age.Int() <= 0 || req.Year.Int() <= 0 {
		return apperrors.NewValidationError("Age and year must be positive numbers")
	}

	return nil
}

// List retrieves all student records, newest first
func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	if students == nil {
		students = []*models.Student{}
	}

	return students, nil
}

// Create validates and inserts a new student record
func (s *studentService) Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	if err := validateStudentRequest(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:   req.Name,
		Age:    req.Age.Int(),
		Course: req.Course,
		Year:   req.Year.Int(),
		Gender: req.Gender,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, classifyStoreError(err)
	}

	return student, nil
}

// Update rewrites the full field set of an existing record and echoes it back
func (s *studentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Student ID must be a valid number")
	}

	if err := validateStudentRequest(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:     id,
		Name:   req.Name,
		Age:    req.Age.Int(),
		Course: req.Course,
		Year:   req.Year.Int(),
		Gender: req.Gender,
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// Delete removes a student record by ID
func (s *studentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("Student ID must be a valid number")
	}

	return s.studentRepo.Delete(ctx, id)
}
