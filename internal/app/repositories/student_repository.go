package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentdesk/studentdesk/internal/app/models"
	"github.com/studentdesk/studentdesk/internal/pkg/apperrors"
)

// StudentRepository handles database operations for student records.
// Every operation is a single statement; the store's single-statement
// atomicity is the only isolation relied upon.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// GetAll retrieves all student records, newest first
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, name, age, course, year, gender
		FROM student
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Course,
			&student.Year,
			&student.Gender,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Create inserts a new student record and fills in the store-assigned identifier
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO student (name, age, course, year, gender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.Name, student.Age, student.Course, student.Year, student.Gender).
		Scan(&student.ID)
	if err != nil {
		return err
	}

	return nil
}

// Update rewrites the full field set of an existing record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE student
		SET name = $1, age = $2, course = $3, year = $4, gender = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Age, student.Course, student.Year, student.Gender, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
