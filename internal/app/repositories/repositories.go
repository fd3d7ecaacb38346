package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentdesk/studentdesk/internal/app/models"
)

// IUserRepository defines the interface for account-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
}

// IStudentRepository defines the interface for student-record database operations
type IStudentRepository interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		StudentRepository: NewStudentRepository(db),
	}
}
