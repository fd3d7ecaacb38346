package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studentdesk/studentdesk/internal/app/models"
	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/app/repositories"
	"github.com/studentdesk/studentdesk/internal/pkg/apperrors"
	"github.com/studentdesk/studentdesk/internal/pkg/auth"
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 6

// AuthService handles account registration and credential verification
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, error)
}

type authService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.IUserRepository, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Signup registers a new account. The username-or-email existence check runs
// first, but the table's unique constraints remain authoritative under races.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserInfo, error) {
	if strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	if len(req.Password) < MinPasswordLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}

	exists, err := s.userRepo.UsernameOrEmailExists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking account existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAccountExists
	}

	// The original stored a reversible encoding of the password; a one-way
	// salted hash replaces it here.
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Int64("userID", user.ID).Msg("New user registered")

	return &dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords produce
// the same error so the response does not reveal whether the account exists.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Int64("userID", user.ID).Msg("User logged in")

	return &dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
