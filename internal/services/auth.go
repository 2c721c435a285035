package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"naija-events/internal/models"
	"naija-events/internal/utils"
)

// UserRepository interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo UserRepository
	hasher   *utils.PasswordHasher
	log      *zap.Logger
}

// NewAuthService creates a new authentication service. A nil hasher uses the
// default Argon2id parameters.
func NewAuthService(userRepo UserRepository, hasher *utils.PasswordHasher, log *zap.Logger) *AuthService {
	if hasher == nil {
		hasher = utils.NewPasswordHasher(nil)
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		log:      log,
	}
}

// Signup creates an account. Field problems come back as models.ValidationErrors;
// a registered email is reported on the email field.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(req.FullName)
	user := &models.User{
		Email:        models.NormalizeEmail(req.Email),
		FullName:     &fullName,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, models.ValidationErrors{"email": "An account with this email already exists"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials. Unknown emails and wrong passwords both yield
// models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		s.log.Warn("stored password hash is unreadable", zap.String("user_id", user.ID), zap.Error(err))
		return nil, models.ErrInvalidCredentials
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads a user by ID
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, models.ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}
