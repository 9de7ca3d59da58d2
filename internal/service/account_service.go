package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"quiz-league/internal/domain"
	"quiz-league/internal/logger"
)

// AccountService provisions players. It backs the operator CLI; there is no
// self-registration endpoint.
type AccountService interface {
	Register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type accountService struct {
	users domain.UserRepository
}

func NewAccountService(users domain.UserRepository) AccountService {
	return &accountService{users: users}
}

func (s *accountService) Register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if password == "" {
		return nil, domain.NewValidationError("password is required")
	}
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to look up user", err)
	}
	if existing != nil {
		return nil, domain.NewValidationError("username already taken").WithContext("username", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}
	user := domain.NewUser(username, string(hash), isAdmin)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		logger.Get().Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, domain.NewPersistenceError("failed to create user", err)
	}
	logger.Get().Info("User registered", zap.Int64("user_id", user.ID), zap.Bool("is_admin", isAdmin))
	return user, nil
}

func (s *accountService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, domain.NewPersistenceError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found").WithContext("username", username)
	}
	return user, nil
}
