package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
	"github.com/mamadbah2/railfit/internal/service/validation"
)

// ErrInvalidUser indicates the submitted user failed validation.
var ErrInvalidUser = errors.New("invalid user")

// ErrInvalidRole indicates an unknown role filter.
var ErrInvalidRole = errors.New("invalid role")

// Service manages dashboard users.
type Service struct {
	repo     repository.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a new user service instance.
func NewService(repo repository.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		validate: validation.New(),
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// List returns the users matching the filter.
func (s *Service) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, filter.Role)
	}
	users, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// Create validates and stores a new active user.
func (s *Service) Create(ctx context.Context, req models.NewUserRequest) (models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = strings.TrimSpace(req.Company)

	if err := s.validate.Struct(req); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrInvalidUser, validation.Message(err))
	}

	user := models.User{
		ID:       s.newID(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Company:  req.Company,
		Status:   models.UserActive,
		JoinDate: s.now().Format(models.DateLayout),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("store user: %w", err)
	}

	s.logger.Info("user created", zap.String("id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Delete removes a user. It returns repository.ErrNotFound for unknown ids.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}
