package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService maps account operations onto the backend's user endpoints. It
// shapes payloads only; failures propagate unchanged from the HTTP layer.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	DeleteCurrent(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
}

type UserServiceImpl struct {
	client Backend
	logger *zap.Logger
}

func NewUserService(client Backend, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{client: client, logger: logger}
}

func (s *UserServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	l := s.logger.With(zap.String("method", "Register"), zap.String("username", req.Username))
	l.Debug("Registering user")

	var user models.User
	if err := s.client.Post(ctx, "/api/users/register", req, &user); err != nil {
		l.Warn("Registration failed", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("username", req.Username))
	l.Debug("Logging in")

	var resp models.TokenResponse
	if err := s.client.Post(ctx, "/api/users/login", req, &resp); err != nil {
		l.Warn("Login failed", zap.Error(err))
		return nil, err
	}
	return &resp, nil
}

func (s *UserServiceImpl) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, "/api/users/me", nil, &user); err != nil {
		s.logger.Warn("Failed to fetch current user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) DeleteCurrent(ctx context.Context) error {
	l := s.logger.With(zap.String("method", "DeleteCurrent"))
	l.Info("Soft-deleting current user")

	if err := s.client.Delete(ctx, "/api/users/me", nil); err != nil {
		l.Error("Soft delete failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *UserServiceImpl) Restore(ctx context.Context) (*models.User, error) {
	l := s.logger.With(zap.String("method", "Restore"))
	l.Info("Restoring current user")

	var user models.User
	if err := s.client.Post(ctx, "/api/users/restore", struct{}{}, &user); err != nil {
		l.Error("Restore failed", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
