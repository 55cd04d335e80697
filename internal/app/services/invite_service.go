package services

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

// DefaultInvitePageSize matches the admin invites view's page length.
const DefaultInvitePageSize = 10

// Ensure implementation satisfies the interface
var _ InviteService = (*InviteServiceImpl)(nil)

// InviteService maps invite operations onto the backend's invite endpoints.
type InviteService interface {
	Create(ctx context.Context, email string) error
	List(ctx context.Context, pageNumber, pageSize int) (*models.Page[models.Invite], error)
	GetByCode(ctx context.Context, code string) (*models.Invite, error)
}

type InviteServiceImpl struct {
	client Backend
	logger *zap.Logger
}

func NewInviteService(client Backend, logger *zap.Logger) *InviteServiceImpl {
	return &InviteServiceImpl{client: client, logger: logger}
}

func (s *InviteServiceImpl) Create(ctx context.Context, email string) error {
	l := s.logger.With(zap.String("method", "Create"), zap.String("email", email))
	l.Info("Creating invite")

	if err := s.client.Post(ctx, "/api/invites", models.CreateInviteRequest{Email: email}, nil); err != nil {
		l.Warn("Failed to create invite", zap.Error(err))
		return err
	}
	return nil
}

func (s *InviteServiceImpl) List(ctx context.Context, pageNumber, pageSize int) (*models.Page[models.Invite], error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultInvitePageSize
	}

	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var page models.Page[models.Invite]
	if err := s.client.Get(ctx, "/api/invites", q, &page); err != nil {
		s.logger.Warn("Failed to list invites", zap.Error(err))
		return nil, err
	}
	return &page, nil
}

func (s *InviteServiceImpl) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	var invite models.Invite
	if err := s.client.Get(ctx, "/api/invites/"+code, nil, &invite); err != nil {
		s.logger.Warn("Failed to fetch invite", zap.Error(err))
		return nil, err
	}
	return &invite, nil
}
