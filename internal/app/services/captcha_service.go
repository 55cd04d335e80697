package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

// Ensure implementation satisfies the interface
var _ CaptchaService = (*CaptchaServiceImpl)(nil)

// CaptchaService fetches registration captchas. Captchas are single-use, so
// every fetch goes to the backend.
type CaptchaService interface {
	Fetch(ctx context.Context) (*models.Captcha, error)
}

type CaptchaServiceImpl struct {
	client Backend
	logger *zap.Logger
}

func NewCaptchaService(client Backend, logger *zap.Logger) *CaptchaServiceImpl {
	return &CaptchaServiceImpl{client: client, logger: logger}
}

func (s *CaptchaServiceImpl) Fetch(ctx context.Context) (*models.Captcha, error) {
	var captcha models.Captcha
	if err := s.client.Get(ctx, "/api/captcha", nil, &captcha); err != nil {
		s.logger.Warn("Failed to fetch captcha", zap.Error(err))
		return nil, err
	}
	return &captcha, nil
}
