package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/utils"

	"go.uber.org/zap"
)

var ErrFieldsRequired = errors.New("name, email and message are required")

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Feedback, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
		now:    utils.Now,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Feedback, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, ErrFieldsRequired
	}

	f := &Feedback{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Rating:    req.RatingValue(),
		UDID:      req.UDID,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateFeedback(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Infow("Feedback received", "id", f.ID, "rating", f.Rating)
	return f, nil
}
