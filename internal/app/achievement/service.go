package achievement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/app/user"
	"portfolio/internal/utils"

	"go.uber.org/zap"
)

var ErrAchievementRequired = errors.New("achievement id is required")

type Service interface {
	List(ctx context.Context, udid string) ([]*Achievement, error)
	// Unlock reports created=false when the pair was already unlocked.
	Unlock(ctx context.Context, udid, achievementID string) (a *Achievement, created bool, err error)
}

type service struct {
	repo    Repository
	userSvc user.Service
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewService(repo Repository, userSvc user.Service, logger *zap.Logger) Service {
	return &service{
		repo:    repo,
		userSvc: userSvc,
		logger:  logger.Sugar(),
		now:     utils.Now,
	}
}

func (s *service) List(ctx context.Context, udid string) ([]*Achievement, error) {
	if _, err := s.userSvc.GetByUDID(ctx, udid); err != nil {
		return nil, err
	}
	achievements, err := s.repo.GetAchievementsByUser(ctx, udid)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

func (s *service) Unlock(ctx context.Context, udid, achievementID string) (*Achievement, bool, error) {
	achievementID = strings.TrimSpace(achievementID)
	if achievementID == "" {
		return nil, false, ErrAchievementRequired
	}
	if _, err := s.userSvc.GetByUDID(ctx, udid); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetUnlocks(ctx, udid, achievementID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check achievement: %w", err)
	}
	if len(existing) > 0 {
		s.removeDuplicates(ctx, existing[1:])
		return existing[0], false, nil
	}

	a := &Achievement{
		UserUDID:      udid,
		AchievementID: achievementID,
		UnlockedAt:    s.now(),
	}
	if err := s.repo.CreateAchievement(ctx, a); err != nil {
		return nil, false, fmt.Errorf("failed to save achievement: %w", err)
	}

	s.logger.Infow("Achievement unlocked", "udid", udid, "achievement_id", achievementID)
	return a, true, nil
}

// removeDuplicates is best effort; the kept record is already the answer.
func (s *service) removeDuplicates(ctx context.Context, dups []*Achievement) {
	if len(dups) == 0 {
		return
	}
	s.logger.Warnw("Cleaning up duplicate achievements",
		"udid", dups[0].UserUDID,
		"achievement_id", dups[0].AchievementID,
		"duplicates", len(dups),
	)
	for _, d := range dups {
		if err := s.repo.DeleteAchievement(ctx, d.ID); err != nil {
			s.logger.Errorw("Failed to delete duplicate achievement", "id", d.ID, "error", err)
		}
	}
}
