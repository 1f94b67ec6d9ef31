package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

var ErrInvalidTarget = errors.New("invalid learning target")

type TargetService interface {
	SetTarget(ctx context.Context, identity Identity, targetType string, value int) (*domain.LearningTarget, error)
	SetStudyDurationTarget(ctx context.Context, identity Identity, minutes int) (*domain.LearningTarget, error)
}

type targetService struct {
	resolver   UserResolver
	targetRepo repos.TargetRepo
	log        *logger.Logger
}

func NewTargetService(resolver UserResolver, targetRepo repos.TargetRepo, baseLog *logger.Logger) TargetService {
	return &targetService{
		resolver:   resolver,
		targetRepo: targetRepo,
		log:        baseLog.With("service", "TargetService"),
	}
}

func (s *targetService) SetTarget(ctx context.Context, identity Identity, targetType string, value int) (*domain.LearningTarget, error) {
	if !domain.ValidTargetType(targetType) {
		return nil, fmt.Errorf("%w: target_type must be %q or %q", ErrInvalidTarget, domain.TargetTypeModuleCount, domain.TargetTypeStudyDuration)
	}
	if value <= 0 {
		return nil, fmt.Errorf("%w: target_value must be positive", ErrInvalidTarget)
	}

	user, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	target := &domain.LearningTarget{
		UserID:      user.ID,
		TargetType:  targetType,
		TargetValue: value,
		Status:      domain.TargetStatusActive,
		StartDate:   time.Now(),
	}
	if err := s.targetRepo.Upsert(ctx, nil, target); err != nil {
		return nil, fmt.Errorf("persist target: %w", err)
	}

	s.log.Info("learning target updated",
		"user_id", user.ID,
		"target_type", targetType,
		"target_value", value,
	)
	return target, nil
}

func (s *targetService) SetStudyDurationTarget(ctx context.Context, identity Identity, minutes int) (*domain.LearningTarget, error) {
	return s.SetTarget(ctx, identity, domain.TargetTypeStudyDuration, minutes)
}
