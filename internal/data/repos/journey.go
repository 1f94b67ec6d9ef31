package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type CompletionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, completions []*domain.JourneyCompletion) ([]*domain.JourneyCompletion, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.JourneyCompletion, error)
	TotalXP(ctx context.Context, tx *gorm.DB, userID int64) (int64, error)
}

type completionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	repoLog := baseLog.With("repo", "CompletionRepo")
	return &completionRepo{db: db, log: repoLog}
}

func (cr *completionRepo) Create(ctx context.Context, tx *gorm.DB, completions []*domain.JourneyCompletion) ([]*domain.JourneyCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(completions) == 0 {
		return []*domain.JourneyCompletion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (cr *completionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.JourneyCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*domain.JourneyCompletion
	if err := transaction.WithContext(ctx).
		Preload("Journey").
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *completionRepo) TotalXP(ctx context.Context, tx *gorm.DB, userID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&domain.JourneyCompletion{}).
		Joins("JOIN developer_journeys ON developer_journeys.id = developer_journey_completions.journey_id").
		Where("developer_journey_completions.user_id = ?", userID).
		Select("COALESCE(SUM(developer_journeys.xp), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

type TrackingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trackings []*domain.JourneyTracking) ([]*domain.JourneyTracking, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.JourneyTracking, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID int64) (int64, error)
	LatestWithJourney(ctx context.Context, tx *gorm.DB, userID int64) (*domain.JourneyTracking, error)
}

type trackingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackingRepo(db *gorm.DB, baseLog *logger.Logger) TrackingRepo {
	repoLog := baseLog.With("repo", "TrackingRepo")
	return &trackingRepo{db: db, log: repoLog}
}

func (tr *trackingRepo) Create(ctx context.Context, tx *gorm.DB, trackings []*domain.JourneyTracking) ([]*domain.JourneyTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(trackings) == 0 {
		return []*domain.JourneyTracking{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&trackings).Error; err != nil {
		return nil, err
	}
	return trackings, nil
}

func (tr *trackingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.JourneyTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*domain.JourneyTracking
	if err := transaction.WithContext(ctx).
		Where("developer_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *trackingRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.JourneyTracking{}).
		Where("developer_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (tr *trackingRepo) LatestWithJourney(ctx context.Context, tx *gorm.DB, userID int64) (*domain.JourneyTracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result domain.JourneyTracking
	if err := transaction.WithContext(ctx).
		Preload("Journey").
		Where("developer_id = ?", userID).
		Order("last_viewed DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, submissions []*domain.JourneySubmission) ([]*domain.JourneySubmission, error)
	LatestByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.JourneySubmission, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	repoLog := baseLog.With("repo", "SubmissionRepo")
	return &submissionRepo{db: db, log: repoLog}
}

func (sr *submissionRepo) Create(ctx context.Context, tx *gorm.DB, submissions []*domain.JourneySubmission) ([]*domain.JourneySubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(submissions) == 0 {
		return []*domain.JourneySubmission{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (sr *submissionRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.JourneySubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result domain.JourneySubmission
	if err := transaction.WithContext(ctx).
		Preload("Journey").
		Where("submitter_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
