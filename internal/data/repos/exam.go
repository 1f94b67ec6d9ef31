package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type ExamRepo interface {
	CreateRegistrations(ctx context.Context, tx *gorm.DB, registrations []*domain.ExamRegistration) ([]*domain.ExamRegistration, error)
	CreateResults(ctx context.Context, tx *gorm.DB, results []*domain.ExamResult) ([]*domain.ExamResult, error)
	ListResultsByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.ExamResult, error)
}

type examRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamRepo(db *gorm.DB, baseLog *logger.Logger) ExamRepo {
	repoLog := baseLog.With("repo", "ExamRepo")
	return &examRepo{db: db, log: repoLog}
}

func (er *examRepo) CreateRegistrations(ctx context.Context, tx *gorm.DB, registrations []*domain.ExamRegistration) ([]*domain.ExamRegistration, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(registrations) == 0 {
		return []*domain.ExamRegistration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

func (er *examRepo) CreateResults(ctx context.Context, tx *gorm.DB, results []*domain.ExamResult) ([]*domain.ExamResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(results) == 0 {
		return []*domain.ExamResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListResultsByUser resolves ownership through exam_registrations, newest
// first so callers can slice a recent-history window directly.
func (er *examRepo) ListResultsByUser(ctx context.Context, tx *gorm.DB, userID int64) ([]*domain.ExamResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*domain.ExamResult
	if err := transaction.WithContext(ctx).
		Joins("JOIN exam_registrations ON exam_registrations.id = exam_results.registration_id").
		Where("exam_registrations.examinees_id = ?", userID).
		Order("exam_results.created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
