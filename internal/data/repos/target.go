package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type TargetRepo interface {
	GetActiveByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.LearningTarget, error)
	GetByUserAndType(ctx context.Context, tx *gorm.DB, userID int64, targetType string) (*domain.LearningTarget, error)
	Upsert(ctx context.Context, tx *gorm.DB, target *domain.LearningTarget) error
}

type targetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTargetRepo(db *gorm.DB, baseLog *logger.Logger) TargetRepo {
	repoLog := baseLog.With("repo", "TargetRepo")
	return &targetRepo{db: db, log: repoLog}
}

func (tr *targetRepo) GetActiveByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.LearningTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result domain.LearningTarget
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.TargetStatusActive).
		Order("start_date DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *targetRepo) GetByUserAndType(ctx context.Context, tx *gorm.DB, userID int64, targetType string) (*domain.LearningTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result domain.LearningTarget
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND target_type = ?", userID, targetType).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert replaces the row for (user_id, target_type) in a single statement.
// The unique index makes concurrent writers for the same pair serialize at
// the database instead of racing a read-then-write.
func (tr *targetRepo) Upsert(ctx context.Context, tx *gorm.DB, target *domain.LearningTarget) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "target_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"target_value",
				"status",
				"start_date",
			}),
		}).
		Create(target).Error
}
