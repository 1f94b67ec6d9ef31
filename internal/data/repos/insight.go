package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type InsightRepo interface {
	GetLatestByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.LearnerInsight, error)
	Upsert(ctx context.Context, tx *gorm.DB, insight *domain.LearnerInsight) error
}

type insightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	repoLog := baseLog.With("repo", "InsightRepo")
	return &insightRepo{db: db, log: repoLog}
}

func (ir *insightRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID int64) (*domain.LearnerInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var result domain.LearnerInsight
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert keeps exactly one insight row per user. Repeated predictions for
// the same user update the existing row rather than accumulating history.
func (ir *insightRepo) Upsert(ctx context.Context, tx *gorm.DB, insight *domain.LearnerInsight) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"learning_style",
				"prediction_confidence",
				"motivation_quote",
				"suggestions",
				"generated_at",
			}),
		}).
		Create(insight).Error
}
