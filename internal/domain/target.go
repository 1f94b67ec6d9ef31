package domain

import "time"

const (
	TargetTypeStudyDuration = "study_duration"
	TargetTypeModuleCount   = "module_count"

	TargetStatusActive   = "active"
	TargetStatusInactive = "inactive"
)

// LearningTarget holds at most one active row per (user, target_type); the
// unique index backs the conditional upsert in the target repo.
type LearningTarget struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	UserID      int64     `gorm:"uniqueIndex:idx_learning_targets_user_type;column:user_id" json:"user_id"`
	TargetType  string    `gorm:"uniqueIndex:idx_learning_targets_user_type;column:target_type" json:"target_type"`
	TargetValue int       `gorm:"column:target_value" json:"target_value"`
	Status      string    `gorm:"column:status" json:"status"`
	StartDate   time.Time `gorm:"column:start_date" json:"start_date"`
}

func (LearningTarget) TableName() string { return "learning_targets" }

func ValidTargetType(t string) bool {
	return t == TargetTypeStudyDuration || t == TargetTypeModuleCount
}
