package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// LearnerInsight is the single "current" classification result per user.
// The unique index on user_id is what makes the persister's upsert atomic:
// concurrent predictions converge on one row instead of racing an
// existence check (see repo.UpsertInsight). The most recent GeneratedAt is
// authoritative.
type LearnerInsight struct {
	ID                   int64          `gorm:"primaryKey;column:id" json:"id"`
	UserID               int64          `gorm:"uniqueIndex;column:user_id" json:"user_id"`
	LearningStyle        string         `gorm:"column:learning_style" json:"learning_style"`
	PredictionConfidence float64        `gorm:"column:prediction_confidence" json:"prediction_confidence"`
	MotivationQuote      string         `gorm:"column:motivation_quote" json:"motivation_quote"`
	Suggestions          datatypes.JSON `gorm:"column:suggestions" json:"suggestions"`
	GeneratedAt          time.Time      `gorm:"column:generated_at" json:"generated_at"`
}

func (LearnerInsight) TableName() string { return "user_learning_insights" }

// SuggestionList decodes the stored JSON array, returning nil when the
// column is empty or malformed.
func (li *LearnerInsight) SuggestionList() []string {
	if li == nil || len(li.Suggestions) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(li.Suggestions, &out); err != nil {
		return nil
	}
	return out
}

func EncodeSuggestions(suggestions []string) datatypes.JSON {
	if suggestions == nil {
		suggestions = []string{}
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
