package domain

import "time"

type ExamRegistration struct {
	ID          int64 `gorm:"primaryKey;column:id" json:"id"`
	ExamineesID int64 `gorm:"index;column:examinees_id" json:"examinees_id"`
}

func (ExamRegistration) TableName() string { return "exam_registrations" }

// ExamResult links to the user through its registration. Score is free text
// ("85", "85%", "N/A") and IsPassed is an int flag (0 = failed) in the
// source schema.
type ExamResult struct {
	ID             int64     `gorm:"primaryKey;column:id" json:"id"`
	RegistrationID int64     `gorm:"index;column:registration_id" json:"registration_id"`
	Score          string    `gorm:"column:score" json:"score"`
	IsPassed       int       `gorm:"column:is_passed" json:"is_passed"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`

	Registration *ExamRegistration `gorm:"foreignKey:RegistrationID" json:"registration,omitempty"`
}

func (ExamResult) TableName() string { return "exam_results" }
