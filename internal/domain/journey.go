package domain

import "time"

// DeveloperJourney is a course. HoursToStudy and Deadline (days) feed the
// dashboard's required-daily-effort message.
type DeveloperJourney struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	Name         string `gorm:"column:name" json:"name"`
	ImagePath    string `gorm:"column:image_path" json:"image_path"`
	XP           int    `gorm:"column:xp" json:"xp"`
	HoursToStudy int    `gorm:"column:hours_to_study" json:"hours_to_study"`
	Difficulty   int    `gorm:"column:difficulty" json:"difficulty"`
	Deadline     int    `gorm:"column:deadline" json:"deadline"`
}

func (DeveloperJourney) TableName() string { return "developer_journeys" }

// JourneyCompletion records a finished course. StudyDuration is free text in
// the source schema ("90 menit", "120") and must be coerced, never parsed
// strictly.
type JourneyCompletion struct {
	ID            int64     `gorm:"primaryKey;column:id" json:"id"`
	UserID        int64     `gorm:"index;column:user_id" json:"user_id"`
	JourneyID     int64     `gorm:"column:journey_id" json:"journey_id"`
	StudyDuration string    `gorm:"column:study_duration" json:"study_duration"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`

	Journey *DeveloperJourney `gorm:"foreignKey:JourneyID" json:"journey,omitempty"`
}

func (JourneyCompletion) TableName() string { return "developer_journey_completions" }

// JourneyTracking is one "module viewed" event. The owning column is named
// developer_id in the source schema, not user_id.
type JourneyTracking struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	DeveloperID int64     `gorm:"index;column:developer_id" json:"developer_id"`
	JourneyID   int64     `gorm:"column:journey_id" json:"journey_id"`
	LastViewed  time.Time `gorm:"column:last_viewed" json:"last_viewed"`

	Journey *DeveloperJourney `gorm:"foreignKey:JourneyID" json:"journey,omitempty"`
}

func (JourneyTracking) TableName() string { return "developer_journey_trackings" }

type JourneySubmission struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	SubmitterID int64     `gorm:"index;column:submitter_id" json:"submitter_id"`
	JourneyID   int64     `gorm:"column:journey_id" json:"journey_id"`
	Rating      int       `gorm:"column:rating" json:"rating"`
	Note        string    `gorm:"column:note" json:"note"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`

	Journey *DeveloperJourney `gorm:"foreignKey:JourneyID" json:"journey,omitempty"`
}

func (JourneySubmission) TableName() string { return "developer_journey_submissions" }
