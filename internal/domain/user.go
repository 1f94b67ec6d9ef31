package domain

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the hosted `users` table. Two addressing schemes coexist:
// the serial internal id used by every other table, and the auth provider's
// UUID carried in access tokens. Both must resolve to the same row.
type User struct {
	ID         int64     `gorm:"primaryKey;column:id" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;uniqueIndex;column:uuid" json:"uuid"`
	Name       string    `gorm:"column:name" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	UserRole   string    `gorm:"column:user_role" json:"user_role"`
	ImagePath  string    `gorm:"column:image_path" json:"image_path"`
	StudentID  string    `gorm:"column:student_id" json:"student_id"`
	University string    `gorm:"column:university" json:"university"`
	Major      string    `gorm:"column:major" json:"major"`
	Mentor     string    `gorm:"column:mentor" json:"mentor"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (User) TableName() string { return "users" }
