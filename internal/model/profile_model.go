package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile rows are append-only snapshots; there is deliberately no unique
// index on user_id. The greatest Seq per user is the current snapshot.
type Profile struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	Id         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	UserId     string    `gorm:"type:text;not null;index"`
	State      string    `gorm:"type:text"`
	Occupation string    `gorm:"type:text"`
	Age        string    `gorm:"type:text"`
	Need       string    `gorm:"type:text"`
	Completed  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  *time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
