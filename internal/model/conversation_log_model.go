package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationLog struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	Id        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	UserId    string    `gorm:"type:text;not null;index"`
	Log       string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ConversationLog) TableName() string {
	return "conversation_logs"
}
