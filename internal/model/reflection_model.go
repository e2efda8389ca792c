package model

import (
	"time"

	"github.com/google/uuid"
)

type Reflection struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	Id        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	UserId    string    `gorm:"type:text;not null;index"`
	Reflect   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Reflection) TableName() string {
	return "reflections"
}
