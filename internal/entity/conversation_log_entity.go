package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationLog is one resolved exchange between a student and the tutor.
// Records are append-only and never mutated; Seq ascending is insertion order.
type ConversationLog struct {
	Seq       int64
	Id        uuid.UUID
	UserId    string
	Log       string
	CreatedAt time.Time
}
