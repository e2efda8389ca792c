package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reflection is one distilled teacher reflection over a block of past
// conversations. Append-only, keyed by UserId.
type Reflection struct {
	Seq       int64
	Id        uuid.UUID
	UserId    string
	Reflect   string
	CreatedAt time.Time
}
