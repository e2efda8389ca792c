package contract

import (
	"context"

	"ai-tutor-be/internal/entity"
)

// ConversationLogRepository is the append-only store for resolved exchanges.
// There is no update: records are immutable once written.
type ConversationLogRepository interface {
	Create(ctx context.Context, log *entity.ConversationLog) error
	FindAllByUserId(ctx context.Context, userId string) ([]*entity.ConversationLog, error)
	FindRecentByUserId(ctx context.Context, userId string, n int) ([]*entity.ConversationLog, error)
	CountByUserId(ctx context.Context, userId string) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId string) error
}
