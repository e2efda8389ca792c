package contract

import (
	"context"

	"ai-tutor-be/internal/entity"
)

type ReflectionRepository interface {
	Create(ctx context.Context, reflection *entity.Reflection) error
	FindAllByUserId(ctx context.Context, userId string) ([]*entity.Reflection, error)
	// FindRecentByUserId returns at most n reflections, most recent first.
	FindRecentByUserId(ctx context.Context, userId string, n int) ([]*entity.Reflection, error)
	DeleteAllByUserId(ctx context.Context, userId string) error
}
