package contract

import (
	"context"

	"ai-tutor-be/internal/entity"
)

// ProfileRepository stores onboarding profiles as append-only snapshots.
// Create is the only write path; "updating" a profile means appending a new
// snapshot and reading back the latest one.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	// FindLatestByUserId returns the current snapshot, or nil when the user
	// has never been seen.
	FindLatestByUserId(ctx context.Context, userId string) (*entity.Profile, error)
	FindAllByUserId(ctx context.Context, userId string) ([]*entity.Profile, error)
	DeleteAllByUserId(ctx context.Context, userId string) error
}
