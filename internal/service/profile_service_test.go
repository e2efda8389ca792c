package service

import (
	"context"
	"testing"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (IProfileService, *implementationFixture) {
	t.Helper()
	db := newTestDB(t)
	repo := implementation.NewProfileRepository(db)
	svc := NewProfileService(repo, memory.NewProfileCache(), nopLogger{})
	return svc, &implementationFixture{profileRepo: repo}
}

type implementationFixture struct {
	profileRepo interface {
		Create(ctx context.Context, p *entity.Profile) error
		FindLatestByUserId(ctx context.Context, userId string) (*entity.Profile, error)
		FindAllByUserId(ctx context.Context, userId string) ([]*entity.Profile, error)
		DeleteAllByUserId(ctx context.Context, userId string) error
	}
}

func TestOnboardingProgression(t *testing.T) {
	ctx := context.Background()
	svc, fx := newProfileService(t)

	// First contact: the triggering text is discarded, question 1 is asked.
	ready, prompt, err := svc.EnsureProfile(ctx, "U1", "hello there", false)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "occupation")

	latest, err := fx.profileRepo.FindLatestByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStateAskOccupation, latest.State)
	assert.Empty(t, latest.Occupation)

	// Answer 1 -> occupation recorded, age asked.
	ready, prompt, err = svc.EnsureProfile(ctx, "U1", "engineer", false)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "old")

	// Answer 2 -> age recorded, need asked.
	ready, prompt, err = svc.EnsureProfile(ctx, "U1", "30", false)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "goal")

	// Answer 3 -> profile complete.
	ready, prompt, err = svc.EnsureProfile(ctx, "U1", "job interviews", false)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "All set")

	latest, err = fx.profileRepo.FindLatestByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.True(t, latest.Completed)
	assert.Equal(t, "engineer", latest.Occupation)
	assert.Equal(t, "30", latest.Age)
	assert.Equal(t, "job interviews", latest.Need)
	assert.NotNil(t, latest.UpdatedAt)

	// 4th message is a normal turn: ready, no onboarding prompt.
	ready, prompt, err = svc.EnsureProfile(ctx, "U1", "how do I use past tense?", false)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Empty(t, prompt)
}

func TestCompletedProfileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, fx := newProfileService(t)

	for _, answer := range []string{"hi", "teacher", "25", "travel"} {
		_, _, err := svc.EnsureProfile(ctx, "U1", answer, false)
		require.NoError(t, err)
	}

	snapshots, err := fx.profileRepo.FindAllByUserId(ctx, "U1")
	require.NoError(t, err)
	before := len(snapshots)

	// No message content can reopen onboarding, and no snapshot is appended.
	for _, text := range []string{"engineer", "ask_occupation", ""} {
		ready, prompt, err := svc.EnsureProfile(ctx, "U1", text, false)
		require.NoError(t, err)
		assert.True(t, ready)
		assert.Empty(t, prompt)
	}

	snapshots, err = fx.profileRepo.FindAllByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, before, len(snapshots))
}

func TestAudioDuringOnboardingDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	svc, fx := newProfileService(t)

	_, _, err := svc.EnsureProfile(ctx, "U1", "hi", false)
	require.NoError(t, err)

	ready, prompt, err := svc.EnsureProfile(ctx, "U1", "", true)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "text message")

	// State unchanged: still waiting on the occupation answer.
	latest, err := fx.profileRepo.FindLatestByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStateAskOccupation, latest.State)
}

func TestUnknownProfileStateResets(t *testing.T) {
	ctx := context.Background()
	svc, fx := newProfileService(t)

	// Seed a corrupt snapshot directly.
	require.NoError(t, fx.profileRepo.Create(ctx, &entity.Profile{
		UserId: "U1",
		State:  "ask_shoe_size",
	}))

	ready, prompt, err := svc.EnsureProfile(ctx, "U1", "whatever", false)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Contains(t, prompt, "occupation")

	latest, err := fx.profileRepo.FindLatestByUserId(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStateAskOccupation, latest.State)
}
