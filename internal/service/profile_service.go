package service

import (
	"context"
	"fmt"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/memory"
)

// IProfileService drives the fixed 3-question onboarding dialog that gates
// all tutoring behavior.
type IProfileService interface {
	// EnsureProfile advances the onboarding state machine with the incoming
	// message. It returns ready=true once the profile is complete; otherwise
	// prompt carries the next question (or acknowledgement) to send.
	EnsureProfile(ctx context.Context, userId, incomingText string, isAudio bool) (ready bool, prompt string, err error)

	// Get returns the current profile snapshot, or nil for an unknown user.
	Get(ctx context.Context, userId string) (*entity.Profile, error)
}

type profileService struct {
	profileRepo contract.ProfileRepository
	cache       *memory.ProfileCache
	logger      logger.ILogger
}

func NewProfileService(profileRepo contract.ProfileRepository, cache *memory.ProfileCache, sysLogger logger.ILogger) IProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cache:       cache,
		logger:      sysLogger,
	}
}

func (s *profileService) Get(ctx context.Context, userId string) (*entity.Profile, error) {
	if p, found := s.cache.Get(userId); found {
		return p, nil
	}
	p, err := s.profileRepo.FindLatestByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("find latest profile: %w", err)
	}
	if p != nil && p.Completed {
		s.cache.Save(p)
	}
	return p, nil
}

func (s *profileService) EnsureProfile(ctx context.Context, userId, incomingText string, isAudio bool) (bool, string, error) {
	profile, err := s.Get(ctx, userId)
	if err != nil {
		return false, "", err
	}

	// First-ever contact: create the profile and ask question 1. The
	// triggering text itself is discarded.
	if profile == nil {
		fresh := &entity.Profile{
			UserId: userId,
			State:  entity.ProfileStateAskOccupation,
		}
		if err := s.profileRepo.Create(ctx, fresh); err != nil {
			return false, "", fmt.Errorf("create profile: %w", err)
		}
		return false, questionOccupation, nil
	}

	if profile.Completed {
		return true, "", nil
	}

	// Onboarding answers must arrive as text; a voice message cannot be
	// consumed as an answer, so re-prompt without advancing.
	if isAudio {
		return false, answerInTextPrompt, nil
	}

	switch profile.State {
	case entity.ProfileStateAskOccupation:
		if err := s.advance(ctx, profile, func(p *entity.Profile) {
			p.Occupation = incomingText
			p.State = entity.ProfileStateAskAge
		}); err != nil {
			return false, "", err
		}
		return false, questionAge, nil

	case entity.ProfileStateAskAge:
		if err := s.advance(ctx, profile, func(p *entity.Profile) {
			p.Age = incomingText
			p.State = entity.ProfileStateAskNeed
		}); err != nil {
			return false, "", err
		}
		return false, questionNeed, nil

	case entity.ProfileStateAskNeed:
		now := time.Now()
		if err := s.advance(ctx, profile, func(p *entity.Profile) {
			p.Need = incomingText
			p.State = ""
			p.Completed = true
			p.UpdatedAt = &now
		}); err != nil {
			return false, "", err
		}
		return false, onboardingDone, nil

	default:
		// A corrupt state value must not strand the user: reset to the
		// beginning of the dialog.
		s.logger.Warn("profile", "unknown onboarding state, resetting", map[string]interface{}{
			"user_id": userId,
			"state":   profile.State,
		})
		reset := &entity.Profile{
			UserId: userId,
			State:  entity.ProfileStateAskOccupation,
		}
		if err := s.profileRepo.Create(ctx, reset); err != nil {
			return false, "", fmt.Errorf("reset profile: %w", err)
		}
		return false, questionOccupation, nil
	}
}

// advance appends a mutated clone of the current snapshot. The store has no
// in-place update; latest-wins by append order.
func (s *profileService) advance(ctx context.Context, current *entity.Profile, mutate func(*entity.Profile)) error {
	next := current.Clone()
	mutate(next)
	if err := s.profileRepo.Create(ctx, next); err != nil {
		return fmt.Errorf("append profile snapshot: %w", err)
	}
	if next.Completed {
		s.cache.Save(next)
	}
	return nil
}
