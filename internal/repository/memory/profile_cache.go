package memory

import (
	"time"

	"ai-tutor-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps completed profiles in process memory so a normal turn
// skips one DB read. Only completed profiles may be cached: an incomplete
// profile changes on every reply and must always be read fresh.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// Default expiration 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(profile *entity.Profile) {
	if !profile.Completed {
		return
	}
	r.cache.Set(profile.UserId, profile, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId string) (*entity.Profile, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*entity.Profile), true
	}
	return nil, false
}

func (r *ProfileCache) Delete(userId string) {
	r.cache.Delete(userId)
}
