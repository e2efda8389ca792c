package entity

import (
	"time"

	"github.com/google/uuid"
)

// Onboarding states. A profile walks ask_occupation -> ask_age -> ask_need
// and is then marked completed; it never transitions out of completed.
const (
	ProfileStateAskOccupation = "ask_occupation"
	ProfileStateAskAge        = "ask_age"
	ProfileStateAskNeed       = "ask_need"
)

// Profile is a per-user onboarding record. The store has no in-place update,
// so every mutation is read-latest -> clone -> modify -> append; the row with
// the greatest Seq for a user is the current profile (latest-wins).
type Profile struct {
	Seq        int64
	Id         uuid.UUID
	UserId     string
	State      string
	Occupation string
	Age        string
	Need       string
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Clone returns a copy ready to be appended as a new snapshot. Seq and Id are
// zeroed so the store assigns fresh ones.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Seq = 0
	c.Id = uuid.Nil
	return &c
}
