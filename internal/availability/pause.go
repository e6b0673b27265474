package availability

import (
	"strings"
	"time"
)

// MaxPauseMinutes caps a timed pause at one year. Longer closures should use a block
// or an indefinite pause.
const MaxPauseMinutes = 365 * 24 * 60

// Pause is a manual temporary closure. The zero value is the NONE state.
type Pause struct {
	Active    bool       `json:"active"`
	Reason    string     `json:"reason"`
	StartedAt time.Time  `json:"startedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// StartPause builds an ACTIVE pause starting at now. minutes == 0 means indefinite.
// Any previous pause is replaced, which resets both the timer and the reason.
func StartPause(now time.Time, minutes int, reason string) (Pause, error) {
	if minutes < 0 {
		return Pause{}, invalid("minutes", "must be >= 0, got %d", minutes)
	}
	if minutes > MaxPauseMinutes {
		return Pause{}, invalid("minutes", "must be <= %d, got %d", MaxPauseMinutes, minutes)
	}
	pause := Pause{
		Active:    true,
		Reason:    strings.TrimSpace(reason),
		StartedAt: now,
	}
	if minutes > 0 {
		expiresAt := now.Add(time.Duration(minutes) * time.Minute)
		pause.ExpiresAt = &expiresAt
	}
	return pause, nil
}

// Expired reports whether an active pause has reached its expiry at now.
func (p Pause) Expired(now time.Time) bool {
	return p.Active && p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

// Effective applies lazy expiry: an expired pause reads as NONE.
func (p Pause) Effective(now time.Time) Pause {
	if !p.Active || p.Expired(now) {
		return Pause{}
	}
	return p
}

// Indefinite reports whether the pause waits for a manual resume.
func (p Pause) Indefinite() bool {
	return p.Active && p.ExpiresAt == nil
}
