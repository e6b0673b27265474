package availability

import "time"

const (
	ReasonOutsideHours = "outside operating hours"
	ReasonPaused       = "temporarily paused"
)

// Record is the part of a store the resolver reads.
type Record struct {
	Schedule WeeklySchedule
	Pause    Pause
	Block    Block
}

// Result is the computed availability of a store at one instant. It is never persisted.
type Result struct {
	IsOpen       bool    `json:"isOpen"`
	ScheduleOpen bool    `json:"scheduleOpen"`
	Pause        Pause   `json:"pause"`
	Reason       *string `json:"reason"`
}

// Resolver composes schedule, pause and block into one decision.
type Resolver struct {
	location *time.Location
}

// NewResolver returns a resolver evaluating schedules in loc. A nil loc means UTC.
func NewResolver(loc *time.Location) Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return Resolver{location: loc}
}

// Location returns the timezone schedules are evaluated in.
func (r Resolver) Location() *time.Location {
	if r.location == nil {
		return time.UTC
	}
	return r.location
}

// Resolve decides whether the store is open at now.
// Precedence: block, then effective pause, then the weekly schedule.
func (r Resolver) Resolve(rec Record, now time.Time) Result {
	if now.IsZero() {
		panic("availability: Resolve called with zero time")
	}

	pause := rec.Pause.Effective(now)
	result := Result{
		ScheduleOpen: rec.Schedule.OpenAt(now.In(r.Location())),
		Pause:        pause,
	}

	switch {
	case rec.Block.Blocked:
		result.IsOpen = false
		result.Reason = stringPtr(rec.Block.Reason)
	case pause.Active:
		result.IsOpen = false
		reason := pause.Reason
		if reason == "" {
			reason = ReasonPaused
		}
		result.Reason = stringPtr(reason)
	case result.ScheduleOpen:
		result.IsOpen = true
	default:
		result.Reason = stringPtr(ReasonOutsideHours)
	}
	return result
}

func stringPtr(s string) *string {
	return &s
}
