package common

import (
	"time"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// PauseResponse is the wire form of a pause. NONE serialises as {"active":false}.
type PauseResponse struct {
	Active    bool       `json:"active"`
	Reason    string     `json:"reason,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// AvailabilityResponse is the wire form of a resolver result.
type AvailabilityResponse struct {
	IsOpen       bool          `json:"isOpen"`
	ScheduleOpen bool          `json:"scheduleOpen"`
	Pause        PauseResponse `json:"pause"`
	Reason       *string       `json:"reason"`
}

// WindowPayload is one "HH:MM" opening window on the wire.
type WindowPayload struct {
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

func NewPauseResponse(pause availability.Pause) PauseResponse {
	if !pause.Active {
		return PauseResponse{}
	}
	resp := PauseResponse{Active: true, Reason: pause.Reason}
	if !pause.StartedAt.IsZero() {
		startedAt := pause.StartedAt.UTC()
		resp.StartedAt = &startedAt
	}
	if pause.ExpiresAt != nil {
		expiresAt := pause.ExpiresAt.UTC()
		resp.ExpiresAt = &expiresAt
	}
	return resp
}

func NewAvailabilityResponse(result availability.Result) AvailabilityResponse {
	return AvailabilityResponse{
		IsOpen:       result.IsOpen,
		ScheduleOpen: result.ScheduleOpen,
		Pause:        NewPauseResponse(result.Pause),
		Reason:       result.Reason,
	}
}

// NewScheduleResponse renders the schedule as seven window lists indexed by weekday
// (0=Sunday). Closed days are empty lists.
func NewScheduleResponse(schedule availability.WeeklySchedule) [][]WindowPayload {
	days := make([][]WindowPayload, len(schedule))
	for day, windows := range schedule {
		days[day] = make([]WindowPayload, 0, len(windows))
		for _, w := range windows {
			days[day] = append(days[day], WindowPayload{OpensAt: w.OpensAt.String(), ClosesAt: w.ClosesAt.String()})
		}
	}
	return days
}
