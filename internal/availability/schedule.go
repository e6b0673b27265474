package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" in the 00:00–23:59 range.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(value)
	hh, mm, ok := strings.Cut(trimmed, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("time of day must be HH:MM, got %q", value)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || !isDigits(hh) {
		return 0, fmt.Errorf("time of day has non-numeric hours: %q", value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || !isDigits(mm) {
		return 0, fmt.Errorf("time of day has non-numeric minutes: %q", value)
	}
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("time of day out of range 00:00-23:59: %q", value)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func timeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Window is a recurring open interval [OpensAt, ClosesAt).
// ClosesAt <= OpensAt spills into the next calendar day.
type Window struct {
	OpensAt  TimeOfDay
	ClosesAt TimeOfDay
}

// Overnight reports whether the window continues past midnight.
func (w Window) Overnight() bool {
	return w.ClosesAt <= w.OpensAt
}

// containsSameDay checks the part of the window that lies on the day it starts.
func (w Window) containsSameDay(at TimeOfDay) bool {
	if w.Overnight() {
		return at >= w.OpensAt
	}
	return at >= w.OpensAt && at < w.ClosesAt
}

// containsSpill checks the next-day part of an overnight window.
func (w Window) containsSpill(at TimeOfDay) bool {
	return w.Overnight() && at < w.ClosesAt
}

// WindowInput is the unvalidated "HH:MM" form of a window.
type WindowInput struct {
	OpensAt  string
	ClosesAt string
}

// WeeklySchedule holds the windows of each weekday, indexed by time.Weekday.
// A weekday without windows is closed all day; the zero value is closed all week.
type WeeklySchedule [7][]Window

// NewWeeklySchedule validates raw windows per weekday. This is the only place where
// malformed times are rejected; evaluation assumes a validated schedule.
func NewWeeklySchedule(days map[time.Weekday][]WindowInput) (WeeklySchedule, error) {
	var schedule WeeklySchedule
	for day, inputs := range days {
		if day < time.Sunday || day > time.Saturday {
			return WeeklySchedule{}, invalid("schedule", "weekday %d out of range 0-6", int(day))
		}
		windows := make([]Window, 0, len(inputs))
		for i, input := range inputs {
			opens, err := ParseTimeOfDay(input.OpensAt)
			if err != nil {
				return WeeklySchedule{}, invalid(fmt.Sprintf("schedule[%d][%d].opensAt", int(day), i), "%v", err)
			}
			closes, err := ParseTimeOfDay(input.ClosesAt)
			if err != nil {
				return WeeklySchedule{}, invalid(fmt.Sprintf("schedule[%d][%d].closesAt", int(day), i), "%v", err)
			}
			windows = append(windows, Window{OpensAt: opens, ClosesAt: closes})
		}
		if len(windows) > 0 {
			schedule[day] = windows
		}
	}
	return schedule, nil
}

// OpenAt reports whether the schedule alone considers the store open at t.
// t must already be expressed in the deployment's timezone.
func (s WeeklySchedule) OpenAt(t time.Time) bool {
	at := timeOfDayOf(t)
	day := t.Weekday()
	for _, w := range s[day] {
		if w.containsSameDay(at) {
			return true
		}
	}
	previous := (day + 6) % 7
	for _, w := range s[previous] {
		if w.containsSpill(at) {
			return true
		}
	}
	return false
}

// Empty reports whether no weekday has a window.
func (s WeeklySchedule) Empty() bool {
	for _, windows := range s {
		if len(windows) > 0 {
			return false
		}
	}
	return true
}
