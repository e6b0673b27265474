package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

func TestNewStoreName(t *testing.T) {
	t.Parallel()

	if _, err := NewStoreName("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if _, err := NewStoreName(strings.Repeat("a", 121)); err == nil {
		t.Fatalf("expected error for long name")
	}
	name, err := NewStoreName(" Cantina da Nona ")
	if err != nil || name.String() != "Cantina da Nona" {
		t.Fatalf("expected trimmed name, got %q err=%v", name, err)
	}
}

func TestNewCategory(t *testing.T) {
	t.Parallel()

	if c, err := NewCategory(""); err != nil || c != "outros" {
		t.Fatalf("expected default category, got %q err=%v", c, err)
	}
	if c, err := NewCategory("Pizzaria"); err != nil || c != "pizzaria" {
		t.Fatalf("expected normalised category, got %q err=%v", c, err)
	}
	if _, err := NewCategory("cassino"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestStoreIsActiveDerivedFromBlock(t *testing.T) {
	t.Parallel()

	store := Store{}
	if !store.IsActive() {
		t.Fatalf("expected unblocked store to be active")
	}
	store.Pause = availability.Pause{Active: true, StartedAt: time.Now()}
	if !store.IsActive() {
		t.Fatalf("pause must not make the store inactive")
	}
	store.Block = availability.Block{Blocked: true, Reason: "fraude"}
	if store.IsActive() {
		t.Fatalf("expected blocked store to be inactive")
	}
}

func TestStoreAvailability(t *testing.T) {
	t.Parallel()

	schedule, err := availability.NewWeeklySchedule(map[time.Weekday][]availability.WindowInput{
		time.Friday: {{OpensAt: "18:00", ClosesAt: "02:00"}},
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	resolver := availability.NewResolver(time.UTC)
	store := Store{Schedule: schedule}

	// Saturday 01:30 falls in Friday's overnight window.
	now := time.Date(2025, time.January, 11, 1, 30, 0, 0, time.UTC)
	if got := store.Availability(resolver, now); !got.IsOpen {
		t.Fatalf("expected open, got %+v", got)
	}

	store.Block = availability.Block{Blocked: true, Reason: "fraude"}
	got := store.Availability(resolver, now)
	if got.IsOpen || !got.ScheduleOpen || got.Reason == nil || *got.Reason != "fraude" {
		t.Fatalf("expected blocked with schedule open, got %+v", got)
	}
}
