package domain

import (
	"time"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// Store aggregates data required for admin operations.
type Store struct {
	ID          string
	Name        StoreName
	Category    Category
	Description Description
	Schedule    availability.WeeklySchedule
	Pause       availability.Pause
	Block       availability.Block
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive is derived: only a block makes a store inactive at the record level.
func (s Store) IsActive() bool {
	return !s.Block.Blocked
}

// Record exposes the fields the availability resolver reads.
func (s Store) Record() availability.Record {
	return availability.Record{
		Schedule: s.Schedule,
		Pause:    s.Pause,
		Block:    s.Block,
	}
}

// Availability resolves the store at now.
func (s Store) Availability(resolver availability.Resolver, now time.Time) availability.Result {
	return resolver.Resolve(s.Record(), now)
}
