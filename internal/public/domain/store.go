package domain

import (
	"time"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// Store represents a publicly visible store entity.
type Store struct {
	ID          string
	Name        string
	Category    string
	Description string
	Schedule    availability.WeeklySchedule
	Pause       availability.Pause
	Block       availability.Block
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record exposes the fields the availability resolver reads.
func (s Store) Record() availability.Record {
	return availability.Record{
		Schedule: s.Schedule,
		Pause:    s.Pause,
		Block:    s.Block,
	}
}

// StoreView is a store annotated with its availability at read time.
type StoreView struct {
	Store
	Availability availability.Result
}

// StorePage is one page of a store listing.
type StorePage struct {
	Items []StoreView
	Page  int
	Limit int
	Total int
}
