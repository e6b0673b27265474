package application

import (
	"context"
	"time"

	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// StoreRepository exposes admin operations on stores.
// Sub-state writes touch a single document so pause, block and schedule never clobber each other.
type StoreRepository interface {
	Find(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error)
	FindByID(ctx context.Context, id string) (*admindomain.Store, error)
	Create(ctx context.Context, store *admindomain.Store) error
	SaveSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule, updatedAt time.Time) error
	SavePause(ctx context.Context, id string, pause availability.Pause, updatedAt time.Time) error
	SaveBlock(ctx context.Context, id string, block availability.Block, updatedAt time.Time) error
	// ClearExpiredPause resets the pause only if it is still the one that started at startedAt.
	ClearExpiredPause(ctx context.Context, id string, startedAt time.Time) error
}

// StoreFilter expresses admin search criteria.
type StoreFilter struct {
	Category    string
	Keyword     string
	BlockedOnly bool
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// StoreService describes admin store use-cases.
type StoreService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error)
	Detail(ctx context.Context, id string) (*admindomain.Store, error)
	Create(ctx context.Context, cmd CreateStoreCommand) (*admindomain.Store, error)
	UpdateSchedule(ctx context.Context, id string, cmd ScheduleCommand) (*admindomain.Store, error)
}

// AvailabilityService is the admin control surface over pause and block state.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, id string) (availability.Result, error)
	PauseStore(ctx context.Context, id string, minutes int, reason string) (availability.Pause, error)
	ResumeStorePause(ctx context.Context, id string) (availability.Pause, error)
	BlockStore(ctx context.Context, id string, cmd BlockStoreCommand) (availability.Block, error)
	UnblockStore(ctx context.Context, id string) (availability.Block, error)
}

// CreateStoreCommand contains inputs for registering a store.
type CreateStoreCommand struct {
	Name        string
	Category    string
	Description string
	Schedule    ScheduleCommand
}

// ScheduleCommand holds raw "HH:MM" windows per weekday (0=Sunday ... 6=Saturday).
type ScheduleCommand struct {
	Days map[time.Weekday][]WindowCommand
}

// WindowCommand is one unvalidated opening window.
type WindowCommand struct {
	OpensAt  string
	ClosesAt string
}

// BlockStoreCommand carries block input. Financial fields are optional unless IsFinancialBlock.
type BlockStoreCommand struct {
	Reason                string
	IsFinancialBlock      bool
	FinancialValue        *float64
	FinancialInstallments *int
}

func (c ScheduleCommand) build() (availability.WeeklySchedule, error) {
	days := make(map[time.Weekday][]availability.WindowInput, len(c.Days))
	for day, windows := range c.Days {
		inputs := make([]availability.WindowInput, 0, len(windows))
		for _, w := range windows {
			inputs = append(inputs, availability.WindowInput{OpensAt: w.OpensAt, ClosesAt: w.ClosesAt})
		}
		days[day] = inputs
	}
	return availability.NewWeeklySchedule(days)
}
