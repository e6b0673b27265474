package application

import (
	"context"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/public/domain"
)

// StoreRepository abstracts read access to stores.
type StoreRepository interface {
	Find(ctx context.Context, filter StoreFilter) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
}

// AvailabilityQuery resolves one store and persists lazy pause expiry.
// The admin availability service satisfies it.
type AvailabilityQuery interface {
	GetAvailability(ctx context.Context, id string) (availability.Result, error)
}

// StoreFilter expresses search criteria for stores.
type StoreFilter struct {
	Category string
	Keyword  string
	// OpenOnly keeps stores whose resolved availability is open.
	OpenOnly bool
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// StoreQueryService describes read use-cases.
type StoreQueryService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging) (domain.StorePage, error)
	Detail(ctx context.Context, id string) (*domain.StoreView, error)
	Availability(ctx context.Context, id string) (availability.Result, error)
}
