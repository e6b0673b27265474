package application

import (
	"context"
	"strings"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
	"github.com/sngm3741/delivery-availability/api/internal/public/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// storeQueryService is the concrete implementation of StoreQueryService.
type storeQueryService struct {
	repo         StoreRepository
	availability AvailabilityQuery
	resolver     availability.Resolver
	clock        clock.Clock
}

// NewStoreQueryService creates a new store query service. Listings resolve every
// store at the same instant; single-store availability goes through query.
func NewStoreQueryService(repo StoreRepository, query AvailabilityQuery, resolver availability.Resolver, clk clock.Clock) StoreQueryService {
	return &storeQueryService{repo: repo, availability: query, resolver: resolver, clock: clk}
}

func (s *storeQueryService) List(ctx context.Context, filter StoreFilter, paging Paging) (domain.StorePage, error) {
	stores, err := s.repo.Find(ctx, filter)
	if err != nil {
		return domain.StorePage{}, err
	}

	now := s.clock.Now()
	views := make([]domain.StoreView, 0, len(stores))
	for _, store := range stores {
		result := s.resolver.Resolve(store.Record(), now)
		if filter.OpenOnly && !result.IsOpen {
			continue
		}
		views = append(views, domain.StoreView{Store: store, Availability: result})
	}

	page, limit := normalizePaging(paging)
	total := len(views)
	start := total
	// Compare page counts first; (page-1)*limit can overflow for huge pages.
	if page-1 < (total+limit-1)/limit {
		start = (page - 1) * limit
	}
	end := start + limit
	if end > total {
		end = total
	}
	return domain.StorePage{
		Items: views[start:end],
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (s *storeQueryService) Detail(ctx context.Context, id string) (*domain.StoreView, error) {
	store, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return &domain.StoreView{
		Store:        *store,
		Availability: s.resolver.Resolve(store.Record(), s.clock.Now()),
	}, nil
}

func (s *storeQueryService) Availability(ctx context.Context, id string) (availability.Result, error) {
	return s.availability.GetAvailability(ctx, strings.TrimSpace(id))
}

func normalizePaging(paging Paging) (int, int) {
	page := paging.Page
	if page <= 0 {
		page = 1
	}
	limit := paging.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
