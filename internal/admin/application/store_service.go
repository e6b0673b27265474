package application

import (
	"context"
	"strings"

	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
)

// storeService implements StoreService.
type storeService struct {
	repo  StoreRepository
	clock clock.Clock
	cache *StoreCache
}

// NewStoreService wires the store use-cases. cache may be nil; when set, schedule
// updates evict the cached record so availability reads see the new hours.
func NewStoreService(repo StoreRepository, clk clock.Clock, cache *StoreCache) StoreService {
	return &storeService{repo: repo, clock: clk, cache: cache}
}

func (s *storeService) List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *storeService) Detail(ctx context.Context, id string) (*admindomain.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *storeService) Create(ctx context.Context, cmd CreateStoreCommand) (*admindomain.Store, error) {
	name, err := admindomain.NewStoreName(cmd.Name)
	if err != nil {
		return nil, &availability.ValidationError{Field: "name", Message: err.Error()}
	}
	category, err := admindomain.NewCategory(cmd.Category)
	if err != nil {
		return nil, &availability.ValidationError{Field: "category", Message: err.Error()}
	}
	description, err := admindomain.NewDescription(cmd.Description)
	if err != nil {
		return nil, &availability.ValidationError{Field: "description", Message: err.Error()}
	}
	schedule, err := cmd.Schedule.build()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	store := &admindomain.Store{
		Name:        name,
		Category:    category,
		Description: description,
		Schedule:    schedule,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) UpdateSchedule(ctx context.Context, id string, cmd ScheduleCommand) (*admindomain.Store, error) {
	id = strings.TrimSpace(id)
	schedule, err := cmd.build()
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSchedule(ctx, id, schedule, s.clock.Now()); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)
	return s.repo.FindByID(ctx, id)
}
