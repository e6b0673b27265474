package application

import (
	"context"
	"log"
	"strings"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
)

// AvailabilityConfig provides dependencies for the availability use-cases.
type AvailabilityConfig struct {
	Repo     StoreRepository
	Clock    clock.Clock
	Resolver availability.Resolver
	Cache    *StoreCache
	Logger   *log.Logger
	Recorder Recorder
}

// availabilityService implements AvailabilityService.
type availabilityService struct {
	repo     StoreRepository
	clock    clock.Clock
	resolver availability.Resolver
	cache    *StoreCache
	logger   *log.Logger
	recorder Recorder
}

func NewAvailabilityService(cfg AvailabilityConfig) AvailabilityService {
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &availabilityService{
		repo:     cfg.Repo,
		clock:    clk,
		resolver: cfg.Resolver,
		cache:    cfg.Cache,
		logger:   cfg.Logger,
		recorder: recorder,
	}
}

// GetAvailability resolves the store at the current instant. An expired pause is
// written back as NONE; a failed write-back is only logged.
func (s *availabilityService) GetAvailability(ctx context.Context, id string) (availability.Result, error) {
	id = strings.TrimSpace(id)
	store, err := s.cache.Get(ctx, id, s.repo.FindByID)
	if err != nil {
		return availability.Result{}, err
	}

	now := s.clock.Now()
	result := store.Availability(s.resolver, now)
	if store.Pause.Expired(now) {
		s.clearExpiredPause(ctx, id, store.Pause)
	}
	s.recorder.Decision(result.IsOpen)
	return result, nil
}

func (s *availabilityService) clearExpiredPause(ctx context.Context, id string, pause availability.Pause) {
	defer s.cache.Invalidate(id)
	if err := s.repo.ClearExpiredPause(ctx, id, pause.StartedAt); err != nil {
		s.recorder.WriteBackFailed()
		if s.logger != nil {
			s.logger.Printf("stale read warning: expired pause write-back failed storeId=%s expiresAt=%v err=%v", id, pause.ExpiresAt, err)
		}
		return
	}
	s.recorder.Transition(TransitionExpire)
}

func (s *availabilityService) PauseStore(ctx context.Context, id string, minutes int, reason string) (availability.Pause, error) {
	id = strings.TrimSpace(id)
	now := s.clock.Now()
	pause, err := availability.StartPause(now, minutes, reason)
	if err != nil {
		return availability.Pause{}, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return availability.Pause{}, err
	}
	if err := s.repo.SavePause(ctx, id, pause, now); err != nil {
		return availability.Pause{}, err
	}
	s.cache.Invalidate(id)
	s.recorder.Transition(TransitionPause)
	return pause, nil
}

// ResumeStorePause clears the pause unconditionally. Resuming a store without a pause is a no-op.
func (s *availabilityService) ResumeStorePause(ctx context.Context, id string) (availability.Pause, error) {
	id = strings.TrimSpace(id)
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return availability.Pause{}, err
	}
	if store.Pause == (availability.Pause{}) {
		return availability.Pause{}, nil
	}
	if err := s.repo.SavePause(ctx, id, availability.Pause{}, s.clock.Now()); err != nil {
		return availability.Pause{}, err
	}
	s.cache.Invalidate(id)
	s.recorder.Transition(TransitionResume)
	return availability.Pause{}, nil
}

func (s *availabilityService) BlockStore(ctx context.Context, id string, cmd BlockStoreCommand) (availability.Block, error) {
	id = strings.TrimSpace(id)
	block, err := availability.NewBlock(availability.BlockRequest{
		Reason:                cmd.Reason,
		IsFinancialBlock:      cmd.IsFinancialBlock,
		FinancialValue:        cmd.FinancialValue,
		FinancialInstallments: cmd.FinancialInstallments,
	})
	if err != nil {
		return availability.Block{}, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return availability.Block{}, err
	}
	if err := s.repo.SaveBlock(ctx, id, block, s.clock.Now()); err != nil {
		return availability.Block{}, err
	}
	s.cache.Invalidate(id)
	s.recorder.Transition(TransitionBlock)
	return block, nil
}

// UnblockStore clears the block. Unblocking a store that is not blocked is a no-op.
func (s *availabilityService) UnblockStore(ctx context.Context, id string) (availability.Block, error) {
	id = strings.TrimSpace(id)
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return availability.Block{}, err
	}
	if store.Block == availability.Unblocked() {
		return availability.Unblocked(), nil
	}
	if err := s.repo.SaveBlock(ctx, id, availability.Unblocked(), s.clock.Now()); err != nil {
		return availability.Block{}, err
	}
	s.cache.Invalidate(id)
	s.recorder.Transition(TransitionUnblock)
	return availability.Unblocked(), nil
}
