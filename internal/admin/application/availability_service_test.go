package application

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

var brt = time.FixedZone("BRT", -3*60*60)

// 2025-01-06 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2025, time.January, 6, hour, minute, 0, 0, brt)
}

func mondayStore(t *testing.T, id string) admindomain.Store {
	t.Helper()
	schedule, err := availability.NewWeeklySchedule(map[time.Weekday][]availability.WindowInput{
		time.Monday: {{OpensAt: "09:00", ClosesAt: "18:00"}},
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return admindomain.Store{ID: id, Name: "Cantina da Nona", Schedule: schedule}
}

type availabilityFixture struct {
	svc      AvailabilityService
	repo     *fakeStoreRepo
	clock    *stepClock
	recorder *countingRecorder
	logs     *bytes.Buffer
}

func newAvailabilityFixture(t *testing.T, now time.Time, withCache bool, stores ...admindomain.Store) availabilityFixture {
	t.Helper()
	repo := newFakeStoreRepo(stores...)
	clk := newStepClock(now)
	recorder := newCountingRecorder()
	var cache *StoreCache
	if withCache {
		var err error
		cache, err = NewStoreCache(16, time.Minute, clk, recorder)
		if err != nil {
			t.Fatalf("cache: %v", err)
		}
	}
	logs := &bytes.Buffer{}
	svc := NewAvailabilityService(AvailabilityConfig{
		Repo:     repo,
		Clock:    clk,
		Resolver: availability.NewResolver(brt),
		Cache:    cache,
		Logger:   log.New(logs, "", 0),
		Recorder: recorder,
	})
	return availabilityFixture{svc: svc, repo: repo, clock: clk, recorder: recorder, logs: logs}
}

func reasonOf(r availability.Result) string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}

func TestAvailabilityService_ScheduleScenarios(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	ctx := context.Background()

	got, err := f.svc.GetAvailability(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.ScheduleOpen || !got.IsOpen {
		t.Fatalf("expected open at monday 10:00, got %+v", got)
	}

	f.clock.Set(monday(20, 0))
	got, err = f.svc.GetAvailability(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ScheduleOpen || got.IsOpen || reasonOf(got) != "outside operating hours" {
		t.Fatalf("expected closed outside hours, got %+v reason=%q", got, reasonOf(got))
	}
}

func TestAvailabilityService_PauseLifecycle(t *testing.T) {
	t.Parallel()

	for _, withCache := range []bool{false, true} {
		withCache := withCache
		name := "without cache"
		if withCache {
			name = "with cache"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newAvailabilityFixture(t, monday(10, 0), withCache, mondayStore(t, "s1"))
			ctx := context.Background()

			// Warm the cache so the pause has to invalidate it.
			if _, err := f.svc.GetAvailability(ctx, "s1"); err != nil {
				t.Fatalf("warmup: %v", err)
			}

			pause, err := f.svc.PauseStore(ctx, "s1", 60, "sem entregador")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !pause.Active || pause.ExpiresAt == nil || !pause.ExpiresAt.Equal(monday(11, 0)) {
				t.Fatalf("unexpected pause %+v", pause)
			}

			f.clock.Set(monday(10, 30))
			got, err := f.svc.GetAvailability(ctx, "s1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.IsOpen || reasonOf(got) != "sem entregador" || !got.Pause.Active {
				t.Fatalf("expected closed by pause, got %+v reason=%q", got, reasonOf(got))
			}

			f.clock.Set(monday(11, 5))
			got, err = f.svc.GetAvailability(ctx, "s1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !got.IsOpen || got.Pause.Active {
				t.Fatalf("expected open after expiry, got %+v", got)
			}
			if stored := f.repo.get("s1"); stored.Pause.Active {
				t.Fatalf("expected expired pause written back, got %+v", stored.Pause)
			}
			if f.recorder.transitions[TransitionExpire] != 1 {
				t.Fatalf("expected one expire transition, got %d", f.recorder.transitions[TransitionExpire])
			}
		})
	}
}

func TestAvailabilityService_PauseRoundTrip(t *testing.T) {
	t.Parallel()

	now := monday(13, 0)
	f := newAvailabilityFixture(t, now, true, mondayStore(t, "s1"))
	ctx := context.Background()

	if _, err := f.svc.PauseStore(ctx, "s1", 30, "lunch break"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := f.svc.GetAvailability(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Pause.Reason != "lunch break" {
		t.Fatalf("expected lunch break, got %q", got.Pause.Reason)
	}
	if got.Pause.ExpiresAt == nil || !got.Pause.ExpiresAt.Equal(now.Add(30*time.Minute)) {
		t.Fatalf("expected expiry now+30m, got %v", got.Pause.ExpiresAt)
	}
}

func TestAvailabilityService_WriteBackFailureStillReportsNone(t *testing.T) {
	t.Parallel()

	store := mondayStore(t, "s1")
	store.Pause, _ = availability.StartPause(monday(9, 0), 15, "fila cheia")
	f := newAvailabilityFixture(t, monday(10, 0), false, store)
	f.repo.clearErr = errStorage

	got, err := f.svc.GetAvailability(context.Background(), "s1")
	if err != nil {
		t.Fatalf("write-back failure must not surface, got %v", err)
	}
	if got.Pause.Active || !got.IsOpen {
		t.Fatalf("expected expired pause to read as NONE, got %+v", got)
	}
	if f.recorder.writeBacks != 1 {
		t.Fatalf("expected write-back failure recorded, got %d", f.recorder.writeBacks)
	}
	if !strings.Contains(f.logs.String(), "stale read warning") {
		t.Fatalf("expected stale read warning logged, got %q", f.logs.String())
	}
	if !f.repo.get("s1").Pause.Active {
		t.Fatalf("expected persisted pause untouched when write-back fails")
	}
}

func TestAvailabilityService_WriteBackOnlyForExpiredPause(t *testing.T) {
	t.Parallel()

	store := mondayStore(t, "s1")
	store.Pause, _ = availability.StartPause(monday(9, 55), 30, "fila cheia")
	f := newAvailabilityFixture(t, monday(10, 0), false, store)
	ctx := context.Background()

	if _, err := f.svc.GetAvailability(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.repo.clearCalls != 0 {
		t.Fatalf("expected no write-back while the pause is running, got %d", f.repo.clearCalls)
	}

	f.clock.Set(monday(10, 25))
	if _, err := f.svc.GetAvailability(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.repo.clearCalls != 1 {
		t.Fatalf("expected one write-back at expiry, got %d", f.repo.clearCalls)
	}

	if _, err := f.svc.GetAvailability(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.repo.clearCalls != 1 {
		t.Fatalf("expected later reads to find NONE persisted, got %d write-backs", f.repo.clearCalls)
	}
}

func TestAvailabilityService_ResumeIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	ctx := context.Background()

	pause, err := f.svc.ResumeStorePause(ctx, "s1")
	if err != nil {
		t.Fatalf("resume without pause must not fail, got %v", err)
	}
	if pause.Active {
		t.Fatalf("expected NONE, got %+v", pause)
	}
	if f.repo.writeCount() != 0 {
		t.Fatalf("expected no writes for no-op resume, got %d", f.repo.writeCount())
	}

	if _, err := f.svc.PauseStore(ctx, "s1", 0, "reforma"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := f.svc.ResumeStorePause(ctx, "s1"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if f.repo.get("s1").Pause.Active {
		t.Fatalf("expected pause cleared")
	}
	got, _ := f.svc.GetAvailability(ctx, "s1")
	if !got.IsOpen {
		t.Fatalf("expected schedule-driven open after resume, got %+v", got)
	}
}

func TestAvailabilityService_PauseValidation(t *testing.T) {
	t.Parallel()

	for _, minutes := range []int{-1, availability.MaxPauseMinutes + 1, 200_000_000} {
		f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
		_, err := f.svc.PauseStore(context.Background(), "s1", minutes, "x")
		if !errors.Is(err, availability.ErrValidation) {
			t.Fatalf("minutes=%d: expected ErrValidation, got %v", minutes, err)
		}
		if f.repo.writeCount() != 0 || f.repo.finds != 0 {
			t.Fatalf("minutes=%d: validation must happen before any storage access", minutes)
		}
	}
}

func TestAvailabilityService_BlockScenario(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), true, mondayStore(t, "s1"))
	ctx := context.Background()
	value, installments := 150.0, 3

	block, err := f.svc.BlockStore(ctx, "s1", BlockStoreCommand{
		Reason:                "inadimplência",
		IsFinancialBlock:      true,
		FinancialValue:        &value,
		FinancialInstallments: &installments,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !block.Blocked || block.FinancialValue != 150 || block.FinancialInstallments != 3 {
		t.Fatalf("unexpected block %+v", block)
	}
	if f.repo.get("s1").IsActive() {
		t.Fatalf("expected store inactive while blocked")
	}

	for _, ts := range []time.Time{monday(10, 0), monday(20, 0), monday(3, 0)} {
		f.clock.Set(ts)
		got, err := f.svc.GetAvailability(ctx, "s1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.IsOpen || reasonOf(got) != "inadimplência" {
			t.Fatalf("expected blocked at %v, got %+v reason=%q", ts, got, reasonOf(got))
		}
	}

	if _, err := f.svc.UnblockStore(ctx, "s1"); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	f.clock.Set(monday(10, 0))
	got, _ := f.svc.GetAvailability(ctx, "s1")
	if !got.IsOpen {
		t.Fatalf("expected schedule-driven open after unblock, got %+v", got)
	}
	if !f.repo.get("s1").IsActive() {
		t.Fatalf("expected store active after unblock")
	}
}

func TestAvailabilityService_BlockDoesNotTouchPause(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	ctx := context.Background()
	if _, err := f.svc.PauseStore(ctx, "s1", 0, "reforma"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := f.svc.BlockStore(ctx, "s1", BlockStoreCommand{Reason: "documentação"}); err != nil {
		t.Fatalf("block: %v", err)
	}
	if _, err := f.svc.ResumeStorePause(ctx, "s1"); err != nil {
		t.Fatalf("resume: %v", err)
	}

	got, _ := f.svc.GetAvailability(ctx, "s1")
	if got.IsOpen || reasonOf(got) != "documentação" {
		t.Fatalf("resume must never lift a block, got %+v", got)
	}
	if !f.repo.get("s1").Block.Blocked {
		t.Fatalf("expected block untouched by resume")
	}
}

func TestAvailabilityService_UnblockIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	block, err := f.svc.UnblockStore(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unblock without block must not fail, got %v", err)
	}
	if block.Blocked {
		t.Fatalf("expected cleared block")
	}
	if f.repo.writeCount() != 0 {
		t.Fatalf("expected no writes, got %d", f.repo.writeCount())
	}
}

func TestAvailabilityService_BlockValidation(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	_, err := f.svc.BlockStore(context.Background(), "s1", BlockStoreCommand{Reason: "inadimplência", IsFinancialBlock: true})
	if !errors.Is(err, availability.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if f.repo.writeCount() != 0 {
		t.Fatalf("expected no partial writes")
	}
}

func TestAvailabilityService_NotFound(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), true)
	ctx := context.Background()

	if _, err := f.svc.GetAvailability(ctx, "missing"); !errors.Is(err, availability.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
	if _, err := f.svc.PauseStore(ctx, "missing", 10, "x"); !errors.Is(err, availability.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
	if _, err := f.svc.ResumeStorePause(ctx, "missing"); !errors.Is(err, availability.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
	if _, err := f.svc.BlockStore(ctx, "missing", BlockStoreCommand{Reason: "x"}); !errors.Is(err, availability.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
	if _, err := f.svc.UnblockStore(ctx, "missing"); !errors.Is(err, availability.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestAvailabilityService_PersistFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	f := newAvailabilityFixture(t, monday(10, 0), false, mondayStore(t, "s1"))
	f.repo.saveErr = errStorage

	if _, err := f.svc.PauseStore(context.Background(), "s1", 10, "x"); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if f.repo.get("s1").Pause.Active {
		t.Fatalf("expected no pause persisted")
	}
	if f.recorder.transitions[TransitionPause] != 0 {
		t.Fatalf("failed pause must not be counted")
	}
}
