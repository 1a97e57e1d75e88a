package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
	"github.com/asservice/shiftboard/internal/core/store"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (k *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	return v, ok, nil
}

func (k *stubKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

type stubTextGen struct {
	followUp string
	calls    []string
}

func (g *stubTextGen) Describe(_ context.Context, title, place string, slot domain.TimeSlot) string {
	g.calls = append(g.calls, "describe")
	return fmt.Sprintf("%s at %s (%s)", title, place, slot)
}

func (g *stubTextGen) FollowUp(_ context.Context, workTitle, workerName string, interested bool) string {
	g.calls = append(g.calls, "followup")
	return g.followUp
}

func (g *stubTextGen) Insight(_ context.Context, active, interested, notInterested int) string {
	g.calls = append(g.calls, "insight")
	return fmt.Sprintf("%d/%d/%d", active, interested, notInterested)
}

type stubQueue struct {
	reqs []ports.FollowUpRequest
}

func (q *stubQueue) Enqueue(req ports.FollowUpRequest) {
	q.reqs = append(q.reqs, req)
}

type stubGuard struct {
	held map[string]bool
	err  error
}

func (g *stubGuard) Acquire(_ context.Context, workID string, _ time.Duration) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.held[workID] {
		return false, nil
	}
	g.held[workID] = true
	return true, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	discardLogger = zerolog.Nop()
	fixedNow      = time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)

	admin = ports.Actor{UserID: "1", Role: domain.RoleAdmin}
	john  = ports.Actor{UserID: "2", Role: domain.RoleWorker} // leads 101
	jane  = ports.Actor{UserID: "3", Role: domain.RoleWorker}
	mike  = ports.Actor{UserID: "4", Role: domain.RoleWorker} // leads 102
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	st, err := store.Load(context.Background(), &stubKV{data: map[string]string{}}, store.Options{
		Now: func() time.Time { return fixedNow },
		NewID: func() domain.ID {
			n++
			return domain.ID(fmt.Sprintf("new-%d", n))
		},
	})
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	return st
}

func newTestScheduleService(t *testing.T, opts ScheduleOptions) (*ScheduleService, *store.Store, *stubTextGen) {
	t.Helper()
	st := newTestStore(t)
	gen := &stubTextGen{}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewScheduleService(st, gen, opts, discardLogger), st, gen
}
