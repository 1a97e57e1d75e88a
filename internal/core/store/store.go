// Package store owns the scheduling collections (users, work items, worker
// statuses, messages and the join code) and mirrors every mutation to a
// key-value backend.
//
// All commands run under a single whole-store writer lock and persist
// synchronously before returning. There is no rollback: when the backend
// write fails the in-memory change stands and the error is returned.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
)

// Persistence keys, relative to Options.KeyPrefix.
const (
	KeyUsers     = "as_service_users"
	KeyWorkItems = "as_service_workItems"
	KeyStatuses  = "as_service_statuses"
	KeyMessages  = "as_service_messages"
	KeyJoinCode  = "as_service_joinCode"
	KeyArchived  = "as_service_archivedStatuses"
)

// AttendanceTimeLayout formats the clock time recorded on check-in.
const AttendanceTimeLayout = "03:04 PM"

// UnassignPolicy decides what happens to the status records of workers
// removed from a work item.
type UnassignPolicy string

const (
	// PolicyDiscard drops the records.
	PolicyDiscard UnassignPolicy = "discard"
	// PolicyArchive moves the records into the archive collection.
	PolicyArchive UnassignPolicy = "archive"
)

// Options configures a Store. Zero values select the defaults.
type Options struct {
	KeyPrefix       string
	DefaultJoinCode string
	UnassignPolicy  UnassignPolicy
	// Seed replaces the built-in fixtures used when keys are absent.
	Seed *Seed
	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() domain.ID
}

// Store is the domain store. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	kv   ports.KVStore
	opts Options

	users     []domain.User
	workItems []domain.WorkItem
	statuses  []domain.WorkerStatus
	archived  []domain.WorkerStatus
	messages  []domain.Message
	joinCode  string
}

func (o *Options) defaults() {
	if o.DefaultJoinCode == "" {
		o.DefaultJoinCode = domain.DefaultJoinCode
	}
	if o.UnassignPolicy == "" {
		o.UnassignPolicy = PolicyDiscard
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() domain.ID { return domain.ID(uuid.NewString()) }
	}
}

// Load builds a Store from kv. Each key is read independently; an absent key
// falls back to the seed fixtures. The resulting state is written back so the
// backend holds every key afterwards.
func Load(ctx context.Context, kv ports.KVStore, opts Options) (*Store, error) {
	opts.defaults()
	seed := opts.Seed
	if seed == nil {
		seed = DefaultSeed(opts.Now())
	}

	s := &Store{kv: kv, opts: opts}

	if _, err := s.load(ctx, KeyUsers, &s.users, seed.Users); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, KeyWorkItems, &s.workItems, seed.WorkItems); err != nil {
		return nil, err
	}
	found, err := s.load(ctx, KeyStatuses, &s.statuses, nil)
	if err != nil {
		return nil, err
	}
	if !found {
		s.statuses = initialStatuses(s.workItems, seed.Assignments)
	}
	if _, err := s.load(ctx, KeyMessages, &s.messages, []domain.Message{}); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, KeyArchived, &s.archived, []domain.WorkerStatus{}); err != nil {
		return nil, err
	}

	code, found, err := kv.Get(ctx, s.key(KeyJoinCode))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyJoinCode, err)
	}
	if !found || code == "" {
		code = opts.DefaultJoinCode
	}
	s.joinCode = code

	if err := s.persistAll(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load decodes key into dst, or copies def into dst when the key is absent.
func (s *Store) load(ctx context.Context, key string, dst any, def any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, s.key(key))
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || raw == "" {
		if def == nil {
			return false, nil
		}
		b, err := json.Marshal(def)
		if err != nil {
			return false, fmt.Errorf("load %s default: %w", key, err)
		}
		return false, json.Unmarshal(b, dst)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) key(k string) string {
	return s.opts.KeyPrefix + k
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, s.key(key), string(b)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) persistJoinCode(ctx context.Context) error {
	if err := s.kv.Set(ctx, s.key(KeyJoinCode), s.joinCode); err != nil {
		return fmt.Errorf("persist %s: %w", KeyJoinCode, err)
	}
	return nil
}

func (s *Store) persistAll(ctx context.Context) error {
	for _, p := range []struct {
		key string
		v   any
	}{
		{KeyUsers, s.users},
		{KeyWorkItems, s.workItems},
		{KeyStatuses, s.statuses},
		{KeyMessages, s.messages},
		{KeyArchived, s.archived},
	} {
		if err := s.persist(ctx, p.key, p.v); err != nil {
			return err
		}
	}
	return s.persistJoinCode(ctx)
}
