package forms

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"offerdesk/internal/logger"
	. "offerdesk/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("form instance not found")
	ErrUnknownField = errors.New("unknown form field")
)

// Instance is a snapshot of one form's state.
type Instance struct {
	ID        string
	Kind      FormKind
	Values    map[string]string
	UpdatedAt time.Time
}

type instance struct {
	kind      FormKind
	values    map[string]string
	updatedAt time.Time
}

// Store holds the user-entered fields of every open form in memory. Nothing
// is persisted; idle instances are discarded by Sweep.
type Store struct {
	mu        sync.Mutex
	instances map[string]*instance
	idleTTL   time.Duration
	now       func() time.Time
	log       logger.Logger
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		instances: make(map[string]*instance),
		idleTTL:   idleTTL,
		now:       time.Now,
		log:       logger.New("forms"),
	}
}

func emptyValues(kind FormKind) map[string]string {
	values := make(map[string]string, len(kind.FieldNames()))
	for _, name := range kind.FieldNames() {
		values[name] = ""
	}
	return values
}

// New allocates an empty form of kind and returns its id.
func (s *Store) New(kind FormKind) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.instances[id] = &instance{kind: kind, values: emptyValues(kind), updatedAt: s.now()}
	return id
}

// Ensure returns id when it names a live form of kind, otherwise a fresh one.
func (s *Store) Ensure(id string, kind FormKind) (string, bool) {
	s.mu.Lock()
	if inst, ok := s.instances[id]; ok && inst.kind == kind {
		inst.updatedAt = s.now()
		s.mu.Unlock()
		return id, false
	}
	s.mu.Unlock()
	return s.New(kind), true
}

func (s *Store) Get(id string) (Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return Instance{}, false
	}
	return Instance{
		ID:        id,
		Kind:      inst.kind,
		Values:    maps.Clone(inst.values),
		UpdatedAt: inst.updatedAt,
	}, true
}

// Set records one keystroke-level change.
func (s *Store) Set(id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return ErrNotFound
	}
	if !slices.Contains(inst.kind.FieldNames(), field) {
		return ErrUnknownField
	}
	inst.values[field] = value
	inst.updatedAt = s.now()
	return nil
}

// Merge applies every known field in values; unknown keys are ignored so a
// whole form post can be passed through.
func (s *Store) Merge(id string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return ErrNotFound
	}
	for _, name := range inst.kind.FieldNames() {
		if value, ok := values[name]; ok {
			inst.values[name] = value
		}
	}
	inst.updatedAt = s.now()
	return nil
}

// Reset empties every field but keeps the instance.
func (s *Store) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return ErrNotFound
	}
	inst.values = emptyValues(inst.kind)
	inst.updatedAt = s.now()
	return nil
}

func (s *Store) Discard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instances, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

// Sweep drops instances idle for longer than the TTL and reports how many
// went away.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, inst := range s.instances {
		if now.Sub(inst.updatedAt) > s.idleTTL {
			delete(s.instances, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	log := s.log.Function("RunSweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.Sweep(now); removed > 0 {
				log.Debug("discarded idle forms", "count", removed)
			}
		}
	}
}
