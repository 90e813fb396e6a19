package eventstore

import (
	"context"
	"sort"
	"sync"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/pkg/errs"
)

// MemoryStore is the reference in-memory event store. Streams live in a map
// guarded by a single RWMutex; LoadHistory hands out copies so readers see a
// stable snapshot of the stream at call time.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]conference.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]conference.Event),
	}
}

func (s *MemoryStore) LoadHistory(_ context.Context, id string) ([]conference.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[id]
	if len(stream) == 0 {
		return nil, nil
	}
	out := make([]conference.Event, len(stream))
	copy(out, stream)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, id string, expectedVersion int, events []conference.Event) (int, error) {
	if len(events) == 0 {
		return 0, errs.New("eventstore: append called with no events")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[id]
	if len(stream) != expectedVersion {
		return 0, errs.Mark(
			errs.New("eventstore: stream moved past expected version"),
			errs.ErrConcurrencyConflict,
		)
	}
	s.streams[id] = append(stream, events...)
	return len(stream) + len(events), nil
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]conference.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.streams))
	for id := range s.streams {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []conference.Event
	for _, id := range ids {
		out = append(out, s.streams[id]...)
	}
	return out, nil
}
