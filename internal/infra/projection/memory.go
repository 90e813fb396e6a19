package projection

import (
	"context"
	"sync"

	"conference-seats/internal/usecase/shared"
)

// MemoryRepository is the in-memory projection repository used by unit tests
// and by the memory event-store profile.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]shared.ConferenceProjection
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows: make(map[string]shared.ConferenceProjection),
	}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*shared.ConferenceProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	out := row
	return &out, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, id string, projection shared.ConferenceProjection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[id] = projection
	return nil
}
