package memory

import (
	"context"

	"wagontrail/internal/app/ports"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(_ context.Context, slotID string, events []ports.TrailEvent) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.journal[slotID] = append(r.store.journal[slotID], events...)
	return nil
}

func (r JournalRepo) ListBySlotID(_ context.Context, slotID string, limit int) ([]ports.TrailEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.journal[slotID]
	if len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	// Newest first, matching the database adapter.
	out := make([]ports.TrailEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
