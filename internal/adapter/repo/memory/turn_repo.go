package memory

import (
	"context"

	"wagontrail/internal/app/ports"
)

type TurnExecutionRepo struct {
	store *Store
}

func NewTurnExecutionRepo(store *Store) TurnExecutionRepo {
	return TurnExecutionRepo{store: store}
}

func (r TurnExecutionRepo) GetByIdempotencyKey(_ context.Context, slotID, key string) (*ports.TurnExecutionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.execution[execKey(slotID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r TurnExecutionRepo) SaveExecution(_ context.Context, execution ports.TurnExecutionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.execution[execKey(execution.SlotID, execution.IdempotencyKey)] = execution
	return nil
}
