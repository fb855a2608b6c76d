package memory

import (
	"context"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetBySlotID(_ context.Context, slotID string) (*trail.Session, error) {
	r.store.mu.RLock()
	stored, ok := r.store.sessions[slotID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	return decodeSession(stored)
}

func (r SessionRepo) SaveWithVersion(_ context.Context, session *trail.Session, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.sessions[session.SlotID]
	if !ok && expectedVersion != 0 {
		return ports.ErrConflict
	}
	if ok && current.version != expectedVersion {
		return ports.ErrConflict
	}
	stored, err := encodeSession(session)
	if err != nil {
		return err
	}
	r.store.sessions[session.SlotID] = stored
	return nil
}
