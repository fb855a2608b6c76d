package ports

import (
	"context"
	"time"

	"wagontrail/internal/domain/trail"
)

// TrailEvent is one journal entry for a save slot: an append-only
// record of what the engine did, powering the replay surface.
type TrailEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// TurnResult is the durable outcome of one settled turn.
type TurnResult struct {
	Summary trail.DaySummary `json:"summary"`
	Events  []TrailEvent     `json:"events"`
}

// TurnExecutionRecord makes a turn idempotent: replays of the same
// idempotency key return the recorded result instead of re-settling.
type TurnExecutionRecord struct {
	SlotID         string     `json:"slot_id"`
	IdempotencyKey string     `json:"idempotency_key"`
	Action         string     `json:"action"`
	Result         TurnResult `json:"result"`
	AppliedAt      time.Time  `json:"applied_at"`
}

type SessionRepository interface {
	GetBySlotID(ctx context.Context, slotID string) (*trail.Session, error)
	// SaveWithVersion persists the session, failing with ErrConflict
	// when the stored version differs from expectedVersion. Passing 0
	// creates the slot.
	SaveWithVersion(ctx context.Context, session *trail.Session, expectedVersion int64) error
}

type TurnExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, slotID, key string) (*TurnExecutionRecord, error)
	SaveExecution(ctx context.Context, execution TurnExecutionRecord) error
}

type JournalRepository interface {
	Append(ctx context.Context, slotID string, events []TrailEvent) error
	ListBySlotID(ctx context.Context, slotID string, limit int) ([]TrailEvent, error)
}
