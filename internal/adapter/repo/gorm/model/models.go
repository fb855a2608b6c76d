package model

import "time"

// TrailSession stores one save slot. The full session document lives
// in a JSONB column; rng_state and version are pulled out so the
// generator can be restored and optimistic writes can match on the
// stored version without decoding the document.
type TrailSession struct {
	SlotID    string    `gorm:"column:slot_id;primaryKey"`
	Doc       []byte    `gorm:"column:doc"`
	RNGState  int64     `gorm:"column:rng_state"`
	Seed      int64     `gorm:"column:seed"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TrailSession) TableName() string { return "trail_sessions" }

type TurnExecution struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SlotID         string    `gorm:"column:slot_id"`
	IdempotencyKey string    `gorm:"column:idempotency_key"`
	Action         string    `gorm:"column:action"`
	Result         []byte    `gorm:"column:result"`
	AppliedAt      time.Time `gorm:"column:applied_at"`
}

func (TurnExecution) TableName() string { return "turn_executions" }

type JournalEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SlotID     string    `gorm:"column:slot_id"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	Payload    []byte    `gorm:"column:payload"`
}

func (JournalEvent) TableName() string { return "journal_events" }
