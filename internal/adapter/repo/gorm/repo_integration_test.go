package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("WAGONTRAIL_DB_DSN")
	if dsn == "" {
		t.Skip("WAGONTRAIL_DB_DSN is required for integration test")
	}
	return dsn
}

func testSlotID() string {
	return fmt.Sprintf("it-%d", time.Now().UnixNano())
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	repo := NewSessionRepo(db)

	slotID := testSlotID()
	session := trail.NewSession(slotID, 42, nil)
	if err := repo.SaveWithVersion(context.Background(), session, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.GetBySlotID(context.Background(), slotID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 42 || loaded.Day != 1 || len(loaded.Party) != 6 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.RNGState() != session.RNGState() {
		t.Fatalf("rng state must survive the round trip")
	}

	// Version mismatch is a conflict.
	loaded.Version++
	if err := repo.SaveWithVersion(context.Background(), loaded, 99); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.SaveWithVersion(context.Background(), loaded, 1); err != nil {
		t.Fatalf("versioned save: %v", err)
	}
}

func TestTurnExecutionRepo_RoundTrip(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	repo := NewTurnExecutionRepo(db)

	slotID := testSlotID()
	if _, err := repo.GetByIdempotencyKey(context.Background(), slotID, "k1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	record := ports.TurnExecutionRecord{
		SlotID:         slotID,
		IdempotencyKey: "k1",
		Action:         "travel",
		Result: ports.TurnResult{
			Summary: trail.DaySummary{Day: 1, MilesTraveled: 15, FoodConsumed: 12},
		},
		AppliedAt: time.Now().UTC(),
	}
	if err := repo.SaveExecution(context.Background(), record); err != nil {
		t.Fatalf("save execution: %v", err)
	}

	got, err := repo.GetByIdempotencyKey(context.Background(), slotID, "k1")
	if err != nil {
		t.Fatalf("get execution: %v", err)
	}
	if got.Result.Summary.MilesTraveled != 15 {
		t.Fatalf("result mismatch: %+v", got.Result.Summary)
	}
}

func TestJournalRepo_NewestFirst(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	repo := NewJournalRepo(db)

	slotID := testSlotID()
	base := time.Now().UTC().Truncate(time.Second)
	err = repo.Append(context.Background(), slotID, []ports.TrailEvent{
		{Type: "first", OccurredAt: base, Payload: map[string]any{"n": 1}},
		{Type: "second", OccurredAt: base.Add(time.Second), Payload: map[string]any{"n": 2}},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListBySlotID(context.Background(), slotID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || events[0].Type != "second" {
		t.Fatalf("expected newest first, got %+v", events)
	}
}
