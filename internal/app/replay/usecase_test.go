package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "wagontrail/internal/adapter/repo/memory"
	"wagontrail/internal/app/ports"
)

func seedJournal(t *testing.T) UseCase {
	t.Helper()
	store := memrepo.NewStore()
	journal := memrepo.NewJournalRepo(store)
	base := time.Unix(1700000000, 0)
	entries := []ports.TrailEvent{
		{Type: "game_started", OccurredAt: base, Payload: map[string]any{
			"state_after": map[string]any{"day": 1, "miles": 0.0, "money": 120.0, "food": 200.0, "alive": 6},
		}},
		{Type: "day_settled", OccurredAt: base.Add(time.Minute), Payload: map[string]any{
			"state_after": map[string]any{"day": 2, "miles": 15.0, "money": 120.0, "food": 188.0, "alive": 6},
		}},
		{Type: "day_settled", OccurredAt: base.Add(2 * time.Minute), Payload: map[string]any{
			"state_after": map[string]any{"day": 3, "miles": 30.0, "money": 120.0, "food": 176.0, "alive": 6},
		}},
	}
	if err := journal.Append(context.Background(), "slot-1", entries); err != nil {
		t.Fatalf("seed journal: %v", err)
	}
	return UseCase{Journal: journal}
}

func TestExecute_ReconstructsLatestState(t *testing.T) {
	uc := seedJournal(t)

	resp, err := uc.Execute(context.Background(), Request{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(resp.Events))
	}
	if resp.Latest.Day != 3 || resp.Latest.Miles != 30 {
		t.Fatalf("latest state should come from the newest entry: %+v", resp.Latest)
	}
	if resp.Latest.Alive != 6 || resp.Latest.Food != 176 {
		t.Fatalf("unexpected reconstruction: %+v", resp.Latest)
	}
}

func TestExecute_TimeWindow(t *testing.T) {
	uc := seedJournal(t)
	base := time.Unix(1700000000, 0)

	resp, err := uc.Execute(context.Background(), Request{
		SlotID:       "slot-1",
		OccurredFrom: base.Add(30 * time.Second).Unix(),
		OccurredTo:   base.Add(90 * time.Second).Unix(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("expected 1 event in the window, got %d", len(resp.Events))
	}
	if resp.Latest.Day != 2 {
		t.Fatalf("latest in window should be day 2, got %+v", resp.Latest)
	}
}

func TestExecute_RejectsEmptySlot(t *testing.T) {
	uc := seedJournal(t)
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestExecute_UnknownSlot(t *testing.T) {
	uc := seedJournal(t)
	if _, err := uc.Execute(context.Background(), Request{SlotID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
