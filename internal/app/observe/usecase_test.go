package observe

import (
	"context"
	"errors"
	"testing"

	memrepo "wagontrail/internal/adapter/repo/memory"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

func setupSlot(t *testing.T) (UseCase, *trail.Session) {
	t.Helper()
	store := memrepo.NewStore()
	repo := memrepo.NewSessionRepo(store)
	session := trail.NewSession("slot-1", 7, nil)
	if err := repo.SaveWithVersion(context.Background(), session, 0); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return UseCase{
		SessionRepo: repo,
		Engine:      trail.NewEngine(trail.DefaultCatalogs()),
	}, session
}

func TestExecute_RejectsEmptySlotID(t *testing.T) {
	uc, _ := setupSlot(t)
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestExecute_UnknownSlot(t *testing.T) {
	uc, _ := setupSlot(t)
	if _, err := uc.Execute(context.Background(), Request{SlotID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExecute_Snapshot(t *testing.T) {
	uc, _ := setupSlot(t)

	resp, err := uc.Execute(context.Background(), Request{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Day != 1 || resp.Miles != 0 {
		t.Fatalf("unexpected snapshot: %+v", resp)
	}
	if resp.Money != 120 {
		t.Fatalf("expected starting money 120, got %v", resp.Money)
	}
	if len(resp.Party) != 6 {
		t.Fatalf("expected 6 party members, got %d", len(resp.Party))
	}
	if resp.GameOver {
		t.Fatalf("fresh slot must not be game over")
	}
	if resp.MilesPerDay <= 0 {
		t.Fatalf("expected positive projected miles, got %v", resp.MilesPerDay)
	}
}

func TestExecute_LogTail(t *testing.T) {
	store := memrepo.NewStore()
	repo := memrepo.NewSessionRepo(store)
	session := trail.NewSession("slot-1", 7, nil)
	for i := 0; i < 30; i++ {
		session.Log = append(session.Log, "line")
	}
	if err := repo.SaveWithVersion(context.Background(), session, 0); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	uc := UseCase{SessionRepo: repo, Engine: trail.NewEngine(trail.DefaultCatalogs())}

	resp, err := uc.Execute(context.Background(), Request{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Log) != 20 {
		t.Fatalf("expected default tail of 20 lines, got %d", len(resp.Log))
	}

	resp, err = uc.Execute(context.Background(), Request{SlotID: "slot-1", LogTail: 5})
	if err != nil {
		t.Fatalf("execute with tail: %v", err)
	}
	if len(resp.Log) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(resp.Log))
	}
}
