package event

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "wagontrail/internal/adapter/repo/memory"
	"wagontrail/internal/domain/trail"
)

// takeCatalogs has exactly one always-eligible event so a Trigger on a
// fresh slot fires it deterministically.
func takeCatalogs() trail.Catalogs {
	c := trail.DefaultCatalogs()
	c.Events = []trail.EventDef{{
		ID:     "roadside-cache",
		Title:  "A roadside cache",
		Weight: 1,
		Stages: []trail.EventStage{{
			ID:   "start",
			Text: "A half-buried crate sits beside the ruts.",
			Choices: []trail.EventChoice{
				{ID: "take", Label: "Pry it open", Goto: "end", Effects: []trail.Effect{
					{Type: trail.EffectMoney, Delta: 10},
				}},
				{ID: "bribe", Label: "Pay the watcher", Goto: "end",
					Requires: &trail.ChoiceRequires{MoneyGte: 9999},
					Effects:  []trail.Effect{{Type: trail.EffectMoney, Delta: -9999}}},
			},
		}},
	}}
	return c
}

func newTestUseCase(t *testing.T, catalogs trail.Catalogs) *UseCase {
	t.Helper()
	store := memrepo.NewStore()
	uc := &UseCase{
		TxManager:   memrepo.NewTxManager(store),
		SessionRepo: memrepo.NewSessionRepo(store),
		Journal:     memrepo.NewJournalRepo(store),
		Engine:      trail.NewEngine(catalogs),
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
	session := trail.NewSession("slot-1", 42, nil)
	if err := uc.SessionRepo.SaveWithVersion(context.Background(), session, 0); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return uc
}

func TestTrigger_FiresAndRendersFirstStage(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())

	resp, err := uc.Trigger(context.Background(), TriggerRequest{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if !resp.Triggered || resp.EventID != "roadside-cache" {
		t.Fatalf("expected roadside-cache to fire, got %+v", resp)
	}
	if resp.Stage == nil || resp.Stage.StageID != "start" {
		t.Fatalf("expected start stage, got %+v", resp.Stage)
	}

	session, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if session.Version != 2 {
		t.Fatalf("trigger must save the session, version=%d", session.Version)
	}
}

func TestStage_WithoutActiveEvent(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())
	if _, err := uc.Stage(context.Background(), StageRequest{SlotID: "slot-1"}); !errors.Is(err, ErrNoActiveEvent) {
		t.Fatalf("expected ErrNoActiveEvent, got %v", err)
	}
}

func TestChoose_AppliesEffectsAndCompletes(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())
	if _, err := uc.Trigger(context.Background(), TriggerRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	resp, err := uc.Choose(context.Background(), ChooseRequest{SlotID: "slot-1", ChoiceID: "take"})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if !resp.Done {
		t.Fatalf("single-stage event must complete, got %+v", resp)
	}

	session, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if session.Money != 130 {
		t.Fatalf("expected money 130 after the cache, got %v", session.Money)
	}

	// The event is gone; a second choose is an error.
	if _, err := uc.Choose(context.Background(), ChooseRequest{SlotID: "slot-1", ChoiceID: "take"}); !errors.Is(err, ErrNoActiveEvent) {
		t.Fatalf("expected ErrNoActiveEvent after completion, got %v", err)
	}
}

func TestChoose_UnmetRequirementIsANoop(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())
	if _, err := uc.Trigger(context.Background(), TriggerRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	before, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	resp, err := uc.Choose(context.Background(), ChooseRequest{SlotID: "slot-1", ChoiceID: "bribe"})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if resp.Reason == "" || resp.Done {
		t.Fatalf("expected rejection reason, got %+v", resp)
	}

	after, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.Version != before.Version || after.Money != before.Money {
		t.Fatalf("unmet choice must not save: %+v vs %+v", before, after)
	}

	// The event stays active for another try.
	if _, err := uc.Stage(context.Background(), StageRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("stage after rejection: %v", err)
	}
}

func TestTrigger_CooldownBlocksImmediateRefire(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())
	first, err := uc.Trigger(context.Background(), TriggerRequest{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	if !first.Triggered {
		t.Fatalf("expected first trigger to fire")
	}
	if _, err := uc.Choose(context.Background(), ChooseRequest{SlotID: "slot-1", ChoiceID: "take"}); err != nil {
		t.Fatalf("choose: %v", err)
	}

	second, err := uc.Trigger(context.Background(), TriggerRequest{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("second trigger: %v", err)
	}
	if second.Triggered {
		t.Fatalf("cooldown must block an immediate refire")
	}
}

func TestTrigger_RejectsEmptySlot(t *testing.T) {
	uc := newTestUseCase(t, takeCatalogs())
	if _, err := uc.Trigger(context.Background(), TriggerRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
