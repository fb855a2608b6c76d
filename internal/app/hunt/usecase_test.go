package hunt

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "wagontrail/internal/adapter/repo/memory"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

func newTestUseCase(t *testing.T) *UseCase {
	t.Helper()
	store := memrepo.NewStore()
	uc := &UseCase{
		TxManager:   memrepo.NewTxManager(store),
		SessionRepo: memrepo.NewSessionRepo(store),
		Journal:     memrepo.NewJournalRepo(store),
		Engine:      trail.NewEngine(trail.DefaultCatalogs()),
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
	session := trail.NewSession("slot-1", 42, nil)
	if err := uc.SessionRepo.SaveWithVersion(context.Background(), session, 0); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return uc
}

func TestStart_OnlyOneHuntPerSlot(t *testing.T) {
	uc := newTestUseCase(t)

	if _, err := uc.Start(context.Background(), StartRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Start(context.Background(), StartRequest{SlotID: "slot-1"}); !errors.Is(err, ErrHuntInProgress) {
		t.Fatalf("expected ErrHuntInProgress, got %v", err)
	}
}

func TestStart_NeedsLivingHunters(t *testing.T) {
	uc := newTestUseCase(t)

	session, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i := range session.Party {
		session.Party[i].ApplyHealthDelta(-5)
	}
	session.Version++
	if err := uc.SessionRepo.SaveWithVersion(context.Background(), session, 1); err != nil {
		t.Fatalf("save dead party: %v", err)
	}

	if _, err := uc.Start(context.Background(), StartRequest{SlotID: "slot-1"}); !errors.Is(err, ErrNothingToHunt) {
		t.Fatalf("expected ErrNothingToHunt, got %v", err)
	}
}

func TestUpdate_WithoutActiveHunt(t *testing.T) {
	uc := newTestUseCase(t)
	if _, err := uc.Update(context.Background(), UpdateRequest{SlotID: "slot-1", DtMs: 100}); !errors.Is(err, ErrNoActiveHunt) {
		t.Fatalf("expected ErrNoActiveHunt, got %v", err)
	}
}

func TestHuntLifecycle(t *testing.T) {
	uc := newTestUseCase(t)

	start, err := uc.Start(context.Background(), StartRequest{
		SlotID:  "slot-1",
		Options: trail.HuntOptions{DurationMs: 2000},
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if start.Bullets != 60 {
		t.Fatalf("expected 60 starting bullets, got %v", start.Bullets)
	}

	state, err := uc.Update(context.Background(), UpdateRequest{SlotID: "slot-1", DtMs: 2500})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !state.Over {
		t.Fatalf("hunt should be over after the duration elapses")
	}

	end, err := uc.End(context.Background(), EndRequest{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if end.Result.MeatTaken < 0 {
		t.Fatalf("unexpected result: %+v", end.Result)
	}

	session, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if session.Version != 2 {
		t.Fatalf("end must commit the session, version=%d", session.Version)
	}

	events, err := uc.Journal.ListBySlotID(context.Background(), "slot-1", 0)
	if err != nil {
		t.Fatalf("list journal: %v", err)
	}
	if len(events) != 1 || events[0].Type != "hunt_ended" {
		t.Fatalf("expected hunt_ended entry, got %+v", events)
	}

	// Slot is free again.
	if _, err := uc.Start(context.Background(), StartRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("restart after end: %v", err)
	}
}

type flakySessionRepo struct {
	ports.SessionRepository
	failures int
}

func (r *flakySessionRepo) SaveWithVersion(ctx context.Context, s *trail.Session, expectedVersion int64) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("connection reset")
	}
	return r.SessionRepository.SaveWithVersion(ctx, s, expectedVersion)
}

func TestEnd_FailedSaveLeavesVersionRetryable(t *testing.T) {
	uc := newTestUseCase(t)
	flaky := &flakySessionRepo{SessionRepository: uc.SessionRepo, failures: 1}
	uc.SessionRepo = flaky

	if _, err := uc.Start(context.Background(), StartRequest{
		SlotID:  "slot-1",
		Options: trail.HuntOptions{DurationMs: 2000},
	}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := uc.End(context.Background(), EndRequest{SlotID: "slot-1"}); err == nil {
		t.Fatalf("expected the first end to fail")
	}

	end, err := uc.End(context.Background(), EndRequest{SlotID: "slot-1"})
	if err != nil {
		t.Fatalf("retried end: %v", err)
	}

	session, err := uc.SessionRepo.GetBySlotID(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if session.Version != 2 {
		t.Fatalf("retry must not inflate the version, got %d", session.Version)
	}
	if got := session.Item(trail.ItemFood); got != end.Food {
		t.Fatalf("meat banked once, committed %v but document has %v", end.Food, got)
	}
}

func TestShoot_SpendsBullets(t *testing.T) {
	uc := newTestUseCase(t)

	if _, err := uc.Start(context.Background(), StartRequest{SlotID: "slot-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	resp, err := uc.Shoot(context.Background(), ShootRequest{SlotID: "slot-1", X: -9999, Y: -9999})
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if resp.Hit {
		t.Fatalf("a shot into empty corner must miss")
	}
	if resp.Bullets != 59 {
		t.Fatalf("expected 59 bullets after one shot, got %v", resp.Bullets)
	}
}
