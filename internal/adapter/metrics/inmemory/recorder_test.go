package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordTurn("travel", false)
	r.RecordTurn("travel", true)
	r.RecordTurn("rest", false)
	r.RecordEventResolved("broken-wheel")
	r.RecordHazardAttempt("drive", false)
	r.RecordHazardAttempt("drive", true)
	r.RecordHuntEnded(42)
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.TurnTotal != 3 {
		t.Fatalf("expected turn total 3, got %d", s.TurnTotal)
	}
	if s.TurnStarvation != 1 {
		t.Fatalf("expected starvation 1, got %d", s.TurnStarvation)
	}
	if s.ByAction["travel"] != 2 || s.ByAction["rest"] != 1 {
		t.Fatalf("unexpected by-action counts: %v", s.ByAction)
	}
	if s.EventsResolved["broken-wheel"] != 1 {
		t.Fatalf("expected broken-wheel resolved once")
	}
	if s.HazardAttempts["drive"] != 2 || s.HazardResolved != 1 {
		t.Fatalf("unexpected hazard counts: %v resolved=%d", s.HazardAttempts, s.HazardResolved)
	}
	if s.HuntsEnded != 1 || s.HuntMeatBankedLb != 42 {
		t.Fatalf("unexpected hunt counts: ended=%d banked=%d", s.HuntsEnded, s.HuntMeatBankedLb)
	}
	if s.TurnConflict != 1 || s.TurnFailure != 1 {
		t.Fatalf("unexpected conflict/failure: %d/%d", s.TurnConflict, s.TurnFailure)
	}
}

func TestRecorderSnapshotCopiesMaps(t *testing.T) {
	r := NewRecorder()
	r.RecordTurn("travel", false)

	s := r.Snapshot()
	s.ByAction["travel"] = 99

	if r.Snapshot().ByAction["travel"] != 1 {
		t.Fatalf("snapshot mutation leaked into recorder")
	}
}
