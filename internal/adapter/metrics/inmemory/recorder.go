package inmemory

import "sync"

type Snapshot struct {
	TurnTotal        uint64            `json:"turn_total"`
	TurnStarvation   uint64            `json:"turn_starvation"`
	TurnConflict     uint64            `json:"turn_conflict"`
	TurnFailure      uint64            `json:"turn_failure"`
	ByAction         map[string]uint64 `json:"by_action"`
	EventsResolved   map[string]uint64 `json:"events_resolved"`
	HazardAttempts   map[string]uint64 `json:"hazard_attempts"`
	HazardResolved   uint64            `json:"hazard_resolved"`
	HuntsEnded       uint64            `json:"hunts_ended"`
	HuntMeatBankedLb uint64            `json:"hunt_meat_banked_lb"`
}

type Recorder struct {
	mu             sync.Mutex
	turns          uint64
	starvation     uint64
	conflict       uint64
	failure        uint64
	byAction       map[string]uint64
	eventsResolved map[string]uint64
	hazardAttempts map[string]uint64
	hazardResolved uint64
	huntsEnded     uint64
	huntMeatBanked uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction:       map[string]uint64{},
		eventsResolved: map[string]uint64{},
		hazardAttempts: map[string]uint64{},
	}
}

func (r *Recorder) RecordTurn(action string, starvation bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	r.byAction[action]++
	if starvation {
		r.starvation++
	}
}

func (r *Recorder) RecordEventResolved(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eventsResolved[eventID]++
}

func (r *Recorder) RecordHazardAttempt(method string, resolved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hazardAttempts[method]++
	if resolved {
		r.hazardResolved++
	}
}

func (r *Recorder) RecordHuntEnded(meatTaken int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.huntsEnded++
	if meatTaken > 0 {
		r.huntMeatBanked += uint64(meatTaken)
	}
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnTotal:        r.turns,
		TurnStarvation:   r.starvation,
		TurnConflict:     r.conflict,
		TurnFailure:      r.failure,
		ByAction:         make(map[string]uint64, len(r.byAction)),
		EventsResolved:   make(map[string]uint64, len(r.eventsResolved)),
		HazardAttempts:   make(map[string]uint64, len(r.hazardAttempts)),
		HazardResolved:   r.hazardResolved,
		HuntsEnded:       r.huntsEnded,
		HuntMeatBankedLb: r.huntMeatBanked,
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	for k, v := range r.eventsResolved {
		out.EventsResolved[k] = v
	}
	for k, v := range r.hazardAttempts {
		out.HazardAttempts[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
