package trail

import "fmt"

type HazardKind string

const (
	HazardRiver  HazardKind = "river"
	HazardMud    HazardKind = "mud"
	HazardSnow   HazardKind = "snow"
	HazardGeese  HazardKind = "geese"
	HazardBeaver HazardKind = "beaver"
)

// CurrentSpeed grades a river current.
const (
	CurrentSlow     = "slow"
	CurrentModerate = "moderate"
	CurrentFast     = "fast"
)

// HazardParams carries the severity fields for every kind; each kind
// reads only its own.
type HazardParams struct {
	Kind    HazardKind `json:"kind" yaml:"kind"`
	DepthFt float64    `json:"depth_ft,omitempty" yaml:"depth_ft"`
	WidthFt float64    `json:"width_ft,omitempty" yaml:"width_ft"`
	Current string     `json:"current,omitempty" yaml:"current"`
	Badness float64    `json:"badness,omitempty" yaml:"badness"`
	DriftFt float64    `json:"drift_ft,omitempty" yaml:"drift_ft"`
	Flock   int        `json:"flock,omitempty" yaml:"flock"`
	GapFt   float64    `json:"gap_ft,omitempty" yaml:"gap_ft"`
}

// Landmark is the immutable authored template; its hazard parameters
// are cloned into the session on first contact and never mutated here.
type Landmark struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Mile   float64       `json:"mile" yaml:"mile"`
	Hazard *HazardParams `json:"hazard,omitempty" yaml:"hazard"`
}

// HazardState is the per-landmark working copy. Blocked drops to false
// once any resolving method succeeds.
type HazardState struct {
	LandmarkID string       `json:"landmark_id"`
	Name       string       `json:"name"`
	Params     HazardParams `json:"params"`
	Blocked    bool         `json:"blocked"`
	Attempts   int          `json:"attempts"`
}

const (
	MethodDrive   = "drive"
	MethodPrep    = "prep"
	MethodService = "service"
	MethodWait    = "wait"
	MethodDetour  = "detour"
)

// HazardMethod is one menu entry, with the coarse odds label the UI
// shows. The attempt itself rolls the exact probability, never the
// label.
type HazardMethod struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Odds       string   `json:"odds,omitempty"`
	CostMoney  float64  `json:"cost_money,omitempty"`
	Affordable bool     `json:"affordable"`
	Success    *float64 `json:"-"`
}

// AttemptResult reports one tryMethod call.
type AttemptResult struct {
	MethodID string   `json:"method_id"`
	Resolved bool     `json:"resolved"`
	Rolled   *float64 `json:"rolled,omitempty"`
	DaysLost int      `json:"days_lost"`
	Logs     []string `json:"logs,omitempty"`
}

func blockedFlag(landmarkID string) string {
	return "at:" + landmarkID
}

// HazardStateFor returns the session's working copy for a landmark,
// deep-copying the authored parameters on first access and raising the
// blocked flag.
func (e *Engine) HazardStateFor(s *Session, lm Landmark) *HazardState {
	if lm.Hazard == nil {
		return nil
	}
	if s.Hazards == nil {
		s.Hazards = map[string]*HazardState{}
	}
	if st, ok := s.Hazards[lm.ID]; ok {
		return st
	}
	params := *lm.Hazard
	st := &HazardState{
		LandmarkID: lm.ID,
		Name:       lm.Name,
		Params:     params,
		Blocked:    true,
	}
	s.Hazards[lm.ID] = st
	s.SetFlag(blockedFlag(lm.ID), true)
	s.Logf(fmt.Sprintf("⛔ %s blocks the trail.", lm.Name))
	return st
}

// ListMethods builds the fixed ordered menu for a hazard with odds
// labels and affordability against the session's funds.
func (e *Engine) ListMethods(s *Session, st *HazardState) []HazardMethod {
	resolver := resolverFor(st.Params.Kind)
	methods := resolver.methods(st.Params)
	for i := range methods {
		if p, ok := resolver.estimateSuccess(st.Params, methods[i].ID); ok {
			prob := p
			methods[i].Success = &prob
			methods[i].Odds = oddsLabel(p)
		}
		methods[i].Affordable = s.Money >= methods[i].CostMoney
	}
	return methods
}

// EstimateSuccess exposes the exact probability for one method, with
// ok=false for methods that never roll (wait, detour).
func (e *Engine) EstimateSuccess(st *HazardState, methodID string) (float64, bool) {
	return resolverFor(st.Params.Kind).estimateSuccess(st.Params, methodID)
}

func oddsLabel(p float64) string {
	switch {
	case p >= 0.75:
		return "Good"
	case p >= 0.5:
		return "Fair"
	default:
		return "Poor"
	}
}

// TryMethod runs one attempt of the chosen method. Every day the
// attempt costs is settled through the full rest-day resolution so
// food and health drift realistically while the party is held up.
func (e *Engine) TryMethod(s *Session, st *HazardState, methodID string) AttemptResult {
	if st == nil || !st.Blocked {
		return AttemptResult{MethodID: methodID, Resolved: true}
	}
	resolver := resolverFor(st.Params.Kind)
	st.Attempts++

	result := AttemptResult{MethodID: methodID}
	switch methodID {
	case MethodWait:
		resolver.reduceSeverity(s.RNG, &st.Params)
		result.DaysLost = 1
		result.Logs = append(result.Logs, fmt.Sprintf("You wait a day at %s. Conditions ease a little.", st.Name))

	case MethodService:
		cost := resolver.serviceCost(st.Params)
		s.AddMoney(-cost)
		days := 1
		if s.RNG.Chance(0.3) {
			days = 2
		}
		result.DaysLost = days
		e.clearHazard(s, st)
		result.Resolved = true
		result.Logs = append(result.Logs, fmt.Sprintf("You pay $%.0f for safe passage past %s.", cost, st.Name))

	case MethodDetour:
		days := s.RNG.IntBetween(1, 4)
		var toll float64
		if s.RNG.Chance(0.5) {
			toll = float64(s.RNG.IntBetween(3, 10))
			s.AddMoney(-toll)
		}
		result.DaysLost = days
		e.clearHazard(s, st)
		result.Resolved = true
		line := fmt.Sprintf("You swing wide around %s, losing %d days.", st.Name, days)
		if toll > 0 {
			line += fmt.Sprintf(" A toll road costs $%.0f.", toll)
		}
		result.Logs = append(result.Logs, line)

	case MethodDrive, MethodPrep:
		p, ok := resolver.estimateSuccess(st.Params, methodID)
		if !ok {
			result.Logs = append(result.Logs, "You are unsure what to do.")
			return result
		}
		if methodID == MethodPrep {
			result.DaysLost++
		}
		prob := p
		result.Rolled = &prob
		if s.RNG.Chance(p) {
			e.clearHazard(s, st)
			result.Resolved = true
			result.Logs = append(result.Logs, resolver.successLog(st.Params, st.Name))
		} else {
			result.DaysLost++
			result.Logs = append(result.Logs, resolver.failurePenalty(e, s, st)...)
		}

	default:
		result.Logs = append(result.Logs, "You are unsure what to do.")
		return result
	}

	for i := 0; i < result.DaysLost; i++ {
		e.ApplyRestDay(s)
	}
	for _, line := range result.Logs {
		s.Logf(line)
	}
	return result
}

func (e *Engine) clearHazard(s *Session, st *HazardState) {
	st.Blocked = false
	s.ClearFlag(blockedFlag(st.LandmarkID))
}

// maybeNickPart rolls for a spare-part loss on a failed attempt.
func maybeNickPart(s *Session) []string {
	if !s.RNG.Chance(0.5) {
		return nil
	}
	parts := []string{ItemWheel, ItemAxle, ItemTongue}
	part := parts[s.RNG.NextInt(len(parts))]
	if s.ConsumeItem(part, 1) > 0 {
		return []string{fmt.Sprintf("A spare %s is wrecked in the struggle.", part)}
	}
	return nil
}

// maybeHurtSomeone rolls a single -1 health ding against one random
// living member.
func maybeHurtSomeone(e *Engine, s *Session, chance float64) []string {
	if !s.RNG.Chance(chance) {
		return nil
	}
	alive := s.AliveMembers()
	if len(alive) == 0 {
		return nil
	}
	m := alive[s.RNG.NextInt(len(alive))]
	m.ApplyHealthDelta(-1)
	logs := []string{fmt.Sprintf("%s is banged up in the attempt.", m.Name)}
	if !m.Alive() {
		logs = append(logs, fmt.Sprintf("💀 %s has died.", m.Name))
	}
	return logs
}
