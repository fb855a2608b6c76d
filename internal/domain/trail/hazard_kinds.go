package trail

import "fmt"

// hazardResolver is implemented once per hazard kind. Each variant owns
// its severity fields, its probability model, and its failure flavor.
type hazardResolver interface {
	methods(p HazardParams) []HazardMethod
	estimateSuccess(p HazardParams, methodID string) (float64, bool)
	serviceCost(p HazardParams) float64
	reduceSeverity(rng *RNG, p *HazardParams)
	failurePenalty(e *Engine, s *Session, st *HazardState) []string
	successLog(p HazardParams, name string) string
}

func resolverFor(kind HazardKind) hazardResolver {
	switch kind {
	case HazardMud:
		return mudHazard{}
	case HazardSnow:
		return snowHazard{}
	case HazardGeese:
		return geeseHazard{}
	case HazardBeaver:
		return beaverHazard{}
	default:
		return riverHazard{}
	}
}

func clampProb(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

func standardMenu(driveLabel, prepLabel, serviceLabel string, serviceCost float64) []HazardMethod {
	return []HazardMethod{
		{ID: MethodDrive, Label: driveLabel},
		{ID: MethodPrep, Label: prepLabel},
		{ID: MethodService, Label: serviceLabel, CostMoney: serviceCost},
		{ID: MethodWait, Label: "Wait a day"},
		{ID: MethodDetour, Label: "Take the long way around"},
	}
}

type riverHazard struct{}

func (riverHazard) methods(p HazardParams) []HazardMethod {
	return standardMenu("Ford the river", "Caulk the wagon and float", "Hire the ferry", riverHazard{}.serviceCost(p))
}

func currentPenalty(current string) float64 {
	switch current {
	case CurrentFast:
		return 0.25
	case CurrentModerate:
		return 0.10
	default:
		return 0
	}
}

func (riverHazard) estimateSuccess(p HazardParams, methodID string) (float64, bool) {
	base := 0.95 - 0.12*p.DepthFt - currentPenalty(p.Current) - 0.0005*p.WidthFt
	switch methodID {
	case MethodDrive:
		return clampProb(base, 0.05, 0.95), true
	case MethodPrep:
		return clampProb(base+0.12, 0.10, 0.97), true
	case MethodService:
		return 0.95, true
	default:
		return 0, false
	}
}

func (riverHazard) serviceCost(p HazardParams) float64 {
	return 10
}

func (riverHazard) reduceSeverity(rng *RNG, p *HazardParams) {
	p.DepthFt -= 0.5
	if p.DepthFt < 0.5 {
		p.DepthFt = 0.5
	}
	if p.Current == CurrentFast && rng.Chance(0.4) {
		p.Current = CurrentModerate
	}
}

func (riverHazard) failurePenalty(e *Engine, s *Session, st *HazardState) []string {
	logs := []string{fmt.Sprintf("The wagon swamps crossing %s.", st.Name)}
	food := float64(s.RNG.IntBetween(5, 15))
	if lost := s.ConsumeItem(ItemFood, food); lost > 0 {
		logs = append(logs, fmt.Sprintf("%.0f lb of food is ruined by river water.", lost))
	}
	if s.RNG.Chance(0.3) && s.ConsumeItem(ItemClothes, 1) > 0 {
		logs = append(logs, "A bundle of clothes washes away.")
	}
	if s.RNG.Chance(0.4) {
		if lost := s.ConsumeItem(ItemBullets, float64(s.RNG.IntBetween(3, 8))); lost > 0 {
			logs = append(logs, fmt.Sprintf("%.0f bullets sink to the bottom.", lost))
		}
	}
	logs = append(logs, maybeHurtSomeone(e, s, 0.5)...)
	return logs
}

func (riverHazard) successLog(p HazardParams, name string) string {
	return fmt.Sprintf("You make the far bank of %s, dripping but whole.", name)
}

type mudHazard struct{}

func (mudHazard) methods(p HazardParams) []HazardMethod {
	return standardMenu("Whip the team through", "Corduroy the worst stretch", "Hire a fresh team to pull", mudHazard{}.serviceCost(p))
}

func (mudHazard) estimateSuccess(p HazardParams, methodID string) (float64, bool) {
	base := 0.90 - 0.5*p.Badness
	switch methodID {
	case MethodDrive:
		return clampProb(base, 0.10, 0.90), true
	case MethodPrep:
		return clampProb(base+0.15, 0.15, 0.96), true
	case MethodService:
		return 0.96, true
	default:
		return 0, false
	}
}

func (mudHazard) serviceCost(p HazardParams) float64 {
	return 8
}

func (mudHazard) reduceSeverity(rng *RNG, p *HazardParams) {
	p.Badness -= 0.2
	if p.Badness < 0 {
		p.Badness = 0
	}
}

func (mudHazard) failurePenalty(e *Engine, s *Session, st *HazardState) []string {
	logs := []string{fmt.Sprintf("The wagon bogs to the axles in %s.", st.Name)}
	logs = append(logs, maybeNickPart(s)...)
	logs = append(logs, maybeHurtSomeone(e, s, 0.35)...)
	return logs
}

func (mudHazard) successLog(p HazardParams, name string) string {
	return fmt.Sprintf("The team hauls you clear of %s.", name)
}

type snowHazard struct{}

func (snowHazard) methods(p HazardParams) []HazardMethod {
	return standardMenu("Push through the drifts", "Shovel a lane first", "Hire a local guide", snowHazard{}.serviceCost(p))
}

func (snowHazard) estimateSuccess(p HazardParams, methodID string) (float64, bool) {
	base := 0.92 - 0.18*p.DriftFt
	switch methodID {
	case MethodDrive:
		return clampProb(base, 0.05, 0.92), true
	case MethodPrep:
		return clampProb(base+0.15, 0.10, 0.96), true
	case MethodService:
		return 0.95, true
	default:
		return 0, false
	}
}

func (snowHazard) serviceCost(p HazardParams) float64 {
	return 8
}

func (snowHazard) reduceSeverity(rng *RNG, p *HazardParams) {
	p.DriftFt -= 0.5
	if p.DriftFt < 0.5 {
		p.DriftFt = 0.5
	}
}

func (snowHazard) failurePenalty(e *Engine, s *Session, st *HazardState) []string {
	logs := []string{fmt.Sprintf("The drifts at %s swallow the wheels.", st.Name)}
	logs = append(logs, maybeNickPart(s)...)
	logs = append(logs, maybeHurtSomeone(e, s, 0.4)...)
	return logs
}

func (snowHazard) successLog(p HazardParams, name string) string {
	return fmt.Sprintf("You break through the drifts at %s.", name)
}

type geeseHazard struct{}

func (geeseHazard) methods(p HazardParams) []HazardMethod {
	return standardMenu("Charge the flock", "Spread out and shoo them", "Pay a boy with a dog", geeseHazard{}.serviceCost(p))
}

func (geeseHazard) estimateSuccess(p HazardParams, methodID string) (float64, bool) {
	base := 0.95 - 0.002*float64(p.Flock)
	switch methodID {
	case MethodDrive:
		return clampProb(base, 0.15, 0.95), true
	case MethodPrep:
		return clampProb(base+0.10, 0.20, 0.97), true
	case MethodService:
		return 0.98, true
	default:
		return 0, false
	}
}

func (geeseHazard) serviceCost(p HazardParams) float64 {
	return 5
}

func (geeseHazard) reduceSeverity(rng *RNG, p *HazardParams) {
	p.Flock = int(float64(p.Flock) * rng.FloatBetween(0.4, 0.6))
}

func (geeseHazard) failurePenalty(e *Engine, s *Session, st *HazardState) []string {
	logs := []string{fmt.Sprintf("The geese at %s hold their ground, hissing.", st.Name)}
	logs = append(logs, maybeNickPart(s)...)
	logs = append(logs, maybeHurtSomeone(e, s, 0.3)...)
	return logs
}

func (geeseHazard) successLog(p HazardParams, name string) string {
	return fmt.Sprintf("The flock at %s scatters before the oxen.", name)
}

type beaverHazard struct{}

func (beaverHazard) methods(p HazardParams) []HazardMethod {
	return standardMenu("Drive across the dam", "Shore up the dam first", "Pay trappers to breach it", beaverHazard{}.serviceCost(p))
}

func (beaverHazard) estimateSuccess(p HazardParams, methodID string) (float64, bool) {
	base := 0.95 - 0.05*p.GapFt
	switch methodID {
	case MethodDrive:
		return clampProb(base, 0.10, 0.95), true
	case MethodPrep:
		return clampProb(base+0.12, 0.15, 0.97), true
	case MethodService:
		return 0.97, true
	default:
		return 0, false
	}
}

func (beaverHazard) serviceCost(p HazardParams) float64 {
	return 6
}

func (beaverHazard) reduceSeverity(rng *RNG, p *HazardParams) {
	p.GapFt -= 2
	if p.GapFt < 2 {
		p.GapFt = 2
	}
}

func (beaverHazard) failurePenalty(e *Engine, s *Session, st *HazardState) []string {
	logs := []string{fmt.Sprintf("A wheel drops through the dam at %s.", st.Name)}
	logs = append(logs, maybeNickPart(s)...)
	logs = append(logs, maybeHurtSomeone(e, s, 0.35)...)
	return logs
}

func (beaverHazard) successLog(p HazardParams, name string) string {
	return fmt.Sprintf("You rattle across the dam at %s before it gives.", name)
}
