package trail

import "fmt"

// StatusModifiers is the aggregate drag of all active conditions for
// one day. HealthDelta already includes the per-condition Bernoulli
// outcomes, so the caller applies it as-is.
type StatusModifiers struct {
	SpeedMult   float64
	HungerMult  float64
	HealthDelta int
}

// TickConditions runs the once-per-day condition lifecycle: decrement
// every active instance, retire the expired ones (stamping cooldown
// history), then at most one acquire roll if the concurrency cap
// leaves room.
func (e *Engine) TickConditions(s *Session) {
	today := s.Day

	remaining := s.Status.Conditions[:0]
	for _, c := range s.Status.Conditions {
		c.DaysRemaining--
		if c.DaysRemaining <= 0 {
			if s.Status.History == nil {
				s.Status.History = map[string]ConditionHistory{}
			}
			s.Status.History[c.ID] = ConditionHistory{LastEndDay: today}
			s.Logf(fmt.Sprintf("%s The party has recovered from %s.", c.Emoji, c.Name))
			continue
		}
		remaining = append(remaining, c)
	}
	s.Status.Conditions = remaining

	if len(s.Status.Conditions) >= e.catalogs.Tuning.MaxConcurrent {
		return
	}
	if !s.RNG.Chance(e.catalogs.Tuning.BaseDailyChance) {
		return
	}

	candidates := make([]ConditionDef, 0, len(e.catalogs.Conditions))
	for _, def := range e.catalogs.Conditions {
		if def.Trigger.MinDay > today {
			continue
		}
		if e.conditionActive(s, def.ID) {
			continue
		}
		if h, ok := s.Status.History[def.ID]; ok && today-h.LastEndDay < def.Trigger.CooldownDays {
			continue
		}
		candidates = append(candidates, def)
	}
	if len(candidates) == 0 {
		return
	}

	weights := make([]int, len(candidates))
	for i, def := range candidates {
		weights[i] = def.Weight
	}
	idx := weightedIndex(s.RNG, weights)
	if idx < 0 {
		return
	}
	def := candidates[idx]
	duration := s.RNG.IntBetween(def.Duration.Min, def.Duration.Max)

	s.Status.Conditions = append(s.Status.Conditions, ConditionInstance{
		ID:            def.ID,
		Name:          def.Name,
		Emoji:         def.Emoji,
		Kind:          def.Kind,
		DaysRemaining: duration,
		Effects:       def.Effects,
		Blurb:         def.Blurb,
	})
	s.Logf(fmt.Sprintf("%s %s strikes the party. %s", def.Emoji, def.Name, def.Blurb))
}

func (e *Engine) conditionActive(s *Session, id string) bool {
	for _, c := range s.Status.Conditions {
		if c.ID == id {
			return true
		}
	}
	return false
}

// StatusModifiersForDay multiplies every active condition's speed and
// hunger multipliers and rolls each condition's daily health chance
// independently, so simultaneous conditions compound on both axes.
func (e *Engine) StatusModifiersForDay(s *Session) StatusModifiers {
	mods := StatusModifiers{SpeedMult: 1, HungerMult: 1}
	for _, c := range s.Status.Conditions {
		if c.Effects.SpeedMult > 0 {
			mods.SpeedMult *= c.Effects.SpeedMult
		}
		if c.Effects.HungerMult > 0 {
			mods.HungerMult *= c.Effects.HungerMult
		}
		if c.Effects.HealthChancePerDay > 0 && s.RNG.Chance(c.Effects.HealthChancePerDay) {
			mods.HealthDelta--
		}
	}
	return mods
}

// ApplyGroupHealthDelta applies one delta to every living member.
func (e *Engine) ApplyGroupHealthDelta(s *Session, delta int) {
	if delta == 0 {
		return
	}
	for _, m := range s.AliveMembers() {
		m.ApplyHealthDelta(delta)
		if !m.Alive() {
			s.Logf(fmt.Sprintf("💀 %s has died.", m.Name))
		}
	}
}

// ActiveConditions returns a copy of the active condition list.
func (e *Engine) ActiveConditions(s *Session) []ConditionInstance {
	return append([]ConditionInstance(nil), s.Status.Conditions...)
}
