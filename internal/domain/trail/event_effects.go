package trail

import "fmt"

var epitaphs = []string{
	"Gone to see the elephant.",
	"The trail asked more than they had.",
	"Rest now, far from home.",
	"They never saw the valley.",
	"Buried where the wagons turn west.",
}

// applyEffects dispatches every effect in declaration order and
// collects the lines it produced. It never writes to the session log
// itself; the caller owns that, so lines from nested rolls are not
// recorded twice. The type set is closed; an unknown type is logged
// and skipped so one bad entry cannot sink a whole event.
func (e *Engine) applyEffects(s *Session, session *EventSession, effects []Effect) []string {
	var logs []string
	for _, eff := range effects {
		switch eff.Type {
		case EffectInventory:
			s.AddItem(eff.Item, eff.Delta)
		case EffectMoney:
			s.AddMoney(eff.Delta)
		case EffectHealth:
			for _, m := range e.resolveTargets(s, session, eff.Target) {
				m.ApplyHealthDelta(int(eff.Delta))
				if !m.Alive() {
					logs = append(logs, fmt.Sprintf("💀 %s has died.", m.Name))
				}
			}
		case EffectStatus:
			for _, m := range e.resolveTargets(s, session, eff.Target) {
				m.Status = eff.Status
			}
		case EffectTime:
			if eff.Days > 0 {
				s.Day += eff.Days
			}
		case EffectDistance:
			s.Miles += eff.Miles
			if s.Miles < 0 {
				s.Miles = 0
			}
		case EffectMapFlag:
			value := eff.Value
			if value == nil {
				value = true
			}
			s.SetFlag(eff.Key, value)
		case EffectRiskBuff:
			s.SetBuff(eff.Key, eff.Mult, s.Day+eff.Days)
		case EffectMorale:
			s.AddMorale(int(eff.Delta))
		case EffectMortality:
			logs = append(logs, e.applyMortality(s, session, eff)...)
		case EffectRoll:
			logs = append(logs, e.applyRoll(s, session, eff)...)
		default:
			s.Logf(fmt.Sprintf("Nothing comes of it. (unknown effect %q)", string(eff.Type)))
		}
	}
	return logs
}

func (e *Engine) applyMortality(s *Session, session *EventSession, eff Effect) []string {
	targets := e.resolveTargets(s, session, eff.Target)
	if len(targets) == 0 {
		return nil
	}
	m := targets[0]
	if !m.Alive() {
		return nil
	}
	m.Health = 0
	m.Status = StatusDead
	epitaph := epitaphs[s.RNG.NextInt(len(epitaphs))]
	s.SetEpitaph(m.ID, epitaph)
	reason := eff.Reason
	if reason == "" {
		reason = "the trail"
	}
	return []string{fmt.Sprintf("💀 %s has died of %s. %s", m.Name, reason, epitaph)}
}

// applyRoll is the only compositional effect: one weighted pick whose
// chosen branch is applied recursively.
func (e *Engine) applyRoll(s *Session, session *EventSession, eff Effect) []string {
	if len(eff.Options) == 0 {
		return nil
	}
	weights := make([]int, len(eff.Options))
	for i, opt := range eff.Options {
		weights[i] = opt.Weight
	}
	idx := weightedIndex(s.RNG, weights)
	if idx < 0 {
		return nil
	}
	opt := eff.Options[idx]
	logs := e.applyEffects(s, session, opt.Effects)
	if opt.Log != "" {
		logs = append([]string{opt.Log}, logs...)
	}
	return logs
}

// resolveTargets maps a declared target selector onto living members.
// Dead members are never candidates; an unresolvable selector degrades
// to one random living member rather than failing.
func (e *Engine) resolveTargets(s *Session, session *EventSession, target string) []*PartyMember {
	alive := s.AliveMembers()
	if len(alive) == 0 {
		return nil
	}
	switch target {
	case "family", "all":
		return alive
	case "child":
		if session != nil && session.ChildID != "" {
			if m := s.MemberByID(session.ChildID); m != nil && m.Alive() {
				return []*PartyMember{m}
			}
		}
		children := make([]*PartyMember, 0, len(alive))
		for _, m := range alive {
			if m.Role == "child" || m.Role == "infant" {
				children = append(children, m)
			}
		}
		if len(children) > 0 {
			return []*PartyMember{children[s.RNG.NextInt(len(children))]}
		}
		return []*PartyMember{alive[s.RNG.NextInt(len(alive))]}
	case "random", "":
		return []*PartyMember{alive[s.RNG.NextInt(len(alive))]}
	default:
		if m := s.MemberByID(target); m != nil && m.Alive() {
			return []*PartyMember{m}
		}
		if session != nil && session.ChildID != "" {
			if m := s.MemberByID(session.ChildID); m != nil && m.Alive() {
				return []*PartyMember{m}
			}
		}
		return []*PartyMember{alive[s.RNG.NextInt(len(alive))]}
	}
}
