package trail

import (
	"fmt"
	"strings"
)

const flagEventCooldown = "evtCooldownDays"

// EventSession is the transient state of one in-flight event. It lives
// only until the event resolves; it is never persisted.
type EventSession struct {
	Event   EventDef `json:"event"`
	StageID string   `json:"stage_id"`
	ChildID string   `json:"child_id,omitempty"`
	Logs    []string `json:"logs,omitempty"`
}

// RenderedChoice is one choice as the presentation layer should show
// it: disabled when its requirements are unmet, with readable reasons.
type RenderedChoice struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Disabled bool     `json:"disabled"`
	Unmet    []string `json:"unmet,omitempty"`
}

type RenderedStage struct {
	StageID string           `json:"stage_id"`
	Title   string           `json:"title"`
	Text    string           `json:"text"`
	Choices []RenderedChoice `json:"choices"`
}

type ChoiceOutcome struct {
	Done   bool     `json:"done"`
	Logs   []string `json:"logs,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// MaybeTriggerEvent runs the cooldown gate and, when it opens, one
// weighted pick over the eligible events. An empty eligible set sets a
// one-day retry cooldown and returns nil; it never fails.
func (e *Engine) MaybeTriggerEvent(s *Session) *EventSession {
	if cd := flagInt(s, flagEventCooldown); cd > 0 {
		s.SetFlag(flagEventCooldown, cd-1)
		return nil
	}

	eligible := make([]EventDef, 0, len(e.catalogs.Events))
	for _, ev := range e.catalogs.Events {
		if e.isEligible(s, ev.When) {
			eligible = append(eligible, ev)
		}
	}
	if len(eligible) == 0 {
		s.SetFlag(flagEventCooldown, 1)
		return nil
	}

	weights := make([]int, len(eligible))
	for i, ev := range eligible {
		weights[i] = ev.Weight
	}
	idx := weightedIndex(s.RNG, weights)
	if idx < 0 {
		s.SetFlag(flagEventCooldown, 1)
		return nil
	}
	ev := eligible[idx]
	s.SetFlag(flagEventCooldown, s.RNG.IntBetween(3, 6))

	session := &EventSession{Event: ev}
	if len(ev.Stages) > 0 {
		session.StageID = ev.Stages[0].ID
	}
	if child := e.pickChild(s); child != nil {
		session.ChildID = child.ID
	}
	s.Logf(fmt.Sprintf("📜 %s", ev.Title))
	return session
}

func (e *Engine) isEligible(s *Session, when EventWhen) bool {
	if when.DayGte > 0 && s.Day < when.DayGte {
		return false
	}
	if when.DayLte > 0 && s.Day > when.DayLte {
		return false
	}
	if when.MileGte > 0 && s.Miles < when.MileGte {
		return false
	}
	if when.MileLte > 0 && s.Miles > when.MileLte {
		return false
	}
	for _, f := range when.RequiredFlags {
		if !s.FlagSet(f) {
			return false
		}
	}
	for _, f := range when.ForbiddenFlags {
		if s.FlagSet(f) {
			return false
		}
	}
	if when.FoodLte > 0 && s.Item(ItemFood) > when.FoodLte {
		return false
	}
	if when.BulletsGte > 0 && s.Item(ItemBullets) < when.BulletsGte {
		return false
	}
	if when.MedicineGte > 0 && s.Item(ItemMedicine) < when.MedicineGte {
		return false
	}
	return true
}

// RenderStage produces the current stage for presentation. A dangling
// stage id falls back to the first stage rather than failing; a stage
// with no declared choices gets a synthetic "Continue" exit.
func (e *Engine) RenderStage(s *Session, session *EventSession) RenderedStage {
	stage := e.findStage(session)
	text := strings.ReplaceAll(stage.Text, "{child}", e.childName(s, session))

	choices := stage.Choices
	if len(choices) == 0 {
		choices = []EventChoice{{ID: "continue", Label: "Continue", Goto: stageEnd}}
	}

	rendered := make([]RenderedChoice, 0, len(choices))
	for _, c := range choices {
		unmet := e.unmetRequirements(s, c.Requires)
		rendered = append(rendered, RenderedChoice{
			ID:       c.ID,
			Label:    c.Label,
			Disabled: len(unmet) > 0,
			Unmet:    unmet,
		})
	}
	return RenderedStage{
		StageID: stage.ID,
		Title:   session.Event.Title,
		Text:    text,
		Choices: rendered,
	}
}

const stageEnd = "end"

// Choose re-validates the choice (the UI should already have disabled
// it, but a stale control must not corrupt state), applies its effects
// in declaration order, and advances the stage.
func (e *Engine) Choose(s *Session, session *EventSession, choiceID string) ChoiceOutcome {
	stage := e.findStage(session)

	choices := stage.Choices
	if len(choices) == 0 {
		choices = []EventChoice{{ID: "continue", Label: "Continue", Goto: stageEnd}}
	}

	var choice *EventChoice
	for i := range choices {
		if choices[i].ID == choiceID {
			choice = &choices[i]
			break
		}
	}
	if choice == nil {
		return ChoiceOutcome{Reason: "unsure what to do"}
	}
	if unmet := e.unmetRequirements(s, choice.Requires); len(unmet) > 0 {
		reason := strings.Join(unmet, ", ")
		s.Logf(fmt.Sprintf("You cannot do that: %s.", reason))
		return ChoiceOutcome{Reason: reason}
	}

	logs := e.applyEffects(s, session, choice.Effects)
	for _, line := range logs {
		s.Logf(line)
	}
	session.Logs = append(session.Logs, logs...)

	if choice.Goto == "" || choice.Goto == stageEnd {
		return ChoiceOutcome{Done: true, Logs: logs}
	}
	session.StageID = choice.Goto
	return ChoiceOutcome{Done: false, Logs: logs}
}

func (e *Engine) findStage(session *EventSession) EventStage {
	for _, st := range session.Event.Stages {
		if st.ID == session.StageID {
			return st
		}
	}
	if len(session.Event.Stages) > 0 {
		return session.Event.Stages[0]
	}
	return EventStage{ID: stageEnd, Text: session.Event.Title}
}

func (e *Engine) unmetRequirements(s *Session, req *ChoiceRequires) []string {
	if req == nil {
		return nil
	}
	var unmet []string
	if req.MoneyGte > 0 && s.Money < req.MoneyGte {
		unmet = append(unmet, fmt.Sprintf("need $%.0f", req.MoneyGte))
	}
	for item, min := range req.Inventory {
		if s.Item(item) < min {
			unmet = append(unmet, fmt.Sprintf("need %.0f %s", min, item))
		}
	}
	return unmet
}

func (e *Engine) childName(s *Session, session *EventSession) string {
	if session.ChildID != "" {
		if m := s.MemberByID(session.ChildID); m != nil && m.Alive() {
			return m.Name
		}
	}
	return "a child"
}

func (e *Engine) pickChild(s *Session) *PartyMember {
	children := make([]*PartyMember, 0, len(s.Party))
	for _, m := range s.AliveMembers() {
		if m.Role == "child" || m.Role == "infant" {
			children = append(children, m)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return children[s.RNG.NextInt(len(children))]
}

func flagInt(s *Session, key string) int {
	if s.Flags == nil {
		return 0
	}
	switch v := s.Flags[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
