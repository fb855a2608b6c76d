package trail

import "fmt"

// RollWeatherForDay performs the once-per-day weighted weather pick.
// Re-entry for the same day value returns the cached record unchanged
// and consumes no RNG draw, so a UI re-render cannot double-roll.
func (e *Engine) RollWeatherForDay(s *Session, day int) WeatherToday {
	if s.Weather.Today != nil && s.Weather.LastRolledDay == day {
		return *s.Weather.Today
	}

	patterns := e.catalogs.Weather
	weights := make([]int, len(patterns))
	for i, p := range patterns {
		weights[i] = p.Weight
	}
	idx := weightedIndex(s.RNG, weights)
	if idx < 0 {
		idx = 0
	}
	p := patterns[idx]

	today := WeatherToday{
		Day:   day,
		ID:    p.ID,
		Name:  p.Name,
		Emoji: p.Emoji,
		Blurb: p.Blurb,
		Mods:  p.Mods,
	}
	s.Weather.Today = &today
	s.Weather.LastRolledDay = day
	s.Logf(fmt.Sprintf("Day %d: %s %s. %s", day, p.Emoji, p.Name, p.Blurb))
	return today
}

// WeatherModifiers returns today's modifiers, or the identity set when
// nothing has been rolled yet.
func (e *Engine) WeatherModifiers(s *Session) WeatherMods {
	if s.Weather.Today == nil {
		return WeatherMods{SpeedMult: 1, HealthDelta: 0, HungerMult: 1}
	}
	return s.Weather.Today.Mods
}

// DescribeToday renders a short human-readable line for the current
// weather, or a neutral placeholder before the first roll.
func (e *Engine) DescribeToday(s *Session) string {
	if s.Weather.Today == nil {
		return "The sky gives nothing away yet."
	}
	t := s.Weather.Today
	return fmt.Sprintf("%s %s", t.Emoji, t.Name)
}
