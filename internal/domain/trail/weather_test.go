package trail

import "testing"

func newTestSession(seed uint32) *Session {
	return NewSession("slot-1", seed, nil)
}

func TestWeather_DefaultsBeforeFirstRoll(t *testing.T) {
	e := NewEngine(DefaultCatalogs())
	s := newTestSession(1)

	mods := e.WeatherModifiers(s)
	if mods.SpeedMult != 1 || mods.HealthDelta != 0 || mods.HungerMult != 1 {
		t.Fatalf("expected identity modifiers before first roll, got %+v", mods)
	}
}

func TestWeather_RollIsIdempotentPerDay(t *testing.T) {
	e := NewEngine(DefaultCatalogs())
	s := newTestSession(42)

	first := e.RollWeatherForDay(s, s.Day)
	logLen := len(s.Log)
	stateAfter := s.RNG.State()

	second := e.RollWeatherForDay(s, s.Day)
	if first != second {
		t.Fatalf("re-roll for the same day changed the record: %+v vs %+v", first, second)
	}
	if len(s.Log) != logLen {
		t.Fatalf("re-roll appended a second log line")
	}
	if s.RNG.State() != stateAfter {
		t.Fatalf("re-roll consumed an RNG draw")
	}
}

func TestWeather_NewDayRollsFresh(t *testing.T) {
	e := NewEngine(DefaultCatalogs())
	s := newTestSession(42)

	e.RollWeatherForDay(s, 1)
	second := e.RollWeatherForDay(s, 2)
	if second.Day != 2 {
		t.Fatalf("expected record keyed to day 2, got %d", second.Day)
	}
	if s.Weather.LastRolledDay != 2 {
		t.Fatalf("expected lastRolledDay 2, got %d", s.Weather.LastRolledDay)
	}
}

func TestWeather_RollReproducibleFromSeed(t *testing.T) {
	e := NewEngine(DefaultCatalogs())
	a := newTestSession(1234)
	b := newTestSession(1234)

	ra := e.RollWeatherForDay(a, 1)
	rb := e.RollWeatherForDay(b, 1)
	if ra.ID != rb.ID {
		t.Fatalf("same seed rolled different weather: %s vs %s", ra.ID, rb.ID)
	}
}
