package trail

import (
	"fmt"
	"math"
)

// DaySummary is what one resolved day reports back to the caller.
type DaySummary struct {
	Day           int     `json:"day"`
	Rested        bool    `json:"rested"`
	MilesTraveled float64 `json:"miles_traveled"`
	FoodConsumed  float64 `json:"food_consumed"`
	HealthDelta   int     `json:"health_delta"`
	Starvation    bool    `json:"starvation"`
}

// Base miles per day by pace, pre-rounded.
var basePaceMiles = map[string]float64{
	PaceSteady:    15,
	PaceStrenuous: 18,
	PaceGrueling:  20.25,
}

var pacePenalty = map[string]int{
	PaceSteady:    0,
	PaceStrenuous: -1,
	PaceGrueling:  -2,
}

// Pounds of food per person per day by rations setting.
var rationsPerPerson = map[string]float64{
	RationsMeager:   1.0,
	RationsNormal:   2.0,
	RationsGenerous: 3.0,
}

const starvationPenalty = -2
const restRecovery = 1

// ApplyTravelDay resolves one day on the move.
func (e *Engine) ApplyTravelDay(s *Session) DaySummary {
	return e.resolveDay(s, false)
}

// ApplyRestDay resolves one day in camp: no miles, no pace penalty, and
// a point of recovery when rations allow it.
func (e *Engine) ApplyRestDay(s *Session) DaySummary {
	return e.resolveDay(s, true)
}

// MilesPerDay reports what a travel day would cover right now, without
// consuming RNG draws or mutating anything.
func (e *Engine) MilesPerDay(s *Session) float64 {
	speedMult := e.WeatherModifiers(s).SpeedMult
	for _, c := range s.Status.Conditions {
		if c.Effects.SpeedMult > 0 {
			speedMult *= c.Effects.SpeedMult
		}
	}
	speedMult *= s.ActiveBuffMult(s.Day)
	return roundHalfUp(paceBase(s.Pace) * speedMult)
}

func (e *Engine) resolveDay(s *Session, rest bool) DaySummary {
	day := s.Day

	weather := e.RollWeatherForDay(s, day)
	e.TickConditions(s)
	status := e.StatusModifiersForDay(s)

	speedMult := weather.Mods.SpeedMult * status.SpeedMult * s.ActiveBuffMult(day)
	appetiteMult := weather.Mods.HungerMult * status.HungerMult

	miles := 0.0
	if !rest {
		miles = roundHalfUp(paceBase(s.Pace) * speedMult)
		if miles < 0 {
			miles = 0
		}
	}

	alive := s.AliveMembers()
	need := roundHalfUp(float64(len(alive)) * rationsLb(s.Rations) * appetiteMult)
	consumed := s.ConsumeItem(ItemFood, need)
	starvation := consumed < need && need > 0

	healthDelta := weather.Mods.HealthDelta + status.HealthDelta
	if !rest {
		healthDelta += pacePenalty[normalizePace(s.Pace)]
	}
	if starvation {
		healthDelta += starvationPenalty
	} else if rest && (s.Rations == RationsNormal || s.Rations == RationsGenerous) {
		healthDelta += restRecovery
	}

	e.ApplyGroupHealthDelta(s, healthDelta)

	s.Miles += miles
	s.Day++

	verb := "traveled"
	if rest {
		verb = "rested"
	}
	line := fmt.Sprintf("Day %d: %s %.0f miles, ate %.0f lb of food.", day, verb, miles, consumed)
	if starvation {
		line += " There was not enough to go around."
	}
	s.Logf(line)

	return DaySummary{
		Day:           day,
		Rested:        rest,
		MilesTraveled: miles,
		FoodConsumed:  consumed,
		HealthDelta:   healthDelta,
		Starvation:    starvation,
	}
}

func paceBase(pace string) float64 {
	return basePaceMiles[normalizePace(pace)]
}

func rationsLb(rations string) float64 {
	if lb, ok := rationsPerPerson[rations]; ok {
		return lb
	}
	return rationsPerPerson[RationsNormal]
}

func normalizePace(pace string) string {
	if _, ok := basePaceMiles[pace]; ok {
		return pace
	}
	return PaceSteady
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
