package turn

import (
	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

const (
	ActionTravel = "travel"
	ActionRest   = "rest"
)

type Request struct {
	SlotID         string
	IdempotencyKey string
	Action         string
	// Pace and Rations, when non-empty, update the session settings
	// before the day is settled.
	Pace    string
	Rations string
}

type Response struct {
	Summary     trail.DaySummary   `json:"summary"`
	Day         int                `json:"day"`
	Miles       float64            `json:"miles"`
	PartyAlive  int                `json:"party_alive"`
	GameOver    bool               `json:"game_over"`
	Events      []ports.TrailEvent `json:"events"`
	MilesPerDay float64            `json:"miles_per_day"`
}
