package observe

import (
	"context"
	"errors"
	"strings"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type UseCase struct {
	SessionRepo ports.SessionRepository
	Engine      *trail.Engine
}

type Request struct {
	SlotID string
	// LogTail limits how many trailing log lines are returned; 0 means
	// a sensible default.
	LogTail int
}

type Response struct {
	SlotID      string                    `json:"slot_id"`
	Day         int                       `json:"day"`
	Miles       float64                   `json:"miles"`
	Money       float64                   `json:"money"`
	Morale      int                       `json:"morale"`
	Pace        string                    `json:"pace"`
	Rations     string                    `json:"rations"`
	Inventory   map[string]float64        `json:"inventory"`
	Party       []trail.PartyMember       `json:"party"`
	Weather     string                    `json:"weather"`
	Conditions  []trail.ConditionInstance `json:"conditions"`
	MilesPerDay float64                   `json:"miles_per_day"`
	GameOver    bool                      `json:"game_over"`
	Log         []string                  `json:"log"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SlotID) == "" {
		return Response{}, ErrInvalidRequest
	}
	session, err := u.SessionRepo.GetBySlotID(ctx, req.SlotID)
	if err != nil {
		return Response{}, err
	}

	tail := req.LogTail
	if tail <= 0 {
		tail = 20
	}
	log := session.Log
	if len(log) > tail {
		log = log[len(log)-tail:]
	}

	return Response{
		SlotID:      session.SlotID,
		Day:         session.Day,
		Miles:       session.Miles,
		Money:       session.Money,
		Morale:      session.Morale,
		Pace:        session.Pace,
		Rations:     session.Rations,
		Inventory:   session.Inventory,
		Party:       session.Party,
		Weather:     u.Engine.DescribeToday(session),
		Conditions:  u.Engine.ActiveConditions(session),
		MilesPerDay: u.Engine.MilesPerDay(session),
		GameOver:    len(session.AliveMembers()) == 0,
		Log:         append([]string(nil), log...),
	}, nil
}
