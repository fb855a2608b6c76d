package turn

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

var (
	ErrInvalidRequest = errors.New("invalid turn request")
	ErrGameOver       = errors.New("the journey is already over")
)

type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	TurnRepo    ports.TurnExecutionRepository
	Journal     ports.JournalRepository
	Engine      *trail.Engine
	Metrics     ports.GameMetrics
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SlotID = strings.TrimSpace(req.SlotID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.SlotID == "" || req.IdempotencyKey == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Action != ActionTravel && req.Action != ActionRest {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.TurnRepo.GetByIdempotencyKey(txCtx, req.SlotID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{Summary: exec.Result.Summary, Events: exec.Result.Events}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		session, err := u.SessionRepo.GetBySlotID(txCtx, req.SlotID)
		if err != nil {
			return err
		}
		if len(session.AliveMembers()) == 0 {
			return ErrGameOver
		}
		expectedVersion := session.Version

		if req.Pace != "" {
			session.Pace = req.Pace
		}
		if req.Rations != "" {
			session.Rations = req.Rations
		}

		before := snapshotPayload(session)
		var summary trail.DaySummary
		if req.Action == ActionRest {
			summary = u.Engine.ApplyRestDay(session)
		} else {
			summary = u.Engine.ApplyTravelDay(session)
		}
		session.Version++

		events := []ports.TrailEvent{{
			Type:       "day_settled",
			OccurredAt: nowFn(),
			Payload: map[string]any{
				"action":        req.Action,
				"state_before":  before,
				"state_after":   snapshotPayload(session),
				"miles":         summary.MilesTraveled,
				"food_consumed": summary.FoodConsumed,
				"health_delta":  summary.HealthDelta,
				"starvation":    summary.Starvation,
			},
		}}

		if err := u.SessionRepo.SaveWithVersion(txCtx, session, expectedVersion); err != nil {
			return err
		}
		if err := u.Journal.Append(txCtx, req.SlotID, events); err != nil {
			return err
		}
		execution := ports.TurnExecutionRecord{
			SlotID:         req.SlotID,
			IdempotencyKey: req.IdempotencyKey,
			Action:         req.Action,
			Result:         ports.TurnResult{Summary: summary, Events: events},
			AppliedAt:      nowFn(),
		}
		if err := u.TurnRepo.SaveExecution(txCtx, execution); err != nil {
			return err
		}

		out = Response{
			Summary:     summary,
			Day:         session.Day,
			Miles:       session.Miles,
			PartyAlive:  len(session.AliveMembers()),
			GameOver:    len(session.AliveMembers()) == 0,
			Events:      events,
			MilesPerDay: u.Engine.MilesPerDay(session),
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordTurn(req.Action, out.Summary.Starvation)
	}
	return out, nil
}

// snapshotPayload captures the headline fields for journal before/after
// records; the full session document lives in the session repo.
func snapshotPayload(s *trail.Session) map[string]any {
	return map[string]any{
		"day":    s.Day,
		"miles":  s.Miles,
		"money":  s.Money,
		"food":   s.Item(trail.ItemFood),
		"alive":  len(s.AliveMembers()),
		"morale": s.Morale,
	}
}
