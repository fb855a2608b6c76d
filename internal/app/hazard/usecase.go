package hazard

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

var (
	ErrInvalidRequest = errors.New("invalid hazard request")
	ErrNoSuchLandmark = errors.New("no such landmark")
	ErrNotBlocking    = errors.New("landmark has no blocking hazard")
)

type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	Journal     ports.JournalRepository
	Catalogs    ports.CatalogProvider
	Engine      *trail.Engine
	Metrics     ports.GameMetrics
	Now         func() time.Time
}

type StateRequest struct {
	SlotID     string
	LandmarkID string
}

type StateResponse struct {
	State   *trail.HazardState   `json:"state"`
	Methods []trail.HazardMethod `json:"methods"`
}

type AttemptRequest struct {
	SlotID     string
	LandmarkID string
	MethodID   string
}

type AttemptResponse struct {
	Result trail.AttemptResult `json:"result"`
	Day    int                 `json:"day"`
	Money  float64             `json:"money"`
}

func (u UseCase) landmark(ctx context.Context, id string) (trail.Landmark, error) {
	landmarks, err := u.Catalogs.Landmarks(ctx)
	if err != nil {
		return trail.Landmark{}, err
	}
	for _, lm := range landmarks {
		if lm.ID == id {
			return lm, nil
		}
	}
	return trail.Landmark{}, ErrNoSuchLandmark
}

// State returns (creating on first contact) the hazard working copy
// and its method menu.
func (u UseCase) State(ctx context.Context, req StateRequest) (StateResponse, error) {
	if strings.TrimSpace(req.SlotID) == "" || strings.TrimSpace(req.LandmarkID) == "" {
		return StateResponse{}, ErrInvalidRequest
	}
	lm, err := u.landmark(ctx, req.LandmarkID)
	if err != nil {
		return StateResponse{}, err
	}
	if lm.Hazard == nil {
		return StateResponse{}, ErrNotBlocking
	}

	var out StateResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := u.SessionRepo.GetBySlotID(txCtx, req.SlotID)
		if err != nil {
			return err
		}
		expectedVersion := session.Version

		st := u.Engine.HazardStateFor(session, lm)
		session.Version++
		if err := u.SessionRepo.SaveWithVersion(txCtx, session, expectedVersion); err != nil {
			return err
		}
		out = StateResponse{State: st, Methods: u.Engine.ListMethods(session, st)}
		return nil
	})
	if err != nil {
		return StateResponse{}, err
	}
	return out, nil
}

// Attempt runs one method against the hazard, settling any lost days
// through the full day-resolution engine before the save.
func (u UseCase) Attempt(ctx context.Context, req AttemptRequest) (AttemptResponse, error) {
	if strings.TrimSpace(req.SlotID) == "" || strings.TrimSpace(req.LandmarkID) == "" || strings.TrimSpace(req.MethodID) == "" {
		return AttemptResponse{}, ErrInvalidRequest
	}
	lm, err := u.landmark(ctx, req.LandmarkID)
	if err != nil {
		return AttemptResponse{}, err
	}
	if lm.Hazard == nil {
		return AttemptResponse{}, ErrNotBlocking
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out AttemptResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := u.SessionRepo.GetBySlotID(txCtx, req.SlotID)
		if err != nil {
			return err
		}
		expectedVersion := session.Version

		st := u.Engine.HazardStateFor(session, lm)
		result := u.Engine.TryMethod(session, st, req.MethodID)
		session.Version++

		if err := u.SessionRepo.SaveWithVersion(txCtx, session, expectedVersion); err != nil {
			return err
		}
		if err := u.Journal.Append(txCtx, req.SlotID, []ports.TrailEvent{{
			Type:       "hazard_attempt",
			OccurredAt: nowFn(),
			Payload: map[string]any{
				"landmark_id": req.LandmarkID,
				"method":      req.MethodID,
				"resolved":    result.Resolved,
				"days_lost":   result.DaysLost,
			},
		}}); err != nil {
			return err
		}

		out = AttemptResponse{Result: result, Day: session.Day, Money: session.Money}
		return nil
	})
	if err != nil {
		return AttemptResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordHazardAttempt(req.MethodID, out.Result.Resolved)
	}
	return out, nil
}
