package event

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

var (
	ErrInvalidRequest = errors.New("invalid event request")
	ErrNoActiveEvent  = errors.New("no active event for slot")
)

// UseCase drives the event interpreter. In-flight event sessions are
// held in memory only: an event is resolved atomically between two
// durable saves, and a process restart simply drops the un-chosen
// stage (the session itself was last saved before the event began).
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	Journal     ports.JournalRepository
	Engine      *trail.Engine
	Metrics     ports.GameMetrics
	Now         func() time.Time

	mu     sync.Mutex
	active map[string]*trail.EventSession
}

type TriggerRequest struct {
	SlotID string
}

type TriggerResponse struct {
	Triggered bool                 `json:"triggered"`
	EventID   string               `json:"event_id,omitempty"`
	Title     string               `json:"title,omitempty"`
	Stage     *trail.RenderedStage `json:"stage,omitempty"`
}

type StageRequest struct {
	SlotID string
}

type ChooseRequest struct {
	SlotID   string
	ChoiceID string
}

type ChooseResponse struct {
	Done   bool                 `json:"done"`
	Logs   []string             `json:"logs,omitempty"`
	Reason string               `json:"reason,omitempty"`
	Stage  *trail.RenderedStage `json:"stage,omitempty"`
}

// Trigger runs the cooldown gate and weighted selection. The session
// mutation (cooldown bookkeeping, log line) is saved even when no
// event fires, so re-asking on the same day cannot re-roll.
func (u *UseCase) Trigger(ctx context.Context, req TriggerRequest) (TriggerResponse, error) {
	slotID := strings.TrimSpace(req.SlotID)
	if slotID == "" {
		return TriggerResponse{}, ErrInvalidRequest
	}

	var out TriggerResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := u.SessionRepo.GetBySlotID(txCtx, slotID)
		if err != nil {
			return err
		}
		expectedVersion := session.Version

		evtSession := u.Engine.MaybeTriggerEvent(session)
		session.Version++
		if err := u.SessionRepo.SaveWithVersion(txCtx, session, expectedVersion); err != nil {
			return err
		}

		if evtSession == nil {
			out = TriggerResponse{}
			return nil
		}
		u.setActive(slotID, evtSession)
		stage := u.Engine.RenderStage(session, evtSession)
		out = TriggerResponse{
			Triggered: true,
			EventID:   evtSession.Event.ID,
			Title:     evtSession.Event.Title,
			Stage:     &stage,
		}
		return nil
	})
	if err != nil {
		return TriggerResponse{}, err
	}
	return out, nil
}

// Stage re-renders the current stage for the slot's active event.
func (u *UseCase) Stage(ctx context.Context, req StageRequest) (TriggerResponse, error) {
	slotID := strings.TrimSpace(req.SlotID)
	if slotID == "" {
		return TriggerResponse{}, ErrInvalidRequest
	}
	evtSession := u.getActive(slotID)
	if evtSession == nil {
		return TriggerResponse{}, ErrNoActiveEvent
	}
	session, err := u.SessionRepo.GetBySlotID(ctx, slotID)
	if err != nil {
		return TriggerResponse{}, err
	}
	stage := u.Engine.RenderStage(session, evtSession)
	return TriggerResponse{
		Triggered: true,
		EventID:   evtSession.Event.ID,
		Title:     evtSession.Event.Title,
		Stage:     &stage,
	}, nil
}

// Choose applies one choice. The durable save happens only when the
// event completes or advances; an unmet requirement is a recorded
// no-op.
func (u *UseCase) Choose(ctx context.Context, req ChooseRequest) (ChooseResponse, error) {
	slotID := strings.TrimSpace(req.SlotID)
	if slotID == "" || strings.TrimSpace(req.ChoiceID) == "" {
		return ChooseResponse{}, ErrInvalidRequest
	}
	evtSession := u.getActive(slotID)
	if evtSession == nil {
		return ChooseResponse{}, ErrNoActiveEvent
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out ChooseResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := u.SessionRepo.GetBySlotID(txCtx, slotID)
		if err != nil {
			return err
		}
		expectedVersion := session.Version

		outcome := u.Engine.Choose(session, evtSession, req.ChoiceID)
		if outcome.Reason != "" {
			out = ChooseResponse{Reason: outcome.Reason}
			return nil
		}

		session.Version++
		if err := u.SessionRepo.SaveWithVersion(txCtx, session, expectedVersion); err != nil {
			return err
		}
		if err := u.Journal.Append(txCtx, slotID, []ports.TrailEvent{{
			Type:       "event_choice",
			OccurredAt: nowFn(),
			Payload: map[string]any{
				"event_id":  evtSession.Event.ID,
				"choice_id": req.ChoiceID,
				"done":      outcome.Done,
				"logs":      outcome.Logs,
			},
		}}); err != nil {
			return err
		}

		out = ChooseResponse{Done: outcome.Done, Logs: outcome.Logs}
		if outcome.Done {
			u.clearActive(slotID)
			if u.Metrics != nil {
				u.Metrics.RecordEventResolved(evtSession.Event.ID)
			}
		} else {
			stage := u.Engine.RenderStage(session, evtSession)
			out.Stage = &stage
		}
		return nil
	})
	if err != nil {
		return ChooseResponse{}, err
	}
	return out, nil
}

func (u *UseCase) setActive(slotID string, s *trail.EventSession) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active == nil {
		u.active = map[string]*trail.EventSession{}
	}
	u.active[slotID] = s
}

func (u *UseCase) getActive(slotID string) *trail.EventSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.active[slotID]
}

func (u *UseCase) clearActive(slotID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.active, slotID)
}
