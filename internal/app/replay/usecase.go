package replay

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagontrail/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Journal ports.JournalRepository
}

type Request struct {
	SlotID       string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// HeadlineState is the coarse state reconstructed from journal
// entries, for timeline views; the authoritative state lives in the
// session repo.
type HeadlineState struct {
	Day   int     `json:"day"`
	Miles float64 `json:"miles"`
	Money float64 `json:"money"`
	Food  float64 `json:"food"`
	Alive int     `json:"alive"`
}

type Response struct {
	Events []ports.TrailEvent `json:"events"`
	Latest HeadlineState      `json:"latest"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SlotID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Journal.ListBySlotID(ctx, req.SlotID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, Latest: reconstruct(events)}, nil
}

func filterByTimeWindow(events []ports.TrailEvent, from, to int64) []ports.TrailEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]ports.TrailEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func reconstruct(events []ports.TrailEvent) HeadlineState {
	var state HeadlineState
	var latest time.Time
	for _, evt := range events {
		after, ok := evt.Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		if !latest.IsZero() && evt.OccurredAt.Before(latest) {
			continue
		}
		latest = evt.OccurredAt
		state.Day = int(num(after["day"]))
		state.Miles = num(after["miles"])
		state.Money = num(after["money"])
		state.Food = num(after["food"])
		state.Alive = int(num(after["alive"]))
	}
	return state
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
