package newgame

import (
	"context"
	"errors"
	"strings"
	"time"

	"wagontrail/internal/app/ports"
	"wagontrail/internal/domain/trail"
)

var ErrInvalidRequest = errors.New("invalid new game request")

type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	Journal     ports.JournalRepository
	Now         func() time.Time
}

type Request struct {
	SlotID string
	// Seed pins the playthrough; 0 means "derive one". Deriving a seed
	// is the one legitimately non-deterministic act in the system —
	// every later draw comes from the session's own stream.
	Seed  uint32
	Party []trail.StartingMember
}

type Response struct {
	SlotID string `json:"slot_id"`
	Seed   uint32 `json:"seed"`
	Day    int    `json:"day"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SlotID = strings.TrimSpace(req.SlotID)
	if req.SlotID == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint32(nowFn().UnixNano())
	}

	session := trail.NewSession(req.SlotID, seed, req.Party)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.SessionRepo.SaveWithVersion(txCtx, session, 0); err != nil {
			return err
		}
		return u.Journal.Append(txCtx, req.SlotID, []ports.TrailEvent{{
			Type:       "game_started",
			OccurredAt: nowFn(),
			Payload:    map[string]any{"seed": seed, "party": len(session.Party)},
		}})
	})
	if err != nil {
		return Response{}, err
	}
	return Response{SlotID: req.SlotID, Seed: seed, Day: session.Day}, nil
}
