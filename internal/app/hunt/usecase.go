package hunt

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
	ErrInvalidRequest = errors.New("invalid hunt request")
	ErrNoActiveHunt   = errors.New("no active hunt for slot")
	ErrHuntInProgress = errors.New("a hunt is already in progress")
	ErrNothingToHunt  = errors.New("no living hunters")
)

// UseCase runs hunting sessions. A session lives in memory between
// Start and End; only End (or abandoning the process) touches durable
// state, under the usual optimistic version check.
type UseCase struct {
	TxManager   ports.TxManager
	SessionRepo ports.SessionRepository
	Journal     ports.JournalRepository
	Engine      *trail.Engine
	Metrics     ports.GameMetrics
	Now         func() time.Time

	mu     sync.Mutex
	active map[string]*activeHunt
}

type activeHunt struct {
	session *trail.Session
	hunt    *trail.HuntSession
	version int64
}

type StartRequest struct {
	SlotID  string
	Options trail.HuntOptions
}

type StartResponse struct {
	DurationMs int     `json:"duration_ms"`
	Bullets    float64 `json:"bullets"`
}

type UpdateRequest struct {
	SlotID string
	DtMs   int
}

type StateResponse struct {
	ClockMs     int            `json:"clock_ms"`
	RemainingMs int            `json:"remaining_ms"`
	Over        bool           `json:"over"`
	Creatures   []CreatureView `json:"creatures"`
	MeatTotal   float64        `json:"meat_total"`
	ShotsHit    int            `json:"shots_hit"`
	ShotsMiss   int            `json:"shots_miss"`
	Bullets     float64        `json:"bullets"`
}

type CreatureView struct {
	ID    int     `json:"id"`
	Spec  string  `json:"spec"`
	Emoji string  `json:"emoji"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

type ShootRequest struct {
	SlotID string
	X      float64
	Y      float64
}

type ShootResponse struct {
	Hit     bool    `json:"hit"`
	Bullets float64 `json:"bullets"`
}

type EndRequest struct {
	SlotID string
}

type EndResponse struct {
	Result trail.HuntResult `json:"result"`
	Food   float64          `json:"food"`
}

func (u *UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	slotID := strings.TrimSpace(req.SlotID)
	if slotID == "" {
		return StartResponse{}, ErrInvalidRequest
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active == nil {
		u.active = map[string]*activeHunt{}
	}
	if _, ok := u.active[slotID]; ok {
		return StartResponse{}, ErrHuntInProgress
	}

	session, err := u.SessionRepo.GetBySlotID(ctx, slotID)
	if err != nil {
		return StartResponse{}, err
	}
	if len(session.AliveMembers()) == 0 {
		return StartResponse{}, ErrNothingToHunt
	}

	h := u.Engine.NewHuntSession(session, req.Options)
	u.active[slotID] = &activeHunt{session: session, hunt: h, version: session.Version}
	return StartResponse{DurationMs: h.RemainingMs(), Bullets: session.Item(trail.ItemBullets)}, nil
}

func (u *UseCase) Update(ctx context.Context, req UpdateRequest) (StateResponse, error) {
	ah, err := u.get(req.SlotID)
	if err != nil {
		return StateResponse{}, err
	}
	ah.hunt.Update(req.DtMs)
	return u.view(ah), nil
}

func (u *UseCase) Shoot(ctx context.Context, req ShootRequest) (ShootResponse, error) {
	ah, err := u.get(req.SlotID)
	if err != nil {
		return ShootResponse{}, err
	}
	hit := ah.hunt.Shoot(req.X, req.Y)
	return ShootResponse{Hit: hit, Bullets: ah.session.Item(trail.ItemBullets)}, nil
}

// End closes the hunt and commits bullets spent and meat carried to the
// durable session.
func (u *UseCase) End(ctx context.Context, req EndRequest) (EndResponse, error) {
	ah, err := u.get(req.SlotID)
	if err != nil {
		return EndResponse{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var result trail.HuntResult
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		result = ah.hunt.End()
		ah.session.Version = ah.version + 1
		if err := u.SessionRepo.SaveWithVersion(txCtx, ah.session, ah.version); err != nil {
			return err
		}
		return u.Journal.Append(txCtx, ah.session.SlotID, []ports.TrailEvent{{
			Type:       "hunt_ended",
			OccurredAt: nowFn(),
			Payload: map[string]any{
				"meat_total": result.MeatTotal,
				"meat_taken": result.MeatTaken,
				"spoiled":    result.Spoiled,
			},
		}})
	})
	if err != nil {
		// The hunt stays registered so the caller can retry End; the
		// document version must not drift from the row version.
		ah.session.Version = ah.version
		return EndResponse{}, err
	}

	u.mu.Lock()
	delete(u.active, strings.TrimSpace(req.SlotID))
	u.mu.Unlock()

	if u.Metrics != nil {
		u.Metrics.RecordHuntEnded(result.MeatTaken)
	}
	return EndResponse{Result: result, Food: ah.session.Item(trail.ItemFood)}, nil
}

func (u *UseCase) get(slotID string) (*activeHunt, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, ErrInvalidRequest
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	ah, ok := u.active[slotID]
	if !ok {
		return nil, ErrNoActiveHunt
	}
	return ah, nil
}

func (u *UseCase) view(ah *activeHunt) StateResponse {
	creatures := make([]CreatureView, 0, len(ah.hunt.Creatures))
	for _, c := range ah.hunt.Creatures {
		x, y := c.PosAt(ah.hunt.ClockMs())
		creatures = append(creatures, CreatureView{
			ID:    c.ID,
			Spec:  c.Spec.ID,
			Emoji: c.Spec.Emoji,
			X:     x,
			Y:     y,
			W:     c.Spec.BoxW,
			H:     c.Spec.BoxH,
		})
	}
	return StateResponse{
		ClockMs:     ah.hunt.ClockMs(),
		RemainingMs: ah.hunt.RemainingMs(),
		Over:        ah.hunt.Over(),
		Creatures:   creatures,
		MeatTotal:   ah.hunt.MeatTotal,
		ShotsHit:    ah.hunt.ShotsHit,
		ShotsMiss:   ah.hunt.ShotsMiss,
		Bullets:     ah.session.Item(trail.ItemBullets),
	}
}
