package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"wagontrail/internal/app/event"
	"wagontrail/internal/app/hazard"
	"wagontrail/internal/app/hunt"
	"wagontrail/internal/app/newgame"
	"wagontrail/internal/app/observe"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/app/replay"
	"wagontrail/internal/app/turn"
	"wagontrail/internal/domain/trail"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const slotIDHeader = "X-Slot-ID"

type Handler struct {
	NewGameUC newgame.UseCase
	ObserveUC observe.UseCase
	TurnUC    turn.UseCase
	EventUC   *event.UseCase
	HazardUC  hazard.UseCase
	HuntUC    *hunt.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/trail")
	api.POST("/new", h.newGame)
	api.POST("/observe", h.observe)
	api.POST("/turn", h.turn)
	api.POST("/event/trigger", h.eventTrigger)
	api.POST("/event/stage", h.eventStage)
	api.POST("/event/choose", h.eventChoose)
	api.POST("/hazard/state", h.hazardState)
	api.POST("/hazard/methods", h.hazardMethods)
	api.POST("/hazard/attempt", h.hazardAttempt)
	api.POST("/hunt/start", h.huntStart)
	api.POST("/hunt/update", h.huntUpdate)
	api.POST("/hunt/shoot", h.huntShoot)
	api.POST("/hunt/end", h.huntEnd)
	api.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type newGameRequest struct {
	Seed  uint32                 `json:"seed,omitempty"`
	Party []trail.StartingMember `json:"party,omitempty"`
}

type observeRequest struct {
	LogTail int `json:"log_tail,omitempty"`
}

type turnRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Action         string `json:"action"`
	Pace           string `json:"pace,omitempty"`
	Rations        string `json:"rations,omitempty"`
}

type chooseRequest struct {
	ChoiceID string `json:"choice_id"`
}

type hazardStateRequest struct {
	LandmarkID string `json:"landmark_id"`
}

type hazardAttemptRequest struct {
	LandmarkID string `json:"landmark_id"`
	MethodID   string `json:"method_id"`
}

type huntStartRequest struct {
	Options trail.HuntOptions `json:"options,omitempty"`
}

type huntUpdateRequest struct {
	DtMs int `json:"dt_ms"`
}

type huntShootRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (h Handler) newGame(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body newGameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.NewGameUC.Execute(c, newgame.Request{
		SlotID: slotID,
		Seed:   body.Seed,
		Party:  body.Party,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body observeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{SlotID: slotID, LogTail: body.LogTail})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) turn(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body turnRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.TurnUC.Execute(c, turn.Request{
		SlotID:         slotID,
		IdempotencyKey: body.IdempotencyKey,
		Action:         body.Action,
		Pace:           body.Pace,
		Rations:        body.Rations,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) eventTrigger(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.EventUC.Trigger(c, event.TriggerRequest{SlotID: slotID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) eventStage(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.EventUC.Stage(c, event.StageRequest{SlotID: slotID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) eventChoose(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body chooseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.EventUC.Choose(c, event.ChooseRequest{SlotID: slotID, ChoiceID: body.ChoiceID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) hazardState(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body hazardStateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HazardUC.State(c, hazard.StateRequest{SlotID: slotID, LandmarkID: body.LandmarkID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

// hazardMethods is the menu-only view of hazardState for clients that
// already hold the working copy.
func (h Handler) hazardMethods(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body hazardStateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HazardUC.State(c, hazard.StateRequest{SlotID: slotID, LandmarkID: body.LandmarkID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"methods": resp.Methods})
}

func (h Handler) hazardAttempt(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body hazardAttemptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HazardUC.Attempt(c, hazard.AttemptRequest{
		SlotID:     slotID,
		LandmarkID: body.LandmarkID,
		MethodID:   body.MethodID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) huntStart(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body huntStartRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HuntUC.Start(c, hunt.StartRequest{SlotID: slotID, Options: body.Options})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) huntUpdate(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body huntUpdateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HuntUC.Update(c, hunt.UpdateRequest{SlotID: slotID, DtMs: body.DtMs})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) huntShoot(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body huntShootRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.HuntUC.Shoot(c, hunt.ShootRequest{SlotID: slotID, X: body.X, Y: body.Y})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) huntEnd(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.HuntUC.End(c, hunt.EndRequest{SlotID: slotID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	slotID, err := requireSlotID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SlotID:       slotID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingSlotIDHeader = errors.New("missing x-slot-id header")

func requireSlotID(ctx *app.RequestContext) (string, error) {
	slotID := strings.TrimSpace(string(ctx.GetHeader(slotIDHeader)))
	if slotID == "" {
		return "", ErrMissingSlotIDHeader
	}
	return slotID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSlotIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_slot_id", err.Error())
	case errors.Is(err, turn.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error())
	case errors.Is(err, event.ErrNoActiveEvent):
		writeErrorBody(ctx, consts.StatusConflict, "no_active_event", err.Error())
	case errors.Is(err, hazard.ErrNoSuchLandmark):
		writeErrorBody(ctx, consts.StatusNotFound, "no_such_landmark", err.Error())
	case errors.Is(err, hazard.ErrNotBlocking):
		writeErrorBody(ctx, consts.StatusConflict, "not_blocking", err.Error())
	case errors.Is(err, hunt.ErrHuntInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "hunt_in_progress", err.Error())
	case errors.Is(err, hunt.ErrNoActiveHunt):
		writeErrorBody(ctx, consts.StatusConflict, "no_active_hunt", err.Error())
	case errors.Is(err, hunt.ErrNothingToHunt):
		writeErrorBody(ctx, consts.StatusConflict, "nothing_to_hunt", err.Error())
	case errors.Is(err, newgame.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, event.ErrInvalidRequest),
		errors.Is(err, hazard.ErrInvalidRequest),
		errors.Is(err, hunt.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
