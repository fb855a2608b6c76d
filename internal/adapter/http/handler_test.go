package httpadapter

import (
	"encoding/json"
	"testing"

	"wagontrail/internal/app/event"
	"wagontrail/internal/app/hazard"
	"wagontrail/internal/app/hunt"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/app/turn"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestRequireSlotID_FromHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(slotIDHeader, "slot-1")

	slotID, err := requireSlotID(ctx)
	if err != nil {
		t.Fatalf("requireSlotID error: %v", err)
	}
	if slotID != "slot-1" {
		t.Fatalf("unexpected slot id: %q", slotID)
	}
}

func TestRequireSlotID_Missing(t *testing.T) {
	ctx := &app.RequestContext{}

	_, err := requireSlotID(ctx)
	if err != ErrMissingSlotIDHeader {
		t.Fatalf("expected ErrMissingSlotIDHeader, got %v", err)
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body["error"]["code"]
}

func TestWriteError_GameOver(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, turn.ErrGameOver)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "game_over"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_NotFound(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Conflict(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_BadRequestFamily(t *testing.T) {
	for _, err := range []error{
		turn.ErrInvalidRequest,
		event.ErrInvalidRequest,
		hazard.ErrInvalidRequest,
		hunt.ErrInvalidRequest,
	} {
		ctx := &app.RequestContext{}
		writeError(ctx, err)
		if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
			t.Fatalf("%v: status mismatch: got=%d want=%d", err, got, want)
		}
		if got, want := errorCode(t, ctx), "bad_request"; got != want {
			t.Fatalf("%v: error code mismatch: got=%q want=%q", err, got, want)
		}
	}
}

func TestWriteError_HazardSentinels(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, hazard.ErrNoSuchLandmark)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	writeError(ctx, hazard.ErrNotBlocking)
	if got, want := errorCode(t, ctx), "not_blocking"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Unknown(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, errDummy)

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "internal_error"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

var errDummy = json.Unmarshal([]byte("{"), &struct{}{})

func TestDecodeJSON_EmptyBodyIsNoop(t *testing.T) {
	ctx := &app.RequestContext{}
	var out turnRequest
	if err := decodeJSON(ctx, &out); err != nil {
		t.Fatalf("decodeJSON on empty body: %v", err)
	}
	if out.Action != "" {
		t.Fatalf("expected zero-value request, got %+v", out)
	}
}
