package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/dhand/internal/domain/model"
)

// TapDependencies defines what tap ingestion needs.
type TapDependencies interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	// Enqueue pushes a tap for async scoring. Returns false on backpressure.
	Enqueue(ctx context.Context, t model.Tap) bool
}

// TapsHandler handles tap ingestion.
type TapsHandler struct {
	deps TapDependencies
	now  func() time.Time
}

// NewTapsHandler creates a new taps handler.
func NewTapsHandler(deps TapDependencies) *TapsHandler {
	return &TapsHandler{deps: deps, now: time.Now}
}

// HandlePostTap handles POST /taps requests.
func (h *TapsHandler) HandlePostTap(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_tap"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	req, err := decodeTap(w, r)
	if err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.EventID) == "" {
		req.EventID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: req.EventID, Duplicate: true})
		return
	}

	tap := req.tap()
	tap.ReceivedAt = h.now()
	if ok := h.deps.Enqueue(r.Context(), tap); !ok {
		// Rollback the "seen" status so the client can retry.
		h.deps.Unrecord(r.Context(), req.EventID)
		writeKindError(w, NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EventID: req.EventID})
}
