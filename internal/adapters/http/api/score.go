package api

import (
	"context"
	"net/http"

	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/internal/domain/types"
)

// ScoreDependencies exposes the scorer's read side.
type ScoreDependencies interface {
	// Classify evaluates a tap without folding it into the tally.
	Classify(ctx context.Context, t *model.Tap) handedness.Decision
	Tally(ctx context.Context) handedness.Tally
}

// ScoreHandler handles score reads.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleGetScore handles GET /score requests.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, types.ScoreFromTally(h.deps.Tally(r.Context())))
}

// ClassifyHandler runs the filter chain as a dry run.
type ClassifyHandler struct {
	deps ScoreDependencies
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(deps ScoreDependencies) *ClassifyHandler {
	return &ClassifyHandler{deps: deps}
}

// HandleClassify handles POST /classify requests.
func (h *ClassifyHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	req, err := decodeTap(w, r)
	if err != nil {
		writeKindError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	tap := req.tap()
	writeJSON(w, http.StatusOK, types.DecisionFrom(h.deps.Classify(r.Context(), &tap)))
}
