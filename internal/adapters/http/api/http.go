// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TapDependencies
	ScoreDependencies
}

// Score mirrors the read shape of the tally.
type Score = types.Score

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	tapsHandler     *TapsHandler
	classifyHandler *ClassifyHandler
	scoreHandler    *ScoreHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		tapsHandler:     NewTapsHandler(deps),
		classifyHandler: NewClassifyHandler(deps),
		scoreHandler:    NewScoreHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/taps", MetricsMiddleware(s.tapsHandler.HandlePostTap, "taps"))
	mux.HandleFunc("/classify", MetricsMiddleware(s.classifyHandler.HandleClassify, "classify"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score"))
}

// tapRequest is the body of POST /taps and POST /classify.
type tapRequest struct {
	EventID string         `json:"event_id"`
	ClientX float64        `json:"client_x"`
	ClientY float64        `json:"client_y"`
	Target  *model.Element `json:"target"`
	Signals model.Signals  `json:"signals"`
}

func (t *tapRequest) validate() error {
	switch {
	case t.Target == nil:
		return errors.New("missing target")
	case strings.TrimSpace(t.Target.Tag) == "":
		return errors.New("missing target.tag")
	case t.Signals.MaxTouchPoints < 0 || t.Signals.MsMaxTouchPoints < 0:
		return errors.New("touch points must not be negative")
	}
	return nil
}

func (t *tapRequest) tap() model.Tap {
	return model.Tap{
		EventID: t.EventID,
		ClientX: t.ClientX,
		ClientY: t.ClientY,
		Target:  *t.Target,
		Signals: t.Signals,
	}
}

// maxTapBody caps a tap request body, matching the replay line limit.
const maxTapBody = 1 << 20

func decodeTap(w http.ResponseWriter, r *http.Request) (*tapRequest, error) {
	var req tapRequest
	body := http.MaxBytesReader(w, r.Body, maxTapBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// errorCode maps an API error kind to its wire code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeKindError(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	writeError(w, status, code, err)
}
