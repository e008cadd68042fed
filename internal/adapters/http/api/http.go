// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/audible/internal/adapters/repository"
	service "github.com/okian/audible/internal/app"
	"github.com/okian/audible/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// LoadPool replaces the candidate pool and resets draft progress.
	LoadPool(ctx context.Context, pool []model.Candidate) error

	// Suggest ranks the undrafted pool against the caller's query.
	Suggest(ctx context.Context, q service.Query) ([]model.Suggestion, error)

	// Draft mutations. ApplyPick reports whether the event was a
	// deduplicated replay.
	ApplyPick(ctx context.Context, eventID, candidateID, team string) (repository.Pick, bool, error)
	UndoPick(ctx context.Context) (repository.Pick, error)
	ClearDraft(ctx context.Context) error

	// Read operations expose draft state.
	State(ctx context.Context) repository.Snapshot
	Players(ctx context.Context) []model.Candidate
}

// validate is the shared request validator.
var validate = validator.New() //nolint:gochecknoglobals // stateless validator

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	draftHandler       *DraftHandler
	suggestionsHandler *SuggestionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		playersHandler:     NewPlayersHandler(deps),
		draftHandler:       NewDraftHandler(deps),
		suggestionsHandler: NewSuggestionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/draft/pick", MetricsMiddleware(s.draftHandler.HandlePick, "draft_pick"))
	mux.HandleFunc("/draft/undo", MetricsMiddleware(s.draftHandler.HandleUndo, "draft_undo"))
	mux.HandleFunc("/draft/clear", MetricsMiddleware(s.draftHandler.HandleClear, "draft_clear"))
	mux.HandleFunc("/draft/state", MetricsMiddleware(s.draftHandler.HandleState, "draft_state"))
	mux.HandleFunc("/suggestions", MetricsMiddleware(s.suggestionsHandler.HandleSuggestions, "suggestions"))
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
