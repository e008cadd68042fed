// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/audible/internal/app"
	"github.com/okian/audible/internal/domain/engine"
	"github.com/okian/audible/internal/domain/model"
)

// suggestRequest mirrors the request schema for POST /suggestions.
// League inputs are optional; absent sections fall back to defaults.
type suggestRequest struct {
	Rules         *model.ScoringRules              `json:"rules"`
	Context       *model.LeagueContext             `json:"context"`
	Strategy      *model.StrategyProfile           `json:"strategy"`
	OpponentNeeds map[string]model.PositionCounts  `json:"opponent_needs"`
	ByeCounts     map[int]int                      `json:"bye_counts"`
	Count         int                              `json:"count" validate:"omitempty,min=1,max=100"`
	Position      string                           `json:"position"`
}

type suggestResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

// SuggestionsHandler handles suggestion requests.
type SuggestionsHandler struct {
	deps Dependencies
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(deps Dependencies) *SuggestionsHandler {
	return &SuggestionsHandler{deps: deps}
}

// HandleSuggestions handles POST /suggestions requests.
func (h *SuggestionsHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "api.suggestions"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	q, err := req.toQuery()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	suggestions, err := h.deps.Suggest(r.Context(), q)
	if err != nil {
		if errors.Is(err, engine.ErrContract) {
			writeError(w, http.StatusBadRequest, "contract_violation", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

func (r suggestRequest) toQuery() (service.Query, error) {
	q := service.Query{
		Rules:         model.DefaultScoringRules(),
		Context:       model.DefaultLeagueContext(),
		Strategy:      model.DefaultStrategy(),
		OpponentNeeds: r.OpponentNeeds,
		ByeCounts:     r.ByeCounts,
		Count:         r.Count,
	}
	if r.Rules != nil {
		q.Rules = *r.Rules
	}
	if r.Context != nil {
		q.Context = *r.Context
	}
	if r.Strategy != nil {
		q.Strategy = *r.Strategy
	}
	if r.Position != "" {
		pos, ok := model.ParsePosition(r.Position)
		if !ok {
			return service.Query{}, fmt.Errorf("unknown position %q", r.Position)
		}
		q.Position = pos
	}
	return q, nil
}
