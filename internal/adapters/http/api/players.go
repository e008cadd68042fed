// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/audible/internal/adapters/repository"
	"github.com/okian/audible/internal/domain/model"
)

// loadPoolRequest mirrors the request schema for PUT /players.
type loadPoolRequest struct {
	Players []model.Candidate `json:"players" validate:"required,min=1"`
}

type loadPoolResponse struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

// PlayersHandler handles candidate pool reads and loads.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandlePlayers handles GET and PUT /players requests. GET lists the
// full pool, drafted entries included; PUT replaces it and resets the
// draft.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPut, http.MethodPost:
		h.handleLoad(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	players := h.deps.Players(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (h *PlayersHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	const op = "api.load_players"
	var req loadPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.LoadPool(r.Context(), req.Players); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			writeError(w, http.StatusBadRequest, "duplicate_id", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, loadPoolResponse{Status: "loaded", Players: len(req.Players)})
}
