// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/audible/internal/adapters/repository"
)

// pickRequest mirrors the request schema for POST /draft/pick. The
// optional event_id makes retries idempotent.
type pickRequest struct {
	EventID     string `json:"event_id"`
	CandidateID string `json:"candidate_id" validate:"required"`
	Team        string `json:"team"`
}

type pickResponse struct {
	Status    string           `json:"status"`
	Duplicate bool             `json:"duplicate"`
	Pick      *repository.Pick `json:"pick,omitempty"`
}

type stateResponse struct {
	Picks     []repository.Pick `json:"picks"`
	Drafted   map[string]string `json:"drafted"`
	Remaining int               `json:"remaining"`
}

// DraftHandler handles draft mutations and state reads.
type DraftHandler struct {
	deps Dependencies
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps Dependencies) *DraftHandler {
	return &DraftHandler{deps: deps}
}

// HandlePick handles POST /draft/pick requests.
func (h *DraftHandler) HandlePick(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft_pick"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	pick, dup, err := h.deps.ApplyPick(r.Context(), req.EventID, req.CandidateID, req.Team)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownCandidate):
			writeError(w, http.StatusNotFound, "unknown_candidate", WrapKind(op, ErrNotFound, err))
		case errors.Is(err, repository.ErrAlreadyDrafted):
			writeError(w, http.StatusConflict, "already_drafted", WrapKind(op, ErrConflict, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	if dup {
		writeJSON(w, http.StatusOK, pickResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Status: "applied", Pick: &pick})
}

// HandleUndo handles POST /draft/undo requests.
func (h *DraftHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft_undo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	pick, err := h.deps.UndoPick(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrEmptyDraft) {
			writeError(w, http.StatusConflict, "empty_draft", WrapKind(op, ErrConflict, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Status: "undone", Pick: &pick})
}

// HandleClear handles POST /draft/clear requests.
func (h *DraftHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft_clear"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ClearDraft(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Status: "cleared"})
}

// HandleState handles GET /draft/state requests.
func (h *DraftHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.State(r.Context())
	writeJSON(w, http.StatusOK, stateResponse{
		Picks:     snap.Picks,
		Drafted:   snap.Drafted,
		Remaining: len(snap.Pool) - len(snap.Drafted),
	})
}
