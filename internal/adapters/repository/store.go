// Package repository defines the draft-state store interface and errors.
package repository

import (
	"context"

	"github.com/okian/audible/internal/domain/model"
)

// Pick is one applied draft selection.
type Pick struct {
	Overall   int             `json:"overall"`
	Candidate model.Candidate `json:"candidate"`
	Team      string          `json:"team"`
}

// Snapshot is an immutable copy of draft state handed to the engine. The
// store guarantees the engine never shares memory with live state, so
// suggestion reads and pick writes cannot interleave on the same data.
type Snapshot struct {
	Pool    []model.Candidate
	Drafted map[string]string
	History []model.PickEvent
	Picks   []Pick
}

// Store provides serialized access to the shared draft state.
type Store interface {
	// SetPool replaces the candidate pool and resets draft progress.
	// Fails with ErrDuplicateID when the pool repeats a candidate id.
	SetPool(ctx context.Context, pool []model.Candidate) error

	// ApplyPick marks a candidate as drafted by team and appends to the
	// pick log. Fails with ErrUnknownCandidate or ErrAlreadyDrafted.
	ApplyPick(ctx context.Context, candidateID, team string) (Pick, error)

	// UndoPick reverses the most recent pick. Fails with ErrEmptyDraft
	// when nothing has been picked.
	UndoPick(ctx context.Context) (Pick, error)

	// Clear forgets all picks but keeps the pool.
	Clear(ctx context.Context) error

	// Snapshot returns a deep copy of the current draft state.
	Snapshot(ctx context.Context) Snapshot

	// Count returns the number of undrafted candidates remaining.
	Count(ctx context.Context) int
}
