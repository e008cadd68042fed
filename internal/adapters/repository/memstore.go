package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/audible/internal/domain/model"
	"github.com/okian/audible/pkg/metrics"
)

// MemStore is the in-memory Store. A single RWMutex serializes mutations;
// Snapshot copies everything it returns, so readers never observe a write
// in progress and the engine can run lock-free on its copy.
type MemStore struct {
	mu      sync.RWMutex
	pool    []model.Candidate
	byID    map[string]int // candidate id -> pool index
	drafted map[string]string
	history []model.PickEvent
	picks   []Pick
}

// NewMemStore creates an empty draft-state store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		byID:    make(map[string]int),
		drafted: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPool replaces the candidate pool and resets draft progress.
func (s *MemStore) SetPool(_ context.Context, pool []model.Candidate) error {
	byID := make(map[string]int, len(pool))
	for i := range pool {
		if _, dup := byID[pool[i].ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, pool[i].ID)
		}
		byID[pool[i].ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = append([]model.Candidate(nil), pool...)
	s.byID = byID
	s.drafted = make(map[string]string)
	s.history = nil
	s.picks = nil
	metrics.UpdatePoolSize(len(s.pool))
	return nil
}

// ApplyPick marks a candidate drafted and appends it to the pick log.
func (s *MemStore) ApplyPick(_ context.Context, candidateID, team string) (Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[candidateID]
	if !ok {
		return Pick{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, candidateID)
	}
	if by, gone := s.drafted[candidateID]; gone {
		return Pick{}, fmt.Errorf("%w: %q taken by %s", ErrAlreadyDrafted, candidateID, by)
	}

	c := s.pool[idx]
	pick := Pick{
		Overall:   len(s.picks) + 1,
		Candidate: c,
		Team:      team,
	}
	s.drafted[candidateID] = team
	s.history = append(s.history, model.PickEvent{Position: c.Position, Team: team})
	s.picks = append(s.picks, pick)
	metrics.RecordPickApplied()
	return pick, nil
}

// UndoPick reverses the most recent pick.
func (s *MemStore) UndoPick(_ context.Context) (Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.picks) == 0 {
		return Pick{}, ErrEmptyDraft
	}
	last := s.picks[len(s.picks)-1]
	s.picks = s.picks[:len(s.picks)-1]
	s.history = s.history[:len(s.history)-1]
	delete(s.drafted, last.Candidate.ID)
	metrics.RecordPickUndone()
	return last, nil
}

// Clear forgets all picks but keeps the pool.
func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafted = make(map[string]string)
	s.history = nil
	s.picks = nil
	return nil
}

// Snapshot returns a deep copy of the current draft state.
func (s *MemStore) Snapshot(_ context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Pool:    append([]model.Candidate(nil), s.pool...),
		Drafted: make(map[string]string, len(s.drafted)),
		History: append([]model.PickEvent(nil), s.history...),
		Picks:   append([]Pick(nil), s.picks...),
	}
	for id, team := range s.drafted {
		snap.Drafted[id] = team
	}
	return snap
}

// Count returns the number of undrafted candidates remaining.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pool) - len(s.drafted)
}
