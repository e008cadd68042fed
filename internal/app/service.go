// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/audible/internal/adapters/repository"
	"github.com/okian/audible/internal/domain/dedupe"
	"github.com/okian/audible/internal/domain/engine"
	"github.com/okian/audible/internal/domain/model"
	"github.com/okian/audible/pkg/logger"
	"github.com/okian/audible/pkg/metrics"
)

// Query carries the league-specific inputs for one suggestion request.
// Draft state (pool, drafted set, pick history) always comes from the
// store; the caller supplies rules, context, and preferences.
type Query struct {
	Rules         model.ScoringRules
	Context       model.LeagueContext
	Strategy      model.StrategyProfile
	OpponentNeeds map[string]model.PositionCounts
	ByeCounts     map[int]int
	Count         int
	Position      model.Position
}

// Service implements the API dependencies for the draft assistant.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	engine  *engine.Engine

	// Configuration
	dedupeSize     int
	poolCapacity   int
	runWindow      int
	maxSuggestions int
	callerTeam     string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDedupeSize sets the size of the pick-event deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithPoolCapacity pre-sizes the candidate pool store.
func WithPoolCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.poolCapacity = n
		}
	}
}

// WithRunWindow sets how many recent picks feed run-pressure detection.
func WithRunWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.runWindow = n
		}
	}
}

// WithMaxSuggestions caps the shortlist size returned by Suggest.
func WithMaxSuggestions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// WithCallerTeam labels the roster the engine optimizes for.
func WithCallerTeam(team string) Option {
	return func(s *Service) {
		if team != "" {
			s.callerTeam = team
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:     4096,
		poolCapacity:   512,
		runWindow:      10,
		maxSuggestions: 40,
		callerTeam:     "ME",
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting draft service...")

	s.store = repository.NewMemStore(ctx,
		repository.WithPoolCapacity(s.poolCapacity),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.engine = engine.New(
		engine.WithRunWindow(s.runWindow),
		engine.WithCallerTeam(s.callerTeam),
	)

	s.started = true
	s.logger.Info(ctx, "draft service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("runWindow", s.runWindow),
		logger.Int("maxSuggestions", s.maxSuggestions),
		logger.String("callerTeam", s.callerTeam),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping draft service...")
	s.started = false
	s.logger.Info(context.Background(), "draft service stopped")
}

// LoadPool replaces the candidate pool and resets draft progress.
func (s *Service) LoadPool(ctx context.Context, pool []model.Candidate) error {
	if err := s.store.SetPool(ctx, pool); err != nil {
		s.logger.Warn(ctx, "pool load rejected", logger.Error(err))
		return err
	}

	s.logger.Info(ctx, "candidate pool loaded", logger.Int("candidates", len(pool)))
	return nil
}

// Suggest ranks the undrafted pool against the caller's query.
func (s *Service) Suggest(ctx context.Context, q Query) ([]model.Suggestion, error) {
	start := time.Now()
	metrics.RecordSuggestionRequest()

	snap := s.store.Snapshot(ctx)

	count := q.Count
	if count > s.maxSuggestions {
		count = s.maxSuggestions
	}

	req := engine.Request{
		Pool:          snap.Pool,
		Drafted:       snap.Drafted,
		History:       snap.History,
		Rules:         q.Rules,
		Context:       q.Context,
		Strategy:      q.Strategy,
		OpponentNeeds: q.OpponentNeeds,
		ByeCounts:     q.ByeCounts,
		Count:         count,
		Position:      q.Position,
	}

	suggestions, err := s.engine.Rank(ctx, req)
	if err != nil {
		metrics.RecordSuggestionError()
		s.logger.Warn(ctx, "suggestion request rejected", logger.Error(err))
		return nil, err
	}

	metrics.UpdateSuggestionPoolSize(len(snap.Pool) - len(snap.Drafted))
	metrics.RecordSuggestionLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	s.logger.Debug(ctx, "suggestions ranked",
		logger.Int("returned", len(suggestions)),
		logger.Int("round", q.Context.Round),
	)
	return suggestions, nil
}

// ApplyPick records a draft pick. The eventID makes retries idempotent:
// a replayed id is acknowledged without mutating state. An empty eventID
// gets a generated one, so the pick is applied exactly once but cannot
// be replayed. Returns the applied pick and whether it was a duplicate.
func (s *Service) ApplyPick(ctx context.Context, eventID, candidateID, team string) (repository.Pick, bool, error) {
	if eventID == "" {
		eventID = uuid.NewString()
	}
	if team == "" {
		team = s.callerTeam
	}

	if s.deduper.SeenAndRecord(ctx, eventID) {
		metrics.RecordPickDuplicate()
		s.logger.Debug(ctx, "duplicate pick event acknowledged",
			logger.String("eventID", eventID),
			logger.String("candidateID", candidateID),
		)
		return repository.Pick{}, true, nil
	}

	pick, err := s.store.ApplyPick(ctx, candidateID, team)
	if err != nil {
		// Let the caller retry with the same event id.
		s.deduper.Unrecord(ctx, eventID)
		metrics.RecordPickRejected()
		s.logger.Warn(ctx, "pick rejected",
			logger.String("candidateID", candidateID),
			logger.Error(err),
		)
		return repository.Pick{}, false, err
	}

	s.logger.Info(ctx, "pick applied",
		logger.Int("overall", pick.Overall),
		logger.String("candidateID", pick.Candidate.ID),
		logger.String("team", pick.Team),
	)
	return pick, false, nil
}

// UndoPick reverses the most recent pick.
func (s *Service) UndoPick(ctx context.Context) (repository.Pick, error) {
	pick, err := s.store.UndoPick(ctx)
	if err != nil {
		s.logger.Warn(ctx, "undo rejected", logger.Error(err))
		return repository.Pick{}, err
	}

	s.logger.Info(ctx, "pick undone",
		logger.Int("overall", pick.Overall),
		logger.String("candidateID", pick.Candidate.ID),
	)
	return pick, nil
}

// ClearDraft resets all draft progress while keeping the pool.
func (s *Service) ClearDraft(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "draft cleared")
	return nil
}

// State returns a deep copy of the current draft state.
func (s *Service) State(ctx context.Context) repository.Snapshot {
	return s.store.Snapshot(ctx)
}

// Players returns the full candidate pool, drafted entries included.
func (s *Service) Players(ctx context.Context) []model.Candidate {
	return s.store.Snapshot(ctx).Pool
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"dedupeSize":     s.dedupeSize,
		"runWindow":      s.runWindow,
		"maxSuggestions": s.maxSuggestions,
		"callerTeam":     s.callerTeam,
	}

	if s.started {
		snap := s.store.Snapshot(ctx)
		stats["poolSize"] = len(snap.Pool)
		stats["drafted"] = len(snap.Drafted)
		stats["remaining"] = s.store.Count(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
	}

	return stats
}
