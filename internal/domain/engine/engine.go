// Package engine ranks draftable candidates during a live draft. It is a
// pure, synchronous computation: every invocation receives an independent
// snapshot of the pool, roster state, and history, mutates none of it, and
// returns a complete ranked shortlist or a contract-violation error.
package engine

import (
	"context"

	"github.com/okian/audible/internal/domain/model"
)

// defaultCallerTeam is the team label marking the caller's own picks in the
// drafted map and history.
const defaultCallerTeam = "ME"

// Request carries everything one ranking pass needs. All fields are
// read-only views; the engine never mutates them.
type Request struct {
	// Pool is the full candidate pool. Entries present in Drafted are
	// excluded from ranking but still inform the caller's roster summary.
	Pool []model.Candidate

	// Drafted maps candidate id to the team label that drafted it.
	Drafted map[string]string

	Rules    model.ScoringRules
	Context  model.LeagueContext
	Strategy model.StrategyProfile

	// History is the append-only pick log, oldest first. Only the most
	// recent window is consulted.
	History []model.PickEvent

	// OpponentNeeds is a coarse snapshot of remaining starter needs per
	// opposing team, supplied by the caller.
	OpponentNeeds map[string]model.PositionCounts

	// ByeCounts maps bye week to how many players the caller already
	// rosters on it.
	ByeCounts map[int]int

	// Count is the requested shortlist size, clamped to [1, 40].
	Count int

	// Position optionally restricts ranking to a single position.
	Position model.Position
}

// Engine is the suggestion engine. It holds tuning knobs only; all draft
// state arrives with each Request, so a single Engine is safe for
// concurrent use.
type Engine struct {
	runWindow  int
	callerTeam string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRunWindow sets how many trailing picks feed the run-pressure tracker.
func WithRunWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.runWindow = n
		}
	}
}

// WithCallerTeam sets the team label identifying the caller's picks.
func WithCallerTeam(team string) Option {
	return func(e *Engine) {
		if team != "" {
			e.callerTeam = team
		}
	}
}

// New constructs an Engine with default tuning.
func New(opts ...Option) *Engine {
	e := &Engine{
		runWindow:  defaultRunWindow,
		callerTeam: defaultCallerTeam,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// validate enforces the caller contract before any scoring happens.
func (e *Engine) validate(req Request) error {
	if err := req.Context.Validate(); err != nil {
		return contractErr("league context: %v", err)
	}
	if err := req.Rules.Validate(); err != nil {
		return contractErr("scoring rules: %v", err)
	}
	if req.Position != "" && !req.Position.Valid() {
		return contractErr("unknown position filter %q", req.Position)
	}
	seen := make(map[string]struct{}, len(req.Pool))
	for i := range req.Pool {
		c := &req.Pool[i]
		if c.ID == "" {
			return contractErr("candidate at index %d has empty id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return contractErr("duplicate candidate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if !c.Position.Valid() {
			return contractErr("candidate %q has unnormalized position %q", c.ID, c.Position)
		}
	}
	return nil
}

// Rank is the single entry point: deterministic given identical inputs.
// It either returns a complete ranked list or reports a contract violation;
// missing or degenerate data never fails the pass.
func (e *Engine) Rank(ctx context.Context, req Request) ([]model.Suggestion, error) {
	_ = ctx // pure computation; kept for the project-wide signature convention

	if err := e.validate(req); err != nil {
		return nil, err
	}

	// surviving pool, optionally position-filtered
	pool := make([]model.Candidate, 0, len(req.Pool))
	for i := range req.Pool {
		c := req.Pool[i]
		if _, gone := req.Drafted[c.ID]; gone {
			continue
		}
		if req.Position != "" && c.Position != req.Position {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return []model.Suggestion{}, nil
	}

	proj := projectAll(pool, req.Rules)
	groups := groupByPosition(pool, proj)
	needed := neededStarters(groups, req.Rules, req.Context.Teams)
	repl := replacementLevels(groups, needed)
	vorps := computeVORP(pool, proj, repl)

	current, next := overallPicks(req.Context)
	picksGap := max(0, next-current-1)

	pressure := runPressure(req.History, e.runWindow, picksGap)
	rates := recentPickRates(req.History, e.runWindow)

	tiers := computeTiers(pool, groups, req.Context.Round, picksGap, pressure, req.Strategy)

	var oppNeeds model.PositionCounts
	for _, needs := range req.OpponentNeeds {
		for _, pos := range model.Positions {
			if n := needs.Get(pos); n > 0 {
				oppNeeds.Add(pos, n)
			}
		}
	}

	p := &pipeline{
		req:      req,
		pool:     pool,
		proj:     proj,
		vorps:    vorps,
		groups:   groups,
		repl:     repl,
		tiers:    tiers,
		pressure: pressure,
		rates:    rates,
		nextPick: next,
		picksGap: picksGap,
		roster:   callerRoster(req.Pool, req.Drafted, e.callerTeam),
	}
	p.oppNeeds = oppNeeds

	return p.aggregate(), nil
}
