package model

import "fmt"

// LeagueContext locates the caller within the live draft.
type LeagueContext struct {
	Teams       int  `json:"teams" koanf:"teams"`
	Snake       bool `json:"snake" koanf:"snake"`
	Round       int  `json:"round" koanf:"round"`
	PickSlot    int  `json:"pick_slot" koanf:"pick_slot"`
	TotalRounds int  `json:"total_rounds" koanf:"total_rounds"`

	// KDSTGateRound is the round at which kickers and defenses become
	// eligible for suggestion.
	KDSTGateRound int `json:"kdst_gate_round" koanf:"kdst_gate_round"`
}

// DefaultLeagueContext returns a 12-team snake draft at the first pick.
func DefaultLeagueContext() LeagueContext {
	return LeagueContext{
		Teams:         12,
		Snake:         true,
		Round:         1,
		PickSlot:      1,
		TotalRounds:   16,
		KDSTGateRound: 12,
	}
}

// Validate checks the caller contract on league shape.
func (c LeagueContext) Validate() error {
	if c.Teams <= 0 {
		return fmt.Errorf("teams must be positive, got %d", c.Teams)
	}
	if c.Round <= 0 {
		return fmt.Errorf("round must be positive, got %d", c.Round)
	}
	if c.PickSlot <= 0 || c.PickSlot > c.Teams {
		return fmt.Errorf("pick_slot %d out of range for %d teams", c.PickSlot, c.Teams)
	}
	if c.TotalRounds <= 0 {
		return fmt.Errorf("total_rounds must be positive, got %d", c.TotalRounds)
	}
	return nil
}

// Archetype tags a drafting strategy profile.
type Archetype string

const (
	Balanced Archetype = "Balanced"
	ZeroRB   Archetype = "ZeroRB"
	HeroRB   Archetype = "HeroRB"
	AnchorWR Archetype = "AnchorWR"
	EliteTE  Archetype = "EliteTE"
	LateQB   Archetype = "LateQB"
)

// RiskPosture tunes how strongly risk signals weigh on the final score.
type RiskPosture string

const (
	RiskConservative RiskPosture = "conservative"
	RiskBalanced     RiskPosture = "balanced"
	RiskAggressive   RiskPosture = "aggressive"
)

// StrategyProfile perturbs specific signal weights in the engine.
type StrategyProfile struct {
	Archetype Archetype   `json:"archetype" koanf:"archetype"`
	Risk      RiskPosture `json:"risk" koanf:"risk"`
}

// DefaultStrategy is the neutral profile.
func DefaultStrategy() StrategyProfile {
	return StrategyProfile{Archetype: Balanced, Risk: RiskBalanced}
}
