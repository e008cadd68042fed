package model

import "fmt"

// Roster describes starting-lineup composition per team.
type Roster struct {
	QB    int `json:"qb" koanf:"qb"`
	RB    int `json:"rb" koanf:"rb"`
	WR    int `json:"wr" koanf:"wr"`
	TE    int `json:"te" koanf:"te"`
	K     int `json:"k" koanf:"k"`
	DST   int `json:"dst" koanf:"dst"`
	Flex  int `json:"flex" koanf:"flex"`
	Bench int `json:"bench" koanf:"bench"`
}

// Requirement returns the dedicated (non-FLEX) starter count for pos.
func (r Roster) Requirement(pos Position) int {
	switch pos {
	case QB:
		return r.QB
	case RB:
		return r.RB
	case WR:
		return r.WR
	case TE:
		return r.TE
	case K:
		return r.K
	case DST:
		return r.DST
	}
	return 0
}

// Requirements returns the dedicated starter counts as a fixed record.
func (r Roster) Requirements() PositionCounts {
	return PositionCounts{QB: r.QB, RB: r.RB, WR: r.WR, TE: r.TE, K: r.K, DST: r.DST}
}

// Starters is the total starting-lineup size including FLEX.
func (r Roster) Starters() int {
	return r.QB + r.RB + r.WR + r.TE + r.K + r.DST + r.Flex
}

// Validate rejects negative slot counts.
func (r Roster) Validate() error {
	for _, v := range []struct {
		name string
		n    int
	}{
		{"qb", r.QB}, {"rb", r.RB}, {"wr", r.WR}, {"te", r.TE},
		{"k", r.K}, {"dst", r.DST}, {"flex", r.Flex}, {"bench", r.Bench},
	} {
		if v.n < 0 {
			return fmt.Errorf("roster slot %s: negative count %d", v.name, v.n)
		}
	}
	return nil
}

// ScoringRules holds per-statistic point values plus roster composition.
type ScoringRules struct {
	PassYD    float64 `json:"pass_yd" koanf:"pass_yd"`
	PassTD    float64 `json:"pass_td" koanf:"pass_td"`
	PassInt   float64 `json:"pass_int" koanf:"pass_int"`
	RushYD    float64 `json:"rush_yd" koanf:"rush_yd"`
	RushTD    float64 `json:"rush_td" koanf:"rush_td"`
	RecYD     float64 `json:"rec_yd" koanf:"rec_yd"`
	RecTD     float64 `json:"rec_td" koanf:"rec_td"`
	PPR       float64 `json:"ppr" koanf:"ppr"`
	TEPremium float64 `json:"te_premium" koanf:"te_premium"`
	Fumble    float64 `json:"fumble" koanf:"fumble"`
	TwoPoint  float64 `json:"two_pt" koanf:"two_pt"`

	Roster Roster `json:"roster" koanf:"roster"`
}

// DefaultScoringRules returns a 12-team half-PPR baseline.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		PassYD:   0.04,
		PassTD:   4.0,
		PassInt:  -2.0,
		RushYD:   0.1,
		RushTD:   6.0,
		RecYD:    0.1,
		RecTD:    6.0,
		PPR:      0.5,
		Fumble:   -2.0,
		TwoPoint: 2.0,
		Roster: Roster{
			QB: 1, RB: 2, WR: 2, TE: 1, K: 1, DST: 1,
			Flex: 1, Bench: 5,
		},
	}
}

// Validate checks the caller contract on rules.
func (r ScoringRules) Validate() error {
	return r.Roster.Validate()
}
