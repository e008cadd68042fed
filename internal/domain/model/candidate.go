package model

// StatLine holds per-statistic season projections. Every field is optional:
// a nil pointer means the upstream feed had no value, which is distinct from
// a projected zero.
type StatLine struct {
	PassingYards        *float64 `json:"passing_yards,omitempty"`
	PassingTDs          *float64 `json:"passing_tds,omitempty"`
	Interceptions       *float64 `json:"interceptions,omitempty"`
	RushingYards        *float64 `json:"rushing_yards,omitempty"`
	RushingTDs          *float64 `json:"rushing_tds,omitempty"`
	Receptions          *float64 `json:"receptions,omitempty"`
	ReceivingYards      *float64 `json:"receiving_yards,omitempty"`
	ReceivingTDs        *float64 `json:"receiving_tds,omitempty"`
	FumblesLost         *float64 `json:"fumbles_lost,omitempty"`
	TwoPointConversions *float64 `json:"two_pt_conversions,omitempty"`
}

// Candidate is one draftable player. ID is immutable; every other field may
// be refreshed between requests but never during a single ranking pass.
type Candidate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Team     string   `json:"team,omitempty"`

	Age      *int `json:"age,omitempty"`
	YearsExp *int `json:"years_exp,omitempty"`
	ByeWeek  *int `json:"bye_week,omitempty"`

	// ADP is the consensus average draft position, when a market exists.
	ADP *float64 `json:"adp,omitempty"`

	// ProjectedPoints caches an upstream aggregate projection, used as a
	// fallback when no per-stat line is available.
	ProjectedPoints *float64 `json:"projected_points,omitempty"`

	// DepthOrder is the depth-chart slot (1 = starter); CommitteeSize is the
	// number of same-position teammates sharing the role.
	DepthOrder    *int `json:"depth_order,omitempty"`
	CommitteeSize *int `json:"committee_size,omitempty"`

	Injury InjuryStatus `json:"injury_status,omitempty"`

	Stats StatLine `json:"stats,omitempty"`
}

// Rookie reports whether the candidate has zero recorded experience. Unknown
// experience is not a rookie signal.
func (c Candidate) Rookie() bool {
	return c.YearsExp != nil && *c.YearsExp == 0
}

// Suggestion is one ranked recommendation: the candidate, its final weighted
// score, the named component contributions behind it, and short
// human-readable reasons.
type Suggestion struct {
	Candidate  Candidate          `json:"candidate"`
	Score      float64            `json:"score"`
	Components map[string]float64 `json:"components"`
	Reasons    []string           `json:"reasons"`
}

// PickEvent is one entry in the append-only draft history: which position
// was taken and by which team.
type PickEvent struct {
	Position Position `json:"position"`
	Team     string   `json:"team"`
}
