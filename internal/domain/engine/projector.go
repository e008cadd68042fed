package engine

import (
	"math"

	"github.com/okian/audible/internal/domain/model"
)

// Role-uncertainty dampers applied on top of the stat projection.
const (
	committeeThreshold = 3
	depthThreshold     = 3
	committeeDamper    = 0.98
	depthDamper        = 0.97
)

// fv dereferences an optional stat; absent means zero contribution, which is
// distinct from the fallback decision below (that looks at the whole line).
func fv(p *float64) float64 {
	if p == nil {
		return 0.0
	}
	return *p
}

// ProjectPoints converts a candidate's per-statistic projections into fantasy
// points under rules. When no per-stat component contributes, the cached
// aggregate projection is used instead. The result is floored at zero and
// damped for committee and depth-chart uncertainty. Pure function.
func ProjectPoints(c model.Candidate, rules model.ScoringRules) float64 {
	s := c.Stats
	pts := fv(s.PassingYards)*rules.PassYD +
		fv(s.PassingTDs)*rules.PassTD +
		fv(s.Interceptions)*rules.PassInt +
		fv(s.RushingYards)*rules.RushYD +
		fv(s.RushingTDs)*rules.RushTD +
		fv(s.ReceivingYards)*rules.RecYD +
		fv(s.ReceivingTDs)*rules.RecTD +
		fv(s.Receptions)*rules.PPR +
		fv(s.FumblesLost)*rules.Fumble +
		fv(s.TwoPointConversions)*rules.TwoPoint

	if c.Position == model.TE && rules.TEPremium != 0 {
		pts += fv(s.Receptions) * rules.TEPremium
	}

	if pts == 0.0 && c.ProjectedPoints != nil {
		pts = *c.ProjectedPoints
	}

	if c.CommitteeSize != nil && *c.CommitteeSize >= committeeThreshold {
		pts *= committeeDamper
	}
	if c.DepthOrder != nil && *c.DepthOrder >= depthThreshold {
		pts *= depthDamper
	}

	return math.Max(0.0, pts)
}

// projectAll scores the whole pool, index-aligned with it.
func projectAll(pool []model.Candidate, rules model.ScoringRules) []float64 {
	out := make([]float64, len(pool))
	for i, c := range pool {
		out[i] = ProjectPoints(c, rules)
	}
	return out
}
