package engine

import (
	"math"

	"github.com/okian/audible/internal/domain/model"
)

// Tiering constants. The base drop is the position-specific relative point
// cliff that opens a new tier before any modifier is applied.
const (
	localGapLookahead = 3
	localGapSpread    = 0.02

	neighborhoodSteep = 0.85
	neighborhoodFlat  = 1.15

	uncertaintyBase = 0.9
	uncertaintySpan = 0.15
	uncertaintyCap  = 1.05

	supplyPlenty          = 1.15
	supplyScarce          = 0.9
	supplyPlentyThreshold = 8
	supplyScarceThreshold = 4

	timingSplit        = 0.95
	timingHold         = 1.05
	timingLongGap      = 10
	timingShortGap     = 2
	timingRunActive    = 0.2
	timingRunQuiet     = 0.05
	strategyTENarrow   = 0.95
	strategyRBWiden    = 1.05
	strategyTERounds   = 4
	strategyRBRounds   = 3
	defaultBaseDrop    = 0.1
	defaultTierMinSize = 2
)

var baseDrop = map[model.Position]float64{
	model.RB:  0.075,
	model.WR:  0.075,
	model.TE:  0.10,
	model.QB:  0.12,
	model.DST: 0.15,
	model.K:   0.15,
}

// tierMinSize guards against over-fragmenting tiers on noisy small samples:
// a new tier cannot open until the current one reaches this size.
var tierMinSize = map[model.Position]int{
	model.RB:  3,
	model.WR:  3,
	model.TE:  3,
	model.QB:  2,
	model.DST: 2,
	model.K:   2,
}

// tierHead records where a tier starts in its position's rank ordering.
type tierHead struct {
	index  int
	points float64
}

// tiering is the engine's scarcity partition: tier id per candidate plus the
// per-position rank orderings the aggregator walks for expected-next-best
// lookups.
type tiering struct {
	tierOf map[string]int                     // candidate id -> tier (1-based)
	heads  map[model.Position]map[int]tierHead // position -> tier -> head
}

// roleUncertainty scores how murky a candidate's role is, in [0, 1]:
// committee and depth-chart crowding, zero experience, and an adverse injury
// designation each contribute.
func roleUncertainty(c model.Candidate) float64 {
	u := 0.0
	if c.CommitteeSize != nil && *c.CommitteeSize >= committeeThreshold {
		u += 0.5
	}
	if c.DepthOrder != nil && *c.DepthOrder >= depthThreshold {
		u += 0.5
	}
	if c.Rookie() {
		u += 0.2
	}
	if c.Injury.Adverse() {
		u += 0.5
	}
	return math.Min(1.0, u)
}

// localGapStats averages the next n relative point drops after rank i and
// reports their range, a cheap proxy for how steep and how variable the
// local neighborhood is.
func localGapStats(pts []float64, i, n int) (avg, rng float64) {
	end := i + n
	if end > len(pts)-1 {
		end = len(pts) - 1
	}
	gaps := make([]float64, 0, n)
	for k := i; k < end; k++ {
		if pts[k] <= epsilon {
			continue
		}
		gaps = append(gaps, (pts[k]-pts[k+1])/pts[k])
	}
	if len(gaps) == 0 {
		return 0.0, 0.0
	}
	lo, hi := gaps[0], gaps[0]
	for _, g := range gaps {
		avg += g
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}
	avg /= float64(len(gaps))
	if len(gaps) >= 2 {
		rng = hi - lo
	}
	return avg, rng
}

// computeTiers walks each position's points-descending ordering and opens a
// new tier whenever the relative drop to the next rank meets an adaptive
// tolerance built from the position's base drop and five modifiers:
// neighborhood steepness, the candidate's own role uncertainty, remaining
// supply, draft timing, and the strategy archetype.
func computeTiers(
	pool []model.Candidate,
	groups map[model.Position]*positionGroup,
	round, picksGap int,
	pressure map[model.Position]float64,
	strategy model.StrategyProfile,
) *tiering {
	t := &tiering{
		tierOf: make(map[string]int, len(pool)),
		heads:  make(map[model.Position]map[int]tierHead, len(groups)),
	}

	for _, pos := range model.Positions {
		g, ok := groups[pos]
		if !ok || len(g.idx) == 0 {
			continue
		}
		base, ok := baseDrop[pos]
		if !ok {
			base = defaultBaseDrop
		}
		minSize, ok := tierMinSize[pos]
		if !ok {
			minSize = defaultTierMinSize
		}

		tier := 1
		t.heads[pos] = map[int]tierHead{tier: {index: 0, points: g.pts[0]}}
		t.tierOf[pool[g.idx[0]].ID] = tier

		startIdx := 0
		for i := 0; i < len(g.idx)-1; i++ {
			avgGap, spread := localGapStats(g.pts, i, localGapLookahead)

			neigh := 1.0
			switch {
			case avgGap > base && spread > localGapSpread:
				neigh = neighborhoodSteep
			case avgGap < base/2:
				neigh = neighborhoodFlat
			}

			unc := uncertaintyBase + uncertaintySpan*roleUncertainty(pool[g.idx[i]])
			unc = math.Max(uncertaintyBase, math.Min(uncertaintyCap, unc))

			remaining := len(g.idx) - (i + 1)
			supply := 1.0
			switch {
			case remaining > supplyPlentyThreshold:
				supply = supplyPlenty
			case remaining <= supplyScarceThreshold:
				supply = supplyScarce
			}

			runp := pressure[pos]
			timing := 1.0
			switch {
			case picksGap >= timingLongGap && runp > timingRunActive:
				timing = timingSplit
			case picksGap <= timingShortGap && runp < timingRunQuiet:
				timing = timingHold
			}

			strat := 1.0
			if strategy.Archetype == model.EliteTE && pos == model.TE && round <= strategyTERounds {
				strat = strategyTENarrow
			}
			if strategy.Archetype == model.ZeroRB && pos == model.RB && round <= strategyRBRounds {
				strat = strategyRBWiden
			}

			tau := base * neigh * unc * supply * timing * strat

			gap := 0.0
			if g.pts[i] > epsilon {
				gap = (g.pts[i] - g.pts[i+1]) / g.pts[i]
			}

			if gap >= tau && (i-startIdx+1) >= minSize {
				tier++
				t.heads[pos][tier] = tierHead{index: i + 1, points: g.pts[i+1]}
				startIdx = i + 1
			}
			t.tierOf[pool[g.idx[i+1]].ID] = tier
		}
	}
	return t
}
