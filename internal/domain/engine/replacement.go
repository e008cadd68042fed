package engine

import (
	"sort"

	"github.com/okian/audible/internal/domain/model"
)

// replacementWindow is the number of ranks averaged around the needed index
// to smooth the replacement baseline.
const replacementWindow = 3

// positionGroup holds one position's candidates in points-descending order.
type positionGroup struct {
	idx []int     // pool indexes, best first
	pts []float64 // projected points aligned with idx
}

// groupByPosition partitions the pool by position and ranks each group by
// projected points, ties broken by candidate id so ordering is reproducible
// under pool reordering.
func groupByPosition(pool []model.Candidate, proj []float64) map[model.Position]*positionGroup {
	groups := make(map[model.Position]*positionGroup, len(model.Positions))
	for i := range pool {
		pos := pool[i].Position
		g, ok := groups[pos]
		if !ok {
			g = &positionGroup{}
			groups[pos] = g
		}
		g.idx = append(g.idx, i)
	}
	for _, g := range groups {
		sort.Slice(g.idx, func(a, b int) bool {
			ia, ib := g.idx[a], g.idx[b]
			if proj[ia] != proj[ib] {
				return proj[ia] > proj[ib]
			}
			return pool[ia].ID < pool[ib].ID
		})
		g.pts = make([]float64, len(g.idx))
		for k, i := range g.idx {
			g.pts[k] = proj[i]
		}
	}
	return groups
}

// rankOf returns the rank of pool index i within the group, or 0 if absent.
func (g *positionGroup) rankOf(i int) int {
	for k, idx := range g.idx {
		if idx == i {
			return k
		}
	}
	return 0
}

// neededStarters computes how many starter-caliber players each position
// consumes league-wide: dedicated requirements times teams, plus FLEX slots
// allocated one at a time to whichever of RB/WR/TE offers the highest
// marginal projected value at its current claim pointer.
func neededStarters(groups map[model.Position]*positionGroup, rules model.ScoringRules, teams int) model.PositionCounts {
	var needed model.PositionCounts
	req := rules.Roster.Requirements()
	for _, pos := range model.Positions {
		n := req.Get(pos) * teams
		if n > 0 {
			needed.Add(pos, n)
		}
	}

	flexSlots := rules.Roster.Flex * teams
	if flexSlots < 0 {
		flexSlots = 0
	}
	ptr := map[model.Position]int{}
	for _, pos := range model.FlexPositions {
		ptr[pos] = needed.Get(pos)
	}
	for s := 0; s < flexSlots; s++ {
		best := model.FlexPositions[0]
		bestVal := -1.0
		for _, pos := range model.FlexPositions {
			val := 0.0
			if g, ok := groups[pos]; ok && ptr[pos] < len(g.pts) {
				val = g.pts[ptr[pos]]
			}
			// strict > keeps the RB→WR→TE scan order on ties
			if val > bestVal {
				best, bestVal = pos, val
			}
		}
		needed.Add(best, 1)
		ptr[best]++
	}
	return needed
}

// replacementLevels derives the per-position replacement baseline: the mean
// of a replacementWindow-wide slice starting at the needed index, clamped to
// the available range. Positions with no candidates get zero.
func replacementLevels(groups map[model.Position]*positionGroup, needed model.PositionCounts) map[model.Position]float64 {
	repl := make(map[model.Position]float64, len(model.Positions))
	for _, pos := range model.Positions {
		g, ok := groups[pos]
		if !ok || len(g.pts) == 0 {
			repl[pos] = 0.0
			continue
		}
		idx := needed.Get(pos) - 1
		if idx < 0 {
			idx = 0
		}
		if idx > len(g.pts)-1 {
			idx = len(g.pts) - 1
		}
		end := idx + replacementWindow
		if end > len(g.pts) {
			end = len(g.pts)
		}
		window := g.pts[idx:end]
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		repl[pos] = sum / float64(len(window))
	}
	return repl
}

// computeVORP maps each candidate to projected points minus its position's
// replacement level, index-aligned with the pool.
func computeVORP(pool []model.Candidate, proj []float64, repl map[model.Position]float64) []float64 {
	out := make([]float64, len(pool))
	for i := range pool {
		out[i] = proj[i] - repl[pool[i].Position]
	}
	return out
}
