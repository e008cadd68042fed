package engine

import (
	"math"
	"sort"

	"github.com/okian/audible/internal/domain/model"
)

// ADP spread estimation bounds.
const (
	sigmaFloor      = 6.0
	sigmaCeil       = 20.0
	sigmaMinSamples = 8

	// missingADP stands in for "undrafted by the market" when a candidate
	// unexpectedly reaches the ADP path without a value.
	missingADP = 999.0

	// Live-signal blend: recent room pick rate vs. opponent need share.
	liveRateWeight = 0.6
	liveNeedWeight = 0.4
)

// sigmaDefaults is the fallback ADP spread per position when the pool holds
// too few samples to estimate one.
var sigmaDefaults = map[model.Position]float64{
	model.QB:  10.0,
	model.RB:  12.0,
	model.WR:  14.0,
	model.TE:  10.0,
	model.DST: 8.0,
	model.K:   8.0,
}

const sigmaDefaultUnknown = 12.0

// overallPicks returns the caller's current and next overall pick numbers,
// honoring snake order.
func overallPicks(ctx model.LeagueContext) (current, next int) {
	t := ctx.Teams
	if ctx.Snake {
		if ctx.Round%2 == 1 {
			current = (ctx.Round-1)*t + ctx.PickSlot
			next = ctx.Round*t + (t - ctx.PickSlot + 1)
		} else {
			current = (ctx.Round-1)*t + (t - ctx.PickSlot + 1)
			next = ctx.Round*t + ctx.PickSlot
		}
	} else {
		current = (ctx.Round-1)*t + ctx.PickSlot
		next = ctx.Round*t + ctx.PickSlot
	}
	return current, next
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// adaptiveSigma estimates the ADP spread for pos from the pool: the sample
// standard deviation of same-position ADPs, clamped to [sigmaFloor,
// sigmaCeil], falling back to the positional default below sigmaMinSamples.
func adaptiveSigma(pos model.Position, pool []model.Candidate) float64 {
	def, ok := sigmaDefaults[pos]
	if !ok {
		def = sigmaDefaultUnknown
	}
	adps := make([]float64, 0, len(pool))
	for i := range pool {
		if pool[i].Position == pos && pool[i].ADP != nil {
			adps = append(adps, *pool[i].ADP)
		}
	}
	if len(adps) < sigmaMinSamples {
		return def
	}
	sort.Float64s(adps)
	_, sd := meanStd(adps)
	if sd <= epsilon {
		sd = def
	}
	return math.Max(sigmaFloor, math.Min(sigmaCeil, sd))
}

// survivalWithADP models the probability c is still on the board at the
// caller's next pick as Φ((nextPick − adp) / σ).
func survivalWithADP(c model.Candidate, nextPick int, pool []model.Candidate) float64 {
	adp := missingADP
	if c.ADP != nil {
		adp = *c.ADP
	}
	sigma := adaptiveSigma(c.Position, pool)
	z := (float64(nextPick) - adp) / sigma
	return clamp01(normCDF(z))
}

// survivalLive estimates survival without market data: blend the position's
// recent room pick rate with its share of aggregate opponent need, scale by
// the number of picks until the caller's turn, and soften into a probability.
func survivalLive(pos model.Position, rates map[model.Position]float64, oppNeeds model.PositionCounts, picksGap int) float64 {
	totalNeed := oppNeeds.Total()
	if totalNeed < 1 {
		totalNeed = 1
	}
	needShare := float64(oppNeeds.Get(pos)) / float64(totalNeed)
	rate := liveRateWeight*rates[pos] + liveNeedWeight*needShare
	expectedTaken := math.Max(0.0, float64(picksGap)*rate)
	return clamp01(1.0 / (1.0 + expectedTaken))
}
