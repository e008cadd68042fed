package engine

import (
	"math"

	"github.com/okian/audible/internal/domain/model"
)

// Run-trend constants. The baseline shares approximate the historical draft
// distribution across positions; the gap amplifier grows (capped) with how
// many picks remain until the caller's next turn.
const (
	defaultRunWindow = 10
	gapAmpSpan       = 12.0
	gapAmpScale      = 0.5
	baselineFloor    = 0.01
)

var baselineShare = map[model.Position]float64{
	model.RB:  0.30,
	model.WR:  0.38,
	model.QB:  0.12,
	model.TE:  0.12,
	model.DST: 0.04,
	model.K:   0.04,
}

// runPressure measures, per position, how far recent drafting exceeds its
// baseline share within the trailing window, amplified by the pick gap.
// Positions drafted at or below baseline report zero pressure.
func runPressure(history []model.PickEvent, window, picksGap int) map[model.Position]float64 {
	out := make(map[model.Position]float64, len(baselineShare))
	if window <= 0 || len(history) == 0 {
		for pos := range baselineShare {
			out[pos] = 0.0
		}
		return out
	}
	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	counts := map[model.Position]int{}
	for _, ev := range recent {
		counts[ev.Position]++
	}
	total := float64(len(recent))
	gapAmp := 1.0 + math.Min(1.0, float64(picksGap)/gapAmpSpan)*gapAmpScale
	for pos, base := range baselineShare {
		share := float64(counts[pos]) / total
		delta := math.Max(0.0, share-base)
		out[pos] = delta / math.Max(baselineFloor, base) * gapAmp
	}
	return out
}

// recentPickRates returns each position's share of picks in the trailing
// window. With no history it reports the baseline shares, so downstream
// consumers always see a sane distribution.
func recentPickRates(history []model.PickEvent, window int) map[model.Position]float64 {
	out := make(map[model.Position]float64, len(baselineShare))
	if window <= 0 || len(history) == 0 {
		for pos, base := range baselineShare {
			out[pos] = base
		}
		return out
	}
	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	counts := map[model.Position]int{}
	total := 0
	for _, ev := range recent {
		if _, ok := baselineShare[ev.Position]; ok {
			counts[ev.Position]++
			total++
		}
	}
	if total == 0 {
		total = 1
	}
	for pos := range baselineShare {
		out[pos] = float64(counts[pos]) / float64(total)
	}
	return out
}
