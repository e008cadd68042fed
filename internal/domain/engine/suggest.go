package engine

import (
	"math"
	"sort"

	"github.com/okian/audible/internal/domain/model"
)

// Aggregator constants. The must-fill escalator and bye/team-concentration
// shapes are empirically tuned values carried as-is; they are contract, not
// implementation detail.
const (
	maxSuggestions = 40

	mustFillThreshold = 0.33
	mustFillSlope     = 1.5

	byeOverlapAllowed = 2
	byeBenchScale     = 0.6
	byeFadePerRound   = 0.06
	byeFadeFloor      = 0.3

	teamConcAllowed = 2
	teamConcScale   = 0.2

	scarcityTierWeight = 0.7
	scarcityPosWeight  = 0.3

	handcuffDepth = 2

	roleDamper         = 0.95
	roleStabilityScale = 0.8

	benchRookieScale = 0.8
	benchInjuryScale = 0.9
	benchStackScale  = 1.1

	eliteTEBoost    = 1.08
	eliteTERounds   = 4
	lateQBFade      = 0.92
	lateQBRounds    = 8
	zeroRBFade      = 0.9
	zeroRBRounds    = 3
	conservativeUp  = 1.2
	conservativeAge = 1.1
	aggressiveDown  = 0.8
	aggressiveAge   = 0.9

	reasonThreshold = 0.2
)

// weights is the signal weight vector for one round bucket. Penalty weights
// (bye, teamConc, injury, age, rookie) are subtracted in the final sum.
type weights struct {
	vorp, tierGap, avail, run, scarcity, need, mustFill, stack float64
	bye, teamConc, injury, age, role, rookie, handcuff, gate   float64
}

// roundWeights selects the weight vector by round bucket: VORP dominates
// early and fades as availability, need, scarcity, and handcuff value grow.
func roundWeights(round int) weights {
	switch {
	case round <= 3:
		return weights{
			vorp: 1.00, tierGap: 0.35, avail: 0.25, run: 0.15, scarcity: 0.25,
			need: 0.20, mustFill: 0.10, stack: 0.06, bye: 0.12, teamConc: 0.05,
			injury: 0.20, age: 0.06, role: 0.10, rookie: 0.10, handcuff: 0.05, gate: 0.30,
		}
	case round <= 6:
		return weights{
			vorp: 0.90, tierGap: 0.30, avail: 0.30, run: 0.22, scarcity: 0.28,
			need: 0.22, mustFill: 0.12, stack: 0.08, bye: 0.10, teamConc: 0.06,
			injury: 0.16, age: 0.06, role: 0.12, rookie: 0.08, handcuff: 0.06, gate: 0.35,
		}
	case round <= 10:
		return weights{
			vorp: 0.75, tierGap: 0.25, avail: 0.35, run: 0.28, scarcity: 0.26,
			need: 0.22, mustFill: 0.15, stack: 0.10, bye: 0.08, teamConc: 0.06,
			injury: 0.14, age: 0.06, role: 0.14, rookie: 0.06, handcuff: 0.10, gate: 0.45,
		}
	default:
		return weights{
			vorp: 0.60, tierGap: 0.18, avail: 0.35, run: 0.30, scarcity: 0.24,
			need: 0.18, mustFill: 0.18, stack: 0.12, bye: 0.06, teamConc: 0.06,
			injury: 0.10, age: 0.06, role: 0.16, rookie: 0.04, handcuff: 0.14, gate: 0.60,
		}
	}
}

// benchAdjust relaxes risk penalties once every starting slot is filled:
// bench picks tolerate rookies and injury flyers and lean into stacks.
func (w *weights) benchAdjust() {
	w.rookie *= benchRookieScale
	w.injury *= benchInjuryScale
	w.stack *= benchStackScale
}

// riskAdjust perturbs the risk-signal weights by posture.
func (w *weights) riskAdjust(risk model.RiskPosture) {
	switch risk {
	case model.RiskConservative:
		w.injury *= conservativeUp
		w.rookie *= conservativeUp
		w.age *= conservativeAge
	case model.RiskAggressive:
		w.injury *= aggressiveDown
		w.rookie *= aggressiveDown
		w.age *= aggressiveAge
	}
}

// rosterState is the caller's roster summary derived from the drafted map.
type rosterState struct {
	counts     model.PositionCounts
	teamCounts map[string]int
	qbTeams    map[string]bool
	players    []model.Candidate
}

// callerRoster collects the caller's drafted players from the full pool.
func callerRoster(pool []model.Candidate, drafted map[string]string, callerTeam string) rosterState {
	rs := rosterState{
		teamCounts: map[string]int{},
		qbTeams:    map[string]bool{},
	}
	for i := range pool {
		if drafted[pool[i].ID] != callerTeam {
			continue
		}
		c := pool[i]
		rs.players = append(rs.players, c)
		rs.counts.Add(c.Position, 1)
		if c.Team != "" {
			rs.teamCounts[c.Team]++
			if c.Position == model.QB {
				rs.qbTeams[c.Team] = true
			}
		}
	}
	return rs
}

// benchPick reports whether the caller has already filled every starting
// slot, so the next selection is bench-destined.
func benchPick(rules model.ScoringRules, counts model.PositionCounts) bool {
	return counts.Total() >= rules.Roster.Starters()
}

// agePenalty applies position-specific age curves; RB declines steepest.
func agePenalty(c model.Candidate) float64 {
	if c.Age == nil {
		return 0.0
	}
	a := float64(*c.Age)
	switch c.Position {
	case model.RB:
		return math.Max(0.0, (a-26)/10.0)
	case model.WR, model.TE:
		return math.Max(0.0, (a-28)/12.0)
	case model.QB:
		return math.Max(0.0, (a-32)/14.0)
	}
	return 0.0
}

// stackBonus rewards pass catchers who share a team with a rostered QB.
func stackBonus(c model.Candidate, qbTeams map[string]bool) float64 {
	if (c.Position == model.WR || c.Position == model.TE) && c.Team != "" && qbTeams[c.Team] {
		return 1.0
	}
	return 0.0
}

// teamConcentration penalizes piling a third or later player onto one team.
func teamConcentration(c model.Candidate, teamCounts map[string]int) float64 {
	if c.Team == "" {
		return 0.0
	}
	return teamConcScale * math.Max(0.0, float64(teamCounts[c.Team]-teamConcAllowed))
}

// byePenalty activates once the caller rosters more than byeOverlapAllowed
// players on the candidate's bye week, scaled down for bench picks and faded
// in later rounds.
func byePenalty(c model.Candidate, byeCounts map[int]int, round int, bench bool) float64 {
	if c.ByeWeek == nil {
		return 0.0
	}
	overlap := byeCounts[*c.ByeWeek]
	if overlap <= byeOverlapAllowed {
		return 0.0
	}
	base := 1.0
	if bench {
		base = byeBenchScale
	}
	fade := math.Max(byeFadeFloor, 1.0-float64(round-1)*byeFadePerRound)
	return base * float64(overlap-byeOverlapAllowed) * fade
}

// handcuffValue rewards a backup RB who insures a rostered starter at the
// same team, scaled by that starter's injury risk.
func handcuffValue(c model.Candidate, roster rosterState) float64 {
	if c.Position != model.RB || c.DepthOrder == nil || *c.DepthOrder != handcuffDepth || c.Team == "" {
		return 0.0
	}
	starterRisk := -1.0
	for _, mine := range roster.players {
		if mine.Position == model.RB && mine.Team == c.Team {
			starterRisk = math.Max(starterRisk, mine.Injury.Risk())
		}
	}
	if starterRisk < 0 {
		return 0.0
	}
	return 0.5 + 0.5*starterRisk
}

// roleStability converts committee/depth dampers into a small stability
// bonus: clean roles score highest.
func roleStability(c model.Candidate) float64 {
	mult := 1.0
	if c.CommitteeSize != nil && *c.CommitteeSize >= committeeThreshold {
		mult *= roleDamper
	}
	if c.DepthOrder != nil && *c.DepthOrder >= depthThreshold {
		mult *= roleDamper
	}
	return 1.0 - (1.0-mult)*roleStabilityScale
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// pipeline carries the per-request intermediates from the leaf components to
// the aggregator. Built once per Rank call, never mutated after.
type pipeline struct {
	req      Request
	pool     []model.Candidate
	proj     []float64
	vorps    []float64
	groups   map[model.Position]*positionGroup
	repl     map[model.Position]float64
	tiers    *tiering
	pressure map[model.Position]float64
	rates    map[model.Position]float64
	nextPick int
	picksGap int
	roster   rosterState
	oppNeeds model.PositionCounts
}

// aggregate computes the 15 normalized signal components per candidate,
// combines them under the round-bucket weight vector, and returns the ranked
// shortlist.
func (p *pipeline) aggregate() []model.Suggestion {
	round := p.req.Context.Round
	bench := benchPick(p.req.Rules, p.roster.counts)

	w := roundWeights(round)
	if bench {
		w.benchAdjust()
	}
	w.riskAdjust(p.req.Strategy.Risk)

	muVORP, sdVORP := meanStd(p.vorps)

	baseReq := p.req.Rules.Roster.Requirements()
	totalNeed := 0
	for _, pos := range model.Positions {
		totalNeed += max(0, baseReq.Get(pos)-p.roster.counts.Get(pos))
	}
	if totalNeed < 1 {
		totalNeed = 1
	}
	progress := 0.0
	if p.req.Context.TotalRounds > 1 {
		progress = float64(round-1) / float64(p.req.Context.TotalRounds-1)
	}

	results := make([]model.Suggestion, 0, len(p.pool))
	for i := range p.pool {
		c := p.pool[i]
		pos := c.Position
		pts := p.proj[i]
		vorp := p.vorps[i]

		g := p.groups[pos]
		rank := g.rankOf(i)

		// expected best remaining at this position when the pick returns
		taken := int(math.Round(float64(p.picksGap) * p.rates[pos]))
		idxNext := rank + max(0, taken)
		if idxNext > len(g.pts)-1 {
			idxNext = len(g.pts) - 1
		}
		tierGap := math.Max(0.0, pts-g.pts[idxNext])

		var survive float64
		if c.ADP != nil {
			survive = survivalWithADP(c, p.nextPick, p.pool)
		} else {
			survive = survivalLive(pos, p.rates, p.oppNeeds, p.picksGap)
		}
		urgency := 1.0 - survive

		// scarcity: tier exhaustion dominates, position depth seasons it
		tierID := p.tiers.tierOf[c.ID]
		if tierID == 0 {
			tierID = 1
		}
		tierSize, rankInTier := 0, 0
		for k, poolIdx := range g.idx {
			if p.tiers.tierOf[p.pool[poolIdx].ID] == tierID {
				tierSize++
				if k <= rank {
					rankInTier++
				}
			}
		}
		if tierSize < 1 {
			tierSize = 1
		}
		tierRemaining := math.Max(0.0, float64(tierSize-rankInTier)/float64(tierSize))
		aboveRepl := 0
		for _, v := range g.pts {
			if v >= p.repl[pos] {
				aboveRepl++
			}
		}
		posRemaining := 0.0
		if aboveRepl > 0 {
			posRemaining = math.Max(0.0, float64(aboveRepl-(rank+1))/float64(aboveRepl))
		}
		scarcity := scarcityTierWeight*(1.0-tierRemaining) + scarcityPosWeight*(1.0-posRemaining)

		needRaw := max(0, baseReq.Get(pos)-p.roster.counts.Get(pos))
		needFrac := float64(needRaw) / float64(totalNeed)
		mustFill := 0.0
		if progress > mustFillThreshold && needRaw > 0 {
			mustFill = (progress - mustFillThreshold) * mustFillSlope * needFrac
		}

		injRisk := c.Injury.Risk()
		agePen := agePenalty(c)
		rookieVol := 0.0
		if c.Rookie() {
			rookieVol = 1.0
		}
		stability := roleStability(c)
		handcuff := handcuffValue(c, p.roster)
		stack := stackBonus(c, p.roster.qbTeams)
		byePen := byePenalty(c, p.req.ByeCounts, round, bench)
		teamConc := teamConcentration(c, p.roster.teamCounts)

		gate := 1.0
		if (pos == model.K || pos == model.DST) && round < p.req.Context.KDSTGateRound {
			gate = 0.0
		}

		// strategy perturbs VORP for specific position/round windows before
		// normalization; the pool mean/std stay unperturbed
		switch p.req.Strategy.Archetype {
		case model.EliteTE:
			if pos == model.TE && round <= eliteTERounds {
				vorp *= eliteTEBoost
			}
		case model.LateQB:
			if pos == model.QB && round <= lateQBRounds {
				vorp *= lateQBFade
			}
		case model.ZeroRB:
			if pos == model.RB && round <= zeroRBRounds {
				vorp *= zeroRBFade
			}
		}

		zVORP := zScoreToUnit(vorp, muVORP, sdVORP)
		zTierGap := 0.0
		if tierGap > 0 {
			zTierGap = zScoreToUnit(tierGap, 0.0, math.Max(1.0, math.Abs(tierGap)))
		}
		zAvail := urgency*2.0 - 1.0
		zRun := math.Min(1.0, p.pressure[pos])
		zScarcity := unitFromFraction(scarcity)
		zNeed := needFrac*2.0 - 1.0
		zMustFill := unitFromFraction(mustFill)
		zStack := 0.0
		if stack > 0 {
			zStack = stack*2.0 - 1.0
		}
		zBye := 0.0
		if byePen > 0 {
			zBye = math.Min(1.0, byePen)*2.0 - 1.0
		}
		zTeamConc := 0.0
		if teamConc > 0 {
			zTeamConc = math.Min(1.0, teamConc)*2.0 - 1.0
		}
		zInjury := 0.0
		if injRisk > 0 {
			zInjury = math.Min(1.0, injRisk)*2.0 - 1.0
		}
		zAge := 0.0
		if agePen > 0 {
			zAge = math.Min(1.0, agePen)*2.0 - 1.0
		}
		zRole := (stability-0.9)/0.1 - 1.0
		zRookie := 0.0
		if rookieVol > 0 {
			zRookie = rookieVol*2.0 - 1.0
		}
		zHandcuff := 0.0
		if handcuff > 0 {
			zHandcuff = math.Min(1.0, handcuff)*2.0 - 1.0
		}
		zGate := gate*2.0 - 1.0

		score := w.vorp*zVORP + w.tierGap*zTierGap + w.avail*zAvail + w.run*zRun +
			w.scarcity*zScarcity + w.need*zNeed + w.mustFill*zMustFill + w.stack*zStack -
			w.bye*zBye - w.teamConc*zTeamConc - w.injury*zInjury - w.age*zAge +
			w.role*zRole - w.rookie*zRookie + w.handcuff*zHandcuff + w.gate*zGate

		components := map[string]float64{
			"Proj":      round1(pts),
			"VORPz":     round3(zVORP),
			"TierGap":   round2(tierGap),
			"AvailZ":    round3(zAvail),
			"RunPress":  round3(zRun),
			"ScarcityZ": round3(zScarcity),
			"NeedZ":     round3(zNeed),
			"MustFillZ": round3(zMustFill),
			"Stack":     round3(zStack),
			"ByeZ":      round3(zBye),
			"TeamConcZ": round3(zTeamConc),
			"InjuryZ":   round3(zInjury),
			"AgeZ":      round3(zAge),
			"RoleZ":     round3(zRole),
			"RookieZ":   round3(zRookie),
			"HandcuffZ": round3(zHandcuff),
		}

		reasons := make([]string, 0, 4)
		if zVORP > 0 {
			reasons = append(reasons, "VORP strong")
		} else {
			reasons = append(reasons, "VORP modest")
		}
		if zTierGap > reasonThreshold {
			reasons = append(reasons, "Tier cliff if you wait")
		}
		if zAvail > reasonThreshold {
			reasons = append(reasons, "Low survival to next pick")
		}
		if p.pressure[pos] > reasonThreshold {
			reasons = append(reasons, string(pos)+" run detected")
		}
		if zMustFill > reasonThreshold {
			reasons = append(reasons, "Must-fill starter")
		}
		if zStack > 0 {
			reasons = append(reasons, "Stack bonus")
		}
		if zBye > 0 {
			reasons = append(reasons, "Bye overlap")
		}
		if zInjury > reasonThreshold {
			reasons = append(reasons, "Injury risk")
		}
		if zHandcuff > reasonThreshold {
			reasons = append(reasons, "Handcuff value")
		}

		results = append(results, model.Suggestion{
			Candidate:  c,
			Score:      score,
			Components: components,
			Reasons:    reasons,
		})
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Candidate.ID < results[b].Candidate.ID
	})

	limit := p.req.Count
	if limit < 1 {
		limit = 1
	}
	if limit > maxSuggestions {
		limit = maxSuggestions
	}
	if limit > len(results) {
		limit = len(results)
	}
	return results[:limit]
}
