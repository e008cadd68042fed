package engine

import (
	"context"
	"testing"

	"github.com/okian/audible/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHandcuffValue(t *testing.T) {
	Convey("Given a caller rostering running backs of varying health", t, func() {
		roster := rosterState{
			players: []model.Candidate{
				{ID: "hou1", Position: model.RB, Team: "HOU", Injury: model.InjuryQuestionable},
				{ID: "dal1", Position: model.RB, Team: "DAL", Injury: model.InjuryNone},
			},
		}

		Convey("When a depth-two back insures the injured starter", func() {
			cuff := model.Candidate{ID: "hou2", Position: model.RB, Team: "HOU", DepthOrder: ip(2)}

			Convey("Then the value scales with the starter's injury risk", func() {
				So(handcuffValue(cuff, roster), ShouldAlmostEqual, 0.5+0.5*0.6, 1e-9)
			})
		})

		Convey("When the insured starter is healthy", func() {
			cuff := model.Candidate{ID: "dal2", Position: model.RB, Team: "DAL", DepthOrder: ip(2)}

			Convey("Then only the base insurance value remains", func() {
				So(handcuffValue(cuff, roster), ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When no rostered back shares the candidate's team", func() {
			cuff := model.Candidate{ID: "sea2", Position: model.RB, Team: "SEA", DepthOrder: ip(2)}

			Convey("Then there is nothing to insure", func() {
				So(handcuffValue(cuff, roster), ShouldEqual, 0.0)
			})
		})

		Convey("When the candidate is not a depth-two running back", func() {
			starter := model.Candidate{ID: "hou3", Position: model.RB, Team: "HOU", DepthOrder: ip(1)}
			receiver := model.Candidate{ID: "hou4", Position: model.WR, Team: "HOU", DepthOrder: ip(2)}
			noDepth := model.Candidate{ID: "hou5", Position: model.RB, Team: "HOU"}

			Convey("Then the component stays silent", func() {
				So(handcuffValue(starter, roster), ShouldEqual, 0.0)
				So(handcuffValue(receiver, roster), ShouldEqual, 0.0)
				So(handcuffValue(noDepth, roster), ShouldEqual, 0.0)
			})
		})
	})
}

func TestRankHandcuffComponent(t *testing.T) {
	Convey("Given backups on the board behind rostered starters", t, func() {
		e := New()
		ctx := context.Background()

		var pool []model.Candidate
		add := func(id string, pos model.Position, team string, pts float64) {
			pool = append(pool, model.Candidate{
				ID: id, Name: id, Position: pos, Team: team, ProjectedPoints: fp(pts),
			})
		}
		add("st-hurt", model.RB, "HOU", 210)
		pool[len(pool)-1].Injury = model.InjuryQuestionable
		add("st-fit", model.RB, "DAL", 205)
		add("cuff-hurt", model.RB, "HOU", 90)
		pool[len(pool)-1].DepthOrder = ip(2)
		add("cuff-fit", model.RB, "DAL", 90)
		pool[len(pool)-1].DepthOrder = ip(2)
		add("cuff-orphan", model.RB, "SEA", 90)
		pool[len(pool)-1].DepthOrder = ip(2)
		for i := 0; i < 4; i++ {
			add("rb-f"+string(rune('a'+i)), model.RB, "T"+string(rune('a'+i)), 180-float64(i)*10)
			add("wr-f"+string(rune('a'+i)), model.WR, "U"+string(rune('a'+i)), 170-float64(i)*10)
		}

		req := baseRequest(pool)
		req.Drafted = map[string]string{"st-hurt": "ME", "st-fit": "ME"}
		req.Count = 40

		Convey("When the pool is ranked", func() {
			got, err := e.Rank(ctx, req)
			So(err, ShouldBeNil)

			byID := make(map[string]model.Suggestion, len(got))
			for _, s := range got {
				byID[s.Candidate.ID] = s
			}
			So(byID, ShouldContainKey, "cuff-hurt")
			So(byID, ShouldContainKey, "cuff-fit")
			So(byID, ShouldContainKey, "cuff-orphan")

			Convey("Then the backup of the injured starter draws the strongest handcuff signal", func() {
				So(byID["cuff-hurt"].Components["HandcuffZ"], ShouldAlmostEqual, 0.6, 1e-9)
				So(byID["cuff-hurt"].Reasons, ShouldContain, "Handcuff value")
			})

			Convey("And a healthy starter's backup carries only the neutral base", func() {
				So(byID["cuff-fit"].Components["HandcuffZ"], ShouldAlmostEqual, 0.0, 1e-9)
			})

			Convey("And an uninsurable backup scores nothing", func() {
				So(byID["cuff-orphan"].Components["HandcuffZ"], ShouldEqual, 0.0)
			})
		})
	})
}

func TestWeightAdjustments(t *testing.T) {
	Convey("Given the early-mid round weight vector", t, func() {
		base := roundWeights(5)

		Convey("When every starting slot is already filled", func() {
			w := base
			w.benchAdjust()

			Convey("Then rookie and injury penalties relax and stacks gain", func() {
				So(w.rookie, ShouldAlmostEqual, base.rookie*benchRookieScale, 1e-9)
				So(w.injury, ShouldAlmostEqual, base.injury*benchInjuryScale, 1e-9)
				So(w.stack, ShouldAlmostEqual, base.stack*benchStackScale, 1e-9)
			})

			Convey("And the value signals are untouched", func() {
				So(w.vorp, ShouldEqual, base.vorp)
				So(w.avail, ShouldEqual, base.avail)
				So(w.handcuff, ShouldEqual, base.handcuff)
			})
		})

		Convey("When the posture is conservative", func() {
			w := base
			w.riskAdjust(model.RiskConservative)

			Convey("Then risk penalties tighten", func() {
				So(w.injury, ShouldAlmostEqual, base.injury*conservativeUp, 1e-9)
				So(w.rookie, ShouldAlmostEqual, base.rookie*conservativeUp, 1e-9)
				So(w.age, ShouldAlmostEqual, base.age*conservativeAge, 1e-9)
			})
		})

		Convey("When the posture is aggressive", func() {
			w := base
			w.riskAdjust(model.RiskAggressive)

			Convey("Then risk penalties loosen", func() {
				So(w.injury, ShouldAlmostEqual, base.injury*aggressiveDown, 1e-9)
				So(w.rookie, ShouldAlmostEqual, base.rookie*aggressiveDown, 1e-9)
				So(w.age, ShouldAlmostEqual, base.age*aggressiveAge, 1e-9)
			})
		})

		Convey("When the posture is balanced", func() {
			w := base
			w.riskAdjust(model.RiskBalanced)

			Convey("Then nothing changes", func() {
				So(w, ShouldResemble, base)
			})
		})
	})

	Convey("Given the default roster requirements", t, func() {
		rules := model.DefaultScoringRules()

		Convey("When the caller is mid-build", func() {
			var counts model.PositionCounts
			counts.Add(model.RB, 2)
			counts.Add(model.WR, 2)

			Convey("Then the next pick is a starter", func() {
				So(benchPick(rules, counts), ShouldBeFalse)
			})
		})

		Convey("When every starting slot is covered", func() {
			var counts model.PositionCounts
			counts.Add(model.RB, rules.Roster.Starters())

			Convey("Then the next pick is bench-destined", func() {
				So(benchPick(rules, counts), ShouldBeTrue)
			})
		})
	})
}
