package engine

import (
	"fmt"
	"testing"

	"github.com/okian/audible/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func tierPool(pos model.Position, pts ...float64) ([]model.Candidate, []float64) {
	pool := make([]model.Candidate, len(pts))
	for i, p := range pts {
		pool[i] = model.Candidate{
			ID:              fmt.Sprintf("%s%02d", pos, i),
			Position:        pos,
			ProjectedPoints: fp(p),
		}
	}
	return pool, pts
}

func noPressure() map[model.Position]float64 {
	return map[model.Position]float64{}
}

func TestComputeTiers(t *testing.T) {
	Convey("Given a position with a pronounced points cliff", t, func() {
		pool, proj := tierPool(model.RB, 200, 198, 196, 150, 148, 146, 144, 100, 98, 96)
		groups := groupByPosition(pool, proj)

		Convey("When tiers are computed", func() {
			tiers := computeTiers(pool, groups, 1, 5, noPressure(), model.DefaultStrategy())

			Convey("Then tier ids are non-decreasing down the ranking", func() {
				g := groups[model.RB]
				prev := 0
				for _, idx := range g.idx {
					id := tiers.tierOf[pool[idx].ID]
					So(id, ShouldBeGreaterThanOrEqualTo, prev)
					prev = id
				}
			})

			Convey("And the cliffs open new tiers", func() {
				So(tiers.tierOf["RB00"], ShouldEqual, 1)
				So(tiers.tierOf["RB03"], ShouldEqual, 2)
				So(tiers.tierOf["RB07"], ShouldEqual, 3)
			})

			Convey("And tier heads record where each tier starts", func() {
				So(tiers.heads[model.RB][2].index, ShouldEqual, 3)
				So(tiers.heads[model.RB][2].points, ShouldAlmostEqual, 150.0, 1e-9)
			})

			Convey("And no tier except the last is smaller than the minimum size", func() {
				sizes := map[int]int{}
				maxTier := 0
				for _, idx := range groups[model.RB].idx {
					id := tiers.tierOf[pool[idx].ID]
					sizes[id]++
					if id > maxTier {
						maxTier = id
					}
				}
				for id, n := range sizes {
					if id != maxTier {
						So(n, ShouldBeGreaterThanOrEqualTo, tierMinSize[model.RB])
					}
				}
			})
		})
	})

	Convey("Given a cliff immediately after the first rank", t, func() {
		pool, proj := tierPool(model.RB, 200, 120, 118, 116)
		groups := groupByPosition(pool, proj)

		Convey("When tiers are computed", func() {
			tiers := computeTiers(pool, groups, 1, 5, noPressure(), model.DefaultStrategy())

			Convey("Then the minimum size guard keeps the tier together", func() {
				// RB min size is 3: the 200->120 cliff cannot split a 1-man tier
				So(tiers.tierOf["RB01"], ShouldEqual, 1)
			})
		})
	})

	Convey("Given zero-point candidates", t, func() {
		pool, proj := tierPool(model.K, 0, 0, 0)
		groups := groupByPosition(pool, proj)

		Convey("When tiers are computed", func() {
			tiers := computeTiers(pool, groups, 1, 0, noPressure(), model.DefaultStrategy())

			Convey("Then gaps collapse to zero and everyone shares tier 1", func() {
				for _, c := range pool {
					So(tiers.tierOf[c.ID], ShouldEqual, 1)
				}
			})
		})
	})

	Convey("Given an EliteTE strategy in the early rounds", t, func() {
		// drops just under the TE base tolerance, so only a narrowed
		// tolerance splits them
		pool, proj := tierPool(model.TE, 100, 99, 98, 89.2, 88.5, 88)
		groups := groupByPosition(pool, proj)

		Convey("When tiers are computed under both strategies", func() {
			balanced := computeTiers(pool, groups, 2, 5, noPressure(), model.DefaultStrategy())
			elite := computeTiers(pool, groups, 2, 5, noPressure(),
				model.StrategyProfile{Archetype: model.EliteTE, Risk: model.RiskBalanced})

			Convey("Then the archetype narrows the TE tolerance and splits earlier", func() {
				So(balanced.tierOf["TE03"], ShouldEqual, 1)
				So(elite.tierOf["TE03"], ShouldEqual, 2)
			})
		})
	})
}

func TestRoleUncertainty(t *testing.T) {
	Convey("Given candidates with varying role signals", t, func() {
		Convey("When a clean veteran starter is scored", func() {
			c := model.Candidate{ID: "a", Position: model.RB, YearsExp: ip(5), DepthOrder: ip(1)}

			Convey("Then uncertainty is zero", func() {
				So(roleUncertainty(c), ShouldEqual, 0.0)
			})
		})

		Convey("When every signal fires", func() {
			c := model.Candidate{
				ID: "b", Position: model.RB,
				CommitteeSize: ip(3), DepthOrder: ip(3),
				YearsExp: ip(0), Injury: model.InjuryQuestionable,
			}

			Convey("Then uncertainty caps at one", func() {
				So(roleUncertainty(c), ShouldEqual, 1.0)
			})
		})

		Convey("When only the rookie flag fires", func() {
			c := model.Candidate{ID: "c", Position: model.WR, YearsExp: ip(0)}

			Convey("Then the contribution is small", func() {
				So(roleUncertainty(c), ShouldAlmostEqual, 0.2, 1e-9)
			})
		})
	})
}
