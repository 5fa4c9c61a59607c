package scoring

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kitforge/kitforge/internal/domain/model"
)

func fullBuild() *model.Build {
	build := &model.Build{
		Class:    model.ClassTitan,
		Activity: model.ActivityRaid,
	}
	build.Loadout.Kinetic = &model.ItemRef{ID: "k", Name: "k", Rarity: model.RarityLegendary, Range: model.RangeLong}
	build.Loadout.Energy = &model.ItemRef{ID: "e", Name: "e", Rarity: model.RarityExotic, Range: model.RangeMid}
	build.Loadout.Power = &model.ItemRef{ID: "p", Name: "p", Rarity: model.RarityLegendary, Range: model.RangeLong}
	build.Loadout.Helmet = &model.ItemRef{ID: "h", Name: "h", Rarity: model.RarityLegendary}
	build.Loadout.Arms = &model.ItemRef{ID: "a", Name: "a", Rarity: model.RarityLegendary}
	build.Loadout.Chest = &model.ItemRef{ID: "c", Name: "c", Rarity: model.RarityExotic}
	build.Loadout.Legs = &model.ItemRef{ID: "l", Name: "l", Rarity: model.RarityLegendary}
	build.Loadout.ClassItem = &model.ItemRef{ID: "ci", Name: "ci", Rarity: model.RarityLegendary}
	build.Loadout.Mods = map[model.ArmorSlot][]model.Mod{
		model.SlotHelmet: {{ID: "m1", Boost: model.StatRecovery, Amount: 20}},
		model.SlotArms:   {{ID: "m2", Boost: model.StatDiscipline, Amount: 20}},
	}
	for _, s := range model.Stats() {
		build.Stats.Set(s, 100)
	}
	build.Stats.Set(model.StatRecovery, 160)
	build.Synergies = []model.Synergy{
		{Type: model.SynergyWeapon, Strength: model.StrengthMedium},
		{Type: model.SynergyStat, Strength: model.StrengthHigh},
	}
	build.Breakpoints = build.Stats.Breakpoints()
	return build
}

func raidRequest() model.BuildRequest {
	return model.BuildRequest{
		Class:      model.ClassTitan,
		Activity:   model.ActivityRaid,
		Playstyle:  model.PlaystyleBalanced,
		FocusStats: model.NewStatSet(model.StatRecovery),
	}
}

func TestScore(t *testing.T) {
	Convey("Given a score engine", t, func() {
		engine := New()

		Convey("When scoring a well-formed build", func() {
			result := engine.Score(fullBuild(), raidRequest())

			Convey("Then the total should be in range with a letter tier", func() {
				So(result.Total, ShouldBeBetweenOrEqual, 0, 100)
				So(result.Tier, ShouldBeIn, []string{"S", "A", "B", "C", "D", "F"})
				So(result.Err, ShouldEqual, "")
			})

			Convey("And the breakdown should cover every category in range", func() {
				So(len(result.Breakdown), ShouldEqual, 6)
				for _, cat := range model.ScoreCategories() {
					So(result.Breakdown[cat], ShouldBeBetweenOrEqual, 0, 100)
				}
			})

			Convey("And exactly one recommendation should be offered", func() {
				So(len(result.Recommendations), ShouldEqual, 1)
			})
		})

		Convey("When scoring the same build twice", func() {
			first := engine.Score(fullBuild(), raidRequest())
			second := engine.Score(fullBuild(), raidRequest())

			Convey("Then the results should be identical", func() {
				So(first, ShouldResemble, second)
			})
		})

		Convey("When the build pairs one exotic weapon with one exotic armor", func() {
			result := engine.Score(fullBuild(), raidRequest())

			Convey("Then exotic utility should be maxed", func() {
				So(result.Breakdown[model.CategoryExoticUtility], ShouldEqual, 100)
			})
		})

		Convey("When the build has no exotics", func() {
			build := fullBuild()
			build.Loadout.Energy.Rarity = model.RarityLegendary
			build.Loadout.Chest.Rarity = model.RarityLegendary

			result := engine.Score(build, raidRequest())

			Convey("Then exotic utility should sit at the floor", func() {
				So(result.Breakdown[model.CategoryExoticUtility], ShouldEqual, 40)
			})
		})

		Convey("When the build doubles up exotics in one category", func() {
			build := fullBuild()
			build.Loadout.Kinetic.Rarity = model.RarityExotic

			result := engine.Score(build, raidRequest())

			Convey("Then exotic utility should be punished sharply", func() {
				So(result.Breakdown[model.CategoryExoticUtility], ShouldEqual, 10)
			})
		})

		Convey("When the build has no synergies", func() {
			build := fullBuild()
			build.Synergies = nil

			result := engine.Score(build, raidRequest())

			Convey("Then the synergy score should be the low base, not zero", func() {
				So(result.Breakdown[model.CategorySynergy], ShouldEqual, 40)
			})
		})

		Convey("When the build has many synergies", func() {
			build := fullBuild()
			for i := 0; i < 10; i++ {
				build.Synergies = append(build.Synergies, model.Synergy{Type: model.SynergyStat})
			}

			result := engine.Score(build, raidRequest())

			Convey("Then the synergy score should saturate at 100", func() {
				So(result.Breakdown[model.CategorySynergy], ShouldEqual, 100)
			})
		})

		Convey("When mods exceed the effectiveness cap", func() {
			build := fullBuild()
			build.Loadout.Mods[model.SlotLegs] = []model.Mod{
				{ID: "m3"}, {ID: "m4"}, {ID: "m5"}, {ID: "m6"}, {ID: "m7"},
			}

			result := engine.Score(build, raidRequest())

			Convey("Then the mod score should stay flat past the cap", func() {
				So(result.Breakdown[model.CategoryModEffectiveness], ShouldEqual, 100)
			})
		})

		Convey("When the focus stat reached a high tier", func() {
			result := engine.Score(fullBuild(), raidRequest())

			Convey("Then user preference should sit above the baseline", func() {
				So(result.Breakdown[model.CategoryUserPreference], ShouldBeGreaterThan, 60)
			})
		})

		Convey("When the focus stat fell short", func() {
			build := fullBuild()
			build.Stats.Set(model.StatRecovery, 40)

			result := engine.Score(build, raidRequest())

			Convey("Then user preference should dip below the baseline", func() {
				So(result.Breakdown[model.CategoryUserPreference], ShouldBeLessThan, 60)
			})
		})

		Convey("When the raw text asks for a tank and resilience delivers", func() {
			build := fullBuild()
			build.Stats.Set(model.StatResilience, 140)
			req := raidRequest()
			req.RawText = "tank build please"

			tanky := engine.Score(build, req)
			plain := engine.Score(build, raidRequest())

			Convey("Then the keyword bonus should register", func() {
				So(tanky.Breakdown[model.CategoryUserPreference],
					ShouldBeGreaterThan, plain.Breakdown[model.CategoryUserPreference]-1)
			})
		})

		Convey("When equipment slots are empty", func() {
			build := &model.Build{Class: model.ClassTitan, Activity: model.ActivityRaid}

			result := engine.Score(build, raidRequest())

			Convey("Then the gap should surface as a weakness", func() {
				So(result.Weaknesses, ShouldNotBeEmpty)
				found := false
				for _, w := range result.Weaknesses {
					if w == "8 equipment slots are empty under the current constraints" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestScoreDegraded(t *testing.T) {
	Convey("Given a score engine", t, func() {
		engine := New()

		Convey("When scoring panics mid-computation", func() {
			result := engine.Score(nil, raidRequest())

			Convey("Then a degraded result should come back instead", func() {
				So(result.Total, ShouldEqual, 50)
				So(result.Tier, ShouldEqual, "unknown")
				So(result.Err, ShouldNotEqual, "")
				So(result.Breakdown, ShouldBeEmpty)
			})
		})
	})
}

func TestScoreTiers(t *testing.T) {
	Convey("Given the tier ladder", t, func() {
		cases := []struct {
			total int
			tier  string
		}{
			{95, "S"}, {90, "S"},
			{89, "A"}, {80, "A"},
			{79, "B"}, {70, "B"},
			{69, "C"}, {60, "C"},
			{59, "D"}, {50, "D"},
			{49, "F"}, {0, "F"},
		}

		Convey("Then each total should map to its letter", func() {
			for _, c := range cases {
				So(letterTier(c.total), ShouldEqual, c.tier)
			}
		})
	})
}

func TestScoreWeights(t *testing.T) {
	Convey("Given custom category weights", t, func() {
		Convey("When weights are overridden from configuration", func() {
			engine := New(WithCategoryWeightsFromConfig(map[string]float64{
				"synergy": 10,
			}))

			Convey("Then the weight set should be normalized", func() {
				var sum float64
				for _, w := range engine.weights {
					sum += w
				}
				So(sum, ShouldAlmostEqual, 1.0, 1e-9)
				So(engine.weights[model.CategorySynergy], ShouldBeGreaterThan, 0.9)
			})
		})

		Convey("When the override names only unknown categories", func() {
			engine := New(WithCategoryWeightsFromConfig(map[string]float64{
				"vibes": 3,
			}))

			Convey("Then the defaults should stand", func() {
				So(engine.weights[model.CategoryStatDistribution], ShouldAlmostEqual, 0.25)
				So(engine.weights[model.CategorySynergy], ShouldAlmostEqual, 0.20)
			})
		})

		Convey("When non-positive weights are supplied", func() {
			engine := New(WithCategoryWeightsFromConfig(map[string]float64{
				"synergy": -1,
			}))

			Convey("Then they should be ignored", func() {
				So(engine.weights[model.CategorySynergy], ShouldAlmostEqual, 0.20)
			})
		})
	})
}
