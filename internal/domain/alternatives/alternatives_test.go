package alternatives

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/compose"
	"github.com/kitforge/kitforge/internal/domain/model"
	"github.com/kitforge/kitforge/internal/domain/scoring"
	"github.com/kitforge/kitforge/internal/domain/synergy"
)

func fixtureView() catalog.View {
	items := []model.Item{
		{ID: "w-kin-1", Name: "Kinetic Close", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Range: model.RangeClose},
		{ID: "w-kin-2", Name: "Kinetic Mid", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Range: model.RangeMid},
		{ID: "w-enr-1", Name: "Energy Close", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityLegendary, Range: model.RangeClose},
		{ID: "w-enr-2", Name: "Energy Mid", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityExotic, Range: model.RangeMid},
		{ID: "w-pow-1", Name: "Power Long", Category: model.CategoryWeapon, WeaponSlot: model.SlotPower, Rarity: model.RarityLegendary, Range: model.RangeLong},
		{ID: "a-helm-1", Name: "Helm", Category: model.CategoryArmor, ArmorSlot: model.SlotHelmet, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-arms-1", Name: "Arms", Category: model.CategoryArmor, ArmorSlot: model.SlotArms, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-chest-1", Name: "Chest", Category: model.CategoryArmor, ArmorSlot: model.SlotChest, Class: model.ClassTitan, Rarity: model.RarityExotic},
		{ID: "a-legs-1", Name: "Legs", Category: model.CategoryArmor, ArmorSlot: model.SlotLegs, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-cls-1", Name: "Mark", Category: model.CategoryArmor, ArmorSlot: model.SlotClassItem, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "m-mob-1", Name: "Mobility Mod", Category: model.CategoryMod, Boost: model.StatMobility, BoostAmount: 20, Rarity: model.RarityCommon},
	}
	kits := []catalog.SubclassKit{
		{Class: model.ClassTitan, Subclass: model.Subclass{Element: model.ElementArc, Name: "Stormfront"}},
		{Class: model.ClassTitan, Subclass: model.Subclass{Element: model.ElementVoid, Name: "Nightshade"}},
		{Class: model.ClassTitan, Subclass: model.Subclass{Element: model.ElementSolar, Name: "Dawnbreak"}},
	}
	return catalog.NewSnapshot(items, kits)
}

func testGenerator(opts ...Option) *Generator {
	return New(compose.New(), synergy.New(), scoring.New(), opts...)
}

func testRequest() model.BuildRequest {
	return model.BuildRequest{
		Class:      model.ClassTitan,
		Element:    model.ElementAny,
		Activity:   model.ActivityGeneral,
		Playstyle:  model.PlaystyleBalanced,
		FocusStats: model.NewStatSet(model.StatMobility, model.StatRecovery),
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given an alternatives generator", t, func() {
		generator := testGenerator()
		view := fixtureView()
		ctx := context.Background()

		Convey("When generating three alternatives", func() {
			builds, err := generator.Generate(ctx, testRequest(), view, 3)
			So(err, ShouldBeNil)

			Convey("Then three scored builds should come back", func() {
				So(len(builds), ShouldEqual, 3)
				for _, b := range builds {
					So(b.Score, ShouldNotBeNil)
				}
			})

			Convey("And they should be ranked by score descending", func() {
				for i := 1; i < len(builds); i++ {
					So(builds[i-1].Score.Total, ShouldBeGreaterThanOrEqualTo, builds[i].Score.Total)
				}
			})
		})

		Convey("When generating twice with the same input", func() {
			first, err1 := generator.Generate(ctx, testRequest(), view, 3)
			second, err2 := generator.Generate(ctx, testRequest(), view, 3)

			Convey("Then the batches should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When the requested count is zero", func() {
			builds, err := generator.Generate(ctx, testRequest(), view, 0)

			Convey("Then nothing should be generated", func() {
				So(err, ShouldBeNil)
				So(builds, ShouldBeNil)
			})
		})

		Convey("When the requested count exceeds the cap", func() {
			generator := testGenerator(WithMaxCount(2))
			builds, err := generator.Generate(ctx, testRequest(), view, 10)

			Convey("Then the cap should bound the batch", func() {
				So(err, ShouldBeNil)
				So(len(builds), ShouldBeLessThanOrEqualTo, 2)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := generator.Generate(cancelled, testRequest(), view, 3)

			Convey("Then the batch should fail with the context error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestPerturb(t *testing.T) {
	Convey("Given a request to perturb", t, func() {
		req := testRequest()

		Convey("When deriving successive variants", func() {
			v0 := Perturb(req, 0)
			v1 := Perturb(req, 1)
			v2 := Perturb(req, 2)
			v3 := Perturb(req, 3)

			Convey("Then the playstyle should rotate through the cycle", func() {
				So(v0.Playstyle, ShouldEqual, model.PlaystyleTank)
				So(v1.Playstyle, ShouldEqual, model.PlaystyleDPS)
				So(v2.Playstyle, ShouldEqual, model.PlaystyleSpeed)
				So(v3.Playstyle, ShouldEqual, model.PlaystyleBalanced)
			})

			Convey("And the focus order should be reversed", func() {
				So(v0.FocusStats.Stats(), ShouldResemble, []model.Stat{
					model.StatRecovery, model.StatMobility,
				})
			})

			Convey("And the original request should be untouched", func() {
				So(req.Playstyle, ShouldEqual, model.PlaystyleBalanced)
				So(req.FocusStats.Stats(), ShouldResemble, []model.Stat{
					model.StatMobility, model.StatRecovery,
				})
			})
		})

		Convey("When the request has no focus stats", func() {
			bare := testRequest()
			bare.FocusStats = model.NewStatSet()
			variant := Perturb(bare, 0)

			Convey("Then the empty set should stay empty", func() {
				So(variant.FocusStats.IsEmpty(), ShouldBeTrue)
			})
		})

		Convey("When perturbing deterministically", func() {
			Convey("Then the same index should yield the same variant", func() {
				So(Perturb(req, 1), ShouldResemble, Perturb(req, 1))
			})
		})
	})
}
