package compose

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// fixtureView builds a small catalog with full weapon and armor coverage for
// titans, one exotic per category, and a mod per ability stat.
func fixtureView(extra ...model.Item) catalog.View {
	items := []model.Item{
		{ID: "w-kin-1", Name: "Kinetic Mid", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Element: model.ElementArc, Range: model.RangeMid},
		{ID: "w-kin-2", Name: "Kinetic Long", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Element: model.ElementSolar, Range: model.RangeLong},
		{ID: "w-enr-1", Name: "Energy Mid", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityLegendary, Element: model.ElementVoid, Range: model.RangeMid},
		{ID: "w-enr-2", Name: "Energy Exotic", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityExotic, Element: model.ElementArc, Range: model.RangeMid},
		{ID: "w-pow-1", Name: "Power Long", Category: model.CategoryWeapon, WeaponSlot: model.SlotPower, Rarity: model.RarityLegendary, Element: model.ElementSolar, Range: model.RangeLong},

		{ID: "a-helm-1", Name: "Helm", Category: model.CategoryArmor, ArmorSlot: model.SlotHelmet, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-arms-1", Name: "Arms", Category: model.CategoryArmor, ArmorSlot: model.SlotArms, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-chest-1", Name: "Chest", Category: model.CategoryArmor, ArmorSlot: model.SlotChest, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-chest-2", Name: "Exotic Chest", Category: model.CategoryArmor, ArmorSlot: model.SlotChest, Class: model.ClassTitan, Rarity: model.RarityExotic},
		{ID: "a-legs-1", Name: "Legs", Category: model.CategoryArmor, ArmorSlot: model.SlotLegs, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		{ID: "a-cls-1", Name: "Mark", Category: model.CategoryArmor, ArmorSlot: model.SlotClassItem, Class: model.ClassTitan, Rarity: model.RarityLegendary},

		{ID: "m-rec-1", Name: "Recovery Mod", Category: model.CategoryMod, Boost: model.StatRecovery, BoostAmount: 20, Rarity: model.RarityCommon},
		{ID: "m-dis-1", Name: "Discipline Mod", Category: model.CategoryMod, Boost: model.StatDiscipline, BoostAmount: 20, Rarity: model.RarityCommon},
	}
	items = append(items, extra...)
	kits := []catalog.SubclassKit{
		{Class: model.ClassTitan, Subclass: model.Subclass{Element: model.ElementArc, Name: "Stormfront"}},
		{Class: model.ClassTitan, Subclass: model.Subclass{Element: model.ElementVoid, Name: "Nightshade"}},
	}
	return catalog.NewSnapshot(items, kits)
}

func baseRequest() model.BuildRequest {
	return model.BuildRequest{
		Class:      model.ClassTitan,
		Element:    model.ElementAny,
		Activity:   model.ActivityGeneral,
		Playstyle:  model.PlaystyleBalanced,
		FocusStats: model.NewStatSet(),
	}
}

func TestCompose(t *testing.T) {
	Convey("Given a composer and a full catalog", t, func() {
		composer := New()
		view := fixtureView()

		Convey("When composing a plain request", func() {
			build, err := composer.Compose(baseRequest(), view)
			So(err, ShouldBeNil)

			Convey("Then every weapon and armor slot should be filled", func() {
				So(len(build.Loadout.Weapons()), ShouldEqual, 3)
				So(len(build.Loadout.ArmorPieces()), ShouldEqual, 5)
			})

			Convey("And at most one exotic per category should be equipped", func() {
				So(build.Loadout.ExoticWeapons(), ShouldBeLessThanOrEqualTo, 1)
				So(build.Loadout.ExoticArmor(), ShouldBeLessThanOrEqualTo, 1)
			})

			Convey("And the subclass kit should match the resolved element", func() {
				So(build.Loadout.Subclass.Name, ShouldEqual, "Stormfront")
			})

			Convey("And the class and activity should carry over", func() {
				So(build.Class, ShouldEqual, model.ClassTitan)
				So(build.Activity, ShouldEqual, model.ActivityGeneral)
			})
		})

		Convey("When composing the same request twice", func() {
			first, err1 := composer.Compose(baseRequest(), view)
			second, err2 := composer.Compose(baseRequest(), view)

			Convey("Then the builds should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When the request has no class preference", func() {
			req := baseRequest()
			req.Class = model.ClassAny

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then the default class should be used", func() {
				So(build.Class, ShouldEqual, model.ClassTitan)
			})
		})

		Convey("When the request has an element preference", func() {
			req := baseRequest()
			req.Element = model.ElementVoid

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then the subclass should follow the element", func() {
				So(build.Loadout.Subclass.Name, ShouldEqual, "Nightshade")
			})
		})

		Convey("When focus stats are requested", func() {
			req := baseRequest()
			req.FocusStats = model.NewStatSet(model.StatRecovery)

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then a mod boosting the focus stat should be socketed", func() {
				So(build.Loadout.ModCount(), ShouldEqual, 1)
				var mod model.Mod
				for _, mods := range build.Loadout.Mods {
					mod = mods[0]
				}
				So(mod.Boost, ShouldEqual, model.StatRecovery)
			})

			Convey("And the focus stat should cross its breakpoint", func() {
				// Five occupied slots at the focus target contribution plus
				// the socketed mod.
				So(build.Stats.Get(model.StatRecovery), ShouldEqual, 160)
				So(build.Breakpoints[model.StatRecovery], ShouldBeTrue)
			})

			Convey("And unfocused stats should sit at the base floor", func() {
				So(build.Stats.Get(model.StatStrength), ShouldEqual, 40)
				So(build.Breakpoints[model.StatStrength], ShouldBeFalse)
			})
		})

		Convey("When the activity favors stats", func() {
			req := baseRequest()
			req.Activity = model.ActivityRaid

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then favored stats should reach the raised floor", func() {
				So(build.Stats.Get(model.StatRecovery), ShouldEqual, 100)
				So(build.Stats.Get(model.StatDiscipline), ShouldEqual, 100)
				So(build.Stats.Get(model.StatMobility), ShouldEqual, 40)
			})
		})

		Convey("When stat contributions would overflow", func() {
			req := baseRequest()
			req.FocusStats = model.NewStatSet(model.StatRecovery, model.StatDiscipline)

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then every stat should stay in range", func() {
				for _, s := range model.Stats() {
					So(build.Stats.Get(s), ShouldBeBetweenOrEqual, model.StatMin, model.StatMax)
				}
			})
		})
	})
}

func TestComposeLockedExotic(t *testing.T) {
	Convey("Given a composer", t, func() {
		composer := New()

		Convey("When locking an exotic weapon", func() {
			view := fixtureView()
			req := baseRequest()
			req.LockedExotic = "w-enr-2"

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then the locked weapon should occupy its slot", func() {
				So(build.Loadout.Energy.ID, ShouldEqual, "w-enr-2")
			})

			Convey("And no second exotic weapon should be picked", func() {
				So(build.Loadout.ExoticWeapons(), ShouldEqual, 1)
			})
		})

		Convey("When locking an exotic armor piece", func() {
			view := fixtureView()
			req := baseRequest()
			req.LockedExotic = "a-chest-2"

			build, err := composer.Compose(req, view)
			So(err, ShouldBeNil)

			Convey("Then the locked armor should occupy its slot", func() {
				So(build.Loadout.Chest.ID, ShouldEqual, "a-chest-2")
				So(build.Loadout.ExoticArmor(), ShouldEqual, 1)
			})
		})

		Convey("When the locked item is not in the catalog", func() {
			view := fixtureView()
			req := baseRequest()
			req.LockedExotic = "missing"

			_, err := composer.Compose(req, view)

			Convey("Then composition should fail with the lock error", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, ErrLockedItemNotFound)
			})
		})

		Convey("When the locked armor belongs to another class", func() {
			view := fixtureView(model.Item{
				ID: "a-hun-1", Name: "Hunter Cowl", Category: model.CategoryArmor,
				ArmorSlot: model.SlotHelmet, Class: model.ClassHunter, Rarity: model.RarityExotic,
			})
			req := baseRequest()
			req.LockedExotic = "a-hun-1"

			_, err := composer.Compose(req, view)

			Convey("Then composition should fail with the class mismatch error", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, ErrLockedClassMismatch)
			})
		})

		Convey("When honoring the lock would force a second exotic", func() {
			// The kinetic slot offers only an exotic; locking the energy
			// exotic spends the budget.
			items := []model.Item{
				{ID: "w-kin-x", Name: "Kinetic Exotic", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityExotic, Range: model.RangeMid},
				{ID: "w-enr-x", Name: "Energy Exotic", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityExotic, Range: model.RangeMid},
			}
			view := catalog.NewSnapshot(items, nil)
			req := baseRequest()
			req.LockedExotic = "w-enr-x"

			_, err := composer.Compose(req, view)

			Convey("Then composition should fail with the conflict error", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, ErrExoticConflict)
			})
		})
	})
}

func TestComposeCatalogGaps(t *testing.T) {
	Convey("Given a catalog with gaps", t, func() {
		composer := New()
		items := []model.Item{
			{ID: "w-kin-1", Name: "Only Kinetic", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Range: model.RangeMid},
			{ID: "a-helm-1", Name: "Only Helm", Category: model.CategoryArmor, ArmorSlot: model.SlotHelmet, Class: model.ClassTitan, Rarity: model.RarityLegendary},
		}
		view := catalog.NewSnapshot(items, nil)

		Convey("When composing", func() {
			build, err := composer.Compose(baseRequest(), view)

			Convey("Then gaps should leave slots empty, not fail", func() {
				So(err, ShouldBeNil)
				So(build.Loadout.Kinetic, ShouldNotBeNil)
				So(build.Loadout.Energy, ShouldBeNil)
				So(build.Loadout.Power, ShouldBeNil)
				So(len(build.Loadout.ArmorPieces()), ShouldEqual, 1)
			})

			Convey("And stats should scale with occupied armor slots", func() {
				// One occupied slot contributes a single per-slot share.
				So(build.Stats.Get(model.StatMobility), ShouldEqual, 8)
			})
		})

		Convey("When an unlocked slot offers only exotics after a greedy exotic pick", func() {
			// The kinetic pick takes the exotic and spends the budget; the
			// energy slot then has no legal candidate left.
			exoticOnly := catalog.NewSnapshot([]model.Item{
				{ID: "w-kin-l", Name: "Kinetic Legendary", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityLegendary, Range: model.RangeMid},
				{ID: "w-kin-x", Name: "Kinetic Exotic", Category: model.CategoryWeapon, WeaponSlot: model.SlotKinetic, Rarity: model.RarityExotic, Range: model.RangeMid},
				{ID: "w-enr-x", Name: "Energy Exotic", Category: model.CategoryWeapon, WeaponSlot: model.SlotEnergy, Rarity: model.RarityExotic, Range: model.RangeMid},
			}, nil)

			build, err := composer.Compose(baseRequest(), exoticOnly)

			Convey("Then the slot should be a gap, not a conflict", func() {
				So(err, ShouldBeNil)
				So(build.Loadout.Kinetic.ID, ShouldEqual, "w-kin-x")
				So(build.Loadout.Energy, ShouldBeNil)
				So(build.Loadout.ExoticWeapons(), ShouldEqual, 1)
			})
		})

		Convey("When an unlocked armor slot offers only an exotic after the budget is spent", func() {
			exoticOnly := catalog.NewSnapshot([]model.Item{
				{ID: "a-helm-l", Name: "Helm Legendary", Category: model.CategoryArmor, ArmorSlot: model.SlotHelmet, Class: model.ClassTitan, Rarity: model.RarityLegendary},
				{ID: "a-helm-x", Name: "Helm Exotic", Category: model.CategoryArmor, ArmorSlot: model.SlotHelmet, Class: model.ClassTitan, Rarity: model.RarityExotic},
				{ID: "a-chest-x", Name: "Chest Exotic", Category: model.CategoryArmor, ArmorSlot: model.SlotChest, Class: model.ClassTitan, Rarity: model.RarityExotic},
			}, nil)

			build, err := composer.Compose(baseRequest(), exoticOnly)

			Convey("Then the slot should be a gap, not a conflict", func() {
				So(err, ShouldBeNil)
				So(build.Loadout.Helmet.ID, ShouldEqual, "a-helm-x")
				So(build.Loadout.Chest, ShouldBeNil)
				So(build.Loadout.ExoticArmor(), ShouldEqual, 1)
			})
		})
	})
}

func TestComposeInventoryConstraint(t *testing.T) {
	Convey("Given an inventory-only request", t, func() {
		composer := New()
		view := fixtureView()
		req := baseRequest()
		req.Constraints = model.Constraints{
			UseInventoryOnly: true,
			Inventory:        []string{"w-kin-1", "a-helm-1"},
		}

		Convey("When composing", func() {
			build, err := composer.Compose(req, view)

			Convey("Then only inventory items should be equipped", func() {
				So(err, ShouldBeNil)
				So(build.Loadout.Kinetic.ID, ShouldEqual, "w-kin-1")
				So(build.Loadout.Energy, ShouldBeNil)
				So(len(build.Loadout.ArmorPieces()), ShouldEqual, 1)
				So(build.Loadout.Helmet.ID, ShouldEqual, "a-helm-1")
			})
		})
	})
}

func TestComposeOptions(t *testing.T) {
	Convey("Given composer options", t, func() {
		Convey("When overriding the default class", func() {
			composer := New(WithDefaultClass(model.ClassWarlock))
			items := []model.Item{
				{ID: "a-1", Name: "Robe", Category: model.CategoryArmor, ArmorSlot: model.SlotChest, Class: model.ClassWarlock, Rarity: model.RarityLegendary},
			}
			view := catalog.NewSnapshot(items, nil)

			req := baseRequest()
			req.Class = model.ClassAny
			build, err := composer.Compose(req, view)

			Convey("Then the override should resolve ClassAny", func() {
				So(err, ShouldBeNil)
				So(build.Class, ShouldEqual, model.ClassWarlock)
				So(build.Loadout.Chest, ShouldNotBeNil)
			})
		})

		Convey("When overriding stat targets", func() {
			composer := New(WithStatTargets(50, 110, 150))
			view := fixtureView()
			req := baseRequest()
			req.FocusStats = model.NewStatSet(model.StatIntellect)

			build, err := composer.Compose(req, view)

			Convey("Then the focus contribution should follow the override", func() {
				So(err, ShouldBeNil)
				So(build.Stats.Get(model.StatIntellect), ShouldEqual, 150)
				So(build.Stats.Get(model.StatMobility), ShouldEqual, 50)
			})
		})

		Convey("When option values are invalid", func() {
			composer := New(WithStatTargets(0, 0, 0), WithDefaultClass(model.Class("robot")))

			Convey("Then the defaults should survive", func() {
				So(composer.baseFloor, ShouldEqual, defaultBaseFloor)
				So(composer.favoredFloor, ShouldEqual, defaultFavoredFloor)
				So(composer.focusTarget, ShouldEqual, defaultFocusTarget)
				So(composer.defaultClass, ShouldEqual, model.ClassTitan)
			})
		})
	})
}
