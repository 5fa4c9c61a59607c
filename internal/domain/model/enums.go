// Package model contains domain models passed between layers.
package model

// Class identifies a playable character class.
type Class string

// Character classes. ClassAny means "no preference".
const (
	ClassAny     Class = "any"
	ClassTitan   Class = "titan"
	ClassHunter  Class = "hunter"
	ClassWarlock Class = "warlock"
)

// Element identifies a subclass damage element.
type Element string

// Subclass elements. ElementAny means "no preference".
const (
	ElementAny    Element = "any"
	ElementArc    Element = "arc"
	ElementSolar  Element = "solar"
	ElementVoid   Element = "void"
	ElementStasis Element = "stasis"
	ElementStrand Element = "strand"
)

// Activity identifies the game mode a build targets.
type Activity string

// Supported activities.
const (
	ActivityGeneral   Activity = "general"
	ActivityRaid      Activity = "raid"
	ActivityDungeon   Activity = "dungeon"
	ActivityPvP       Activity = "pvp"
	ActivityNightfall Activity = "nightfall"
	ActivityGambit    Activity = "gambit"
	ActivityTrials    Activity = "trials"
)

// Playstyle identifies the broad way a player wants to play.
type Playstyle string

// Supported playstyles.
const (
	PlaystyleBalanced Playstyle = "balanced"
	PlaystyleTank     Playstyle = "tank"
	PlaystyleDPS      Playstyle = "dps"
	PlaystyleSpeed    Playstyle = "speed"
)

// Stat identifies one of the six character stats.
type Stat string

// Character stats.
const (
	StatMobility   Stat = "mobility"
	StatResilience Stat = "resilience"
	StatRecovery   Stat = "recovery"
	StatDiscipline Stat = "discipline"
	StatIntellect  Stat = "intellect"
	StatStrength   Stat = "strength"
)

// Rarity identifies an item tier. Exotic is the rarest and is subject to
// the one-per-category equip rule.
type Rarity string

// Item rarities.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
	RarityExotic    Rarity = "exotic"
)

// Category identifies the broad kind of a catalog item.
type Category string

// Item categories.
const (
	CategoryWeapon   Category = "weapon"
	CategoryArmor    Category = "armor"
	CategoryMod      Category = "mod"
	CategorySubclass Category = "subclass"
)

// WeaponSlot identifies one of the three weapon equipment slots.
type WeaponSlot string

// Weapon slots.
const (
	SlotKinetic WeaponSlot = "kinetic"
	SlotEnergy  WeaponSlot = "energy"
	SlotPower   WeaponSlot = "power"
)

// ArmorSlot identifies one of the five armor equipment slots.
type ArmorSlot string

// Armor slots.
const (
	SlotHelmet    ArmorSlot = "helmet"
	SlotArms      ArmorSlot = "arms"
	SlotChest     ArmorSlot = "chest"
	SlotLegs      ArmorSlot = "legs"
	SlotClassItem ArmorSlot = "classitem"
)

// RangeClass buckets a weapon archetype by effective engagement distance.
type RangeClass string

// Range classes.
const (
	RangeClose RangeClass = "close"
	RangeMid   RangeClass = "mid"
	RangeLong  RangeClass = "long"
)

// Stats returns the six stats in canonical order. Iteration over stats must
// go through this slice so derived output stays deterministic.
func Stats() []Stat {
	return []Stat{
		StatMobility,
		StatResilience,
		StatRecovery,
		StatDiscipline,
		StatIntellect,
		StatStrength,
	}
}

// WeaponSlots returns the weapon slots in canonical order.
func WeaponSlots() []WeaponSlot {
	return []WeaponSlot{SlotKinetic, SlotEnergy, SlotPower}
}

// ArmorSlots returns the armor slots in canonical order.
func ArmorSlots() []ArmorSlot {
	return []ArmorSlot{SlotHelmet, SlotArms, SlotChest, SlotLegs, SlotClassItem}
}

// Playstyles returns the playstyles in their fixed rotation order, used by
// the alternatives generator to perturb requests deterministically.
func Playstyles() []Playstyle {
	return []Playstyle{PlaystyleBalanced, PlaystyleTank, PlaystyleDPS, PlaystyleSpeed}
}

// ValidStat reports whether s names one of the six stats.
func ValidStat(s Stat) bool {
	for _, known := range Stats() {
		if s == known {
			return true
		}
	}
	return false
}
