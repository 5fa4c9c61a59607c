package model

import "time"

// SynergyType classifies which rule produced a synergy.
type SynergyType string

// Synergy types.
const (
	SynergyWeapon   SynergyType = "weapon"
	SynergyStat     SynergyType = "stat"
	SynergyActivity SynergyType = "activity"
	SynergyExotic   SynergyType = "exotic"
)

// SynergyStrength grades how impactful a synergy is.
type SynergyStrength string

// Synergy strengths.
const (
	StrengthLow    SynergyStrength = "low"
	StrengthMedium SynergyStrength = "medium"
	StrengthHigh   SynergyStrength = "high"
)

// Synergy is a detected beneficial interaction between equipped items or
// abilities. Builds keep synergies in detection order; callers wanting
// significance order sort by Strength themselves.
type Synergy struct {
	Type         SynergyType     `json:"type"`
	Strength     SynergyStrength `json:"strength"`
	Participants []string        `json:"participants"`
	Description  string          `json:"description"`
}

// ScoreCategory names one of the six weighted scoring factors.
type ScoreCategory string

// Score categories.
const (
	CategoryStatDistribution     ScoreCategory = "statDistribution"
	CategorySynergy              ScoreCategory = "synergy"
	CategoryExoticUtility        ScoreCategory = "exoticUtility"
	CategoryModEffectiveness     ScoreCategory = "modEffectiveness"
	CategoryActivityOptimization ScoreCategory = "activityOptimization"
	CategoryUserPreference       ScoreCategory = "userPreference"
)

// ScoreCategories returns the categories in canonical order.
func ScoreCategories() []ScoreCategory {
	return []ScoreCategory{
		CategoryStatDistribution,
		CategorySynergy,
		CategoryExoticUtility,
		CategoryModEffectiveness,
		CategoryActivityOptimization,
		CategoryUserPreference,
	}
}

// ScoreResult is the score engine's verdict on a build.
type ScoreResult struct {
	// Total is the weighted sum of category scores, in [0,100].
	Total int `json:"total"`

	// Breakdown holds the per-category scores, each in [0,100].
	Breakdown map[ScoreCategory]int `json:"breakdown"`

	// Tier is the letter grade: S/A/B/C/D/F, or "unknown" for a degraded
	// result.
	Tier string `json:"tier"`

	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`

	// Err is set only on a degraded result; the caller can still render
	// the rest of the fields.
	Err string `json:"error,omitempty"`
}

// Loadout is the complete equipment selection for a build. Empty slots stay
// nil when the catalog has no legal candidate; scoring penalizes the gap.
type Loadout struct {
	Subclass Subclass `json:"subclass"`

	Kinetic *ItemRef `json:"kinetic,omitempty"`
	Energy  *ItemRef `json:"energy,omitempty"`
	Power   *ItemRef `json:"power,omitempty"`

	Helmet    *ItemRef `json:"helmet,omitempty"`
	Arms      *ItemRef `json:"arms,omitempty"`
	Chest     *ItemRef `json:"chest,omitempty"`
	Legs      *ItemRef `json:"legs,omitempty"`
	ClassItem *ItemRef `json:"class_item,omitempty"`

	// Mods holds stat mods keyed by the armor slot they are socketed into.
	Mods map[ArmorSlot][]Mod `json:"mods,omitempty"`
}

// Weapon returns the item in a weapon slot, or nil.
func (l *Loadout) Weapon(slot WeaponSlot) *ItemRef {
	switch slot {
	case SlotKinetic:
		return l.Kinetic
	case SlotEnergy:
		return l.Energy
	case SlotPower:
		return l.Power
	default:
		return nil
	}
}

// SetWeapon places an item in a weapon slot.
func (l *Loadout) SetWeapon(slot WeaponSlot, ref *ItemRef) {
	switch slot {
	case SlotKinetic:
		l.Kinetic = ref
	case SlotEnergy:
		l.Energy = ref
	case SlotPower:
		l.Power = ref
	}
}

// Armor returns the item in an armor slot, or nil.
func (l *Loadout) Armor(slot ArmorSlot) *ItemRef {
	switch slot {
	case SlotHelmet:
		return l.Helmet
	case SlotArms:
		return l.Arms
	case SlotChest:
		return l.Chest
	case SlotLegs:
		return l.Legs
	case SlotClassItem:
		return l.ClassItem
	default:
		return nil
	}
}

// SetArmor places an item in an armor slot.
func (l *Loadout) SetArmor(slot ArmorSlot, ref *ItemRef) {
	switch slot {
	case SlotHelmet:
		l.Helmet = ref
	case SlotArms:
		l.Arms = ref
	case SlotChest:
		l.Chest = ref
	case SlotLegs:
		l.Legs = ref
	case SlotClassItem:
		l.ClassItem = ref
	}
}

// Weapons returns the equipped weapons in canonical slot order, skipping
// empty slots.
func (l *Loadout) Weapons() []ItemRef {
	var out []ItemRef
	for _, slot := range WeaponSlots() {
		if ref := l.Weapon(slot); ref != nil {
			out = append(out, *ref)
		}
	}
	return out
}

// ArmorPieces returns the equipped armor in canonical slot order, skipping
// empty slots.
func (l *Loadout) ArmorPieces() []ItemRef {
	var out []ItemRef
	for _, slot := range ArmorSlots() {
		if ref := l.Armor(slot); ref != nil {
			out = append(out, *ref)
		}
	}
	return out
}

// ExoticWeapons counts exotic-tier items across the weapon slots.
func (l *Loadout) ExoticWeapons() int {
	count := 0
	for _, ref := range l.Weapons() {
		if ref.IsExotic() {
			count++
		}
	}
	return count
}

// ExoticArmor counts exotic-tier items across the armor slots.
func (l *Loadout) ExoticArmor() int {
	count := 0
	for _, ref := range l.ArmorPieces() {
		if ref.IsExotic() {
			count++
		}
	}
	return count
}

// ModCount returns the total number of socketed mods.
func (l *Loadout) ModCount() int {
	count := 0
	for _, mods := range l.Mods {
		count += len(mods)
	}
	return count
}

// Build is a composed loadout with derived stats. Synergies are filled in by
// the detector and Score by the score engine; both enrich the build in place.
type Build struct {
	// ID is assigned by the service when the build is stored or shared;
	// composition itself is ID-free so identical inputs compose
	// byte-for-byte identical builds.
	ID string `json:"id,omitempty"`

	Class    Class    `json:"class"`
	Activity Activity `json:"activity"`

	Loadout Loadout   `json:"loadout"`
	Stats   StatBlock `json:"stats"`

	// Breakpoints flags, per stat, whether the secondary effect is active.
	Breakpoints map[Stat]bool `json:"breakpoints"`

	// Synergies in detection order, not significance order.
	Synergies []Synergy `json:"synergies"`

	// Score is nil until the score engine runs.
	Score *ScoreResult `json:"score,omitempty"`
}

// ShareEvent carries a community build submission through the async
// pipeline. Workers re-compose and re-score the request server-side; a
// client-supplied score is never trusted.
type ShareEvent struct {
	SubmissionID string       // unique id for idempotency
	BuildID      string       // id the build will be ranked under
	Request      BuildRequest // the originating request, re-run by a worker
	TS           time.Time    // submission timestamp
}
