package compose

import "github.com/kitforge/kitforge/internal/domain/model"

// Activity tables shared by the composer (stat floors, weapon preferences),
// the synergy detector (activity fit) and the score engine (priorities and
// archetype match). Weights are relative priorities in [0,1].

// favoredThreshold marks a stat as activity-favored; favored stats get their
// floor raised during armor selection.
const favoredThreshold = 0.8

var activityStatWeights = map[model.Activity]map[model.Stat]float64{
	model.ActivityGeneral: {
		model.StatMobility:   0.5,
		model.StatResilience: 0.5,
		model.StatRecovery:   0.6,
		model.StatDiscipline: 0.5,
		model.StatIntellect:  0.5,
		model.StatStrength:   0.4,
	},
	model.ActivityRaid: {
		model.StatMobility:   0.3,
		model.StatResilience: 0.6,
		model.StatRecovery:   1.0,
		model.StatDiscipline: 0.8,
		model.StatIntellect:  0.6,
		model.StatStrength:   0.3,
	},
	model.ActivityDungeon: {
		model.StatMobility:   0.4,
		model.StatResilience: 0.8,
		model.StatRecovery:   1.0,
		model.StatDiscipline: 0.6,
		model.StatIntellect:  0.5,
		model.StatStrength:   0.4,
	},
	model.ActivityPvP: {
		model.StatMobility:   1.0,
		model.StatResilience: 0.9,
		model.StatRecovery:   0.7,
		model.StatDiscipline: 0.4,
		model.StatIntellect:  0.5,
		model.StatStrength:   0.4,
	},
	model.ActivityNightfall: {
		model.StatMobility:   0.3,
		model.StatResilience: 1.0,
		model.StatRecovery:   0.8,
		model.StatDiscipline: 0.6,
		model.StatIntellect:  0.5,
		model.StatStrength:   0.4,
	},
	model.ActivityGambit: {
		model.StatMobility:   0.5,
		model.StatResilience: 0.6,
		model.StatRecovery:   0.7,
		model.StatDiscipline: 0.8,
		model.StatIntellect:  0.6,
		model.StatStrength:   0.5,
	},
	model.ActivityTrials: {
		model.StatMobility:   1.0,
		model.StatResilience: 0.9,
		model.StatRecovery:   0.8,
		model.StatDiscipline: 0.4,
		model.StatIntellect:  0.6,
		model.StatStrength:   0.3,
	},
}

// StatWeights returns the stat-priority table for an activity. Unknown
// activities fall back to the general table. The returned map is a copy.
func StatWeights(a model.Activity) map[model.Stat]float64 {
	weights, ok := activityStatWeights[a]
	if !ok {
		weights = activityStatWeights[model.ActivityGeneral]
	}
	out := make(map[model.Stat]float64, len(weights))
	for s, w := range weights {
		out[s] = w
	}
	return out
}

// FavoredStats returns the stats an activity favors, in canonical stat order.
func FavoredStats(a model.Activity) []model.Stat {
	weights, ok := activityStatWeights[a]
	if !ok {
		weights = activityStatWeights[model.ActivityGeneral]
	}
	var out []model.Stat
	for _, s := range model.Stats() {
		if weights[s] >= favoredThreshold {
			out = append(out, s)
		}
	}
	return out
}

// Weapon archetype preferences: the engagement range each activity wants in
// each slot. Raids want a long-range primary, a short/medium special and
// burst heavy; PvP wants close/medium duel ranges.
var weaponRangePrefs = map[model.Activity]map[model.WeaponSlot]model.RangeClass{
	model.ActivityGeneral: {
		model.SlotKinetic: model.RangeMid,
		model.SlotEnergy:  model.RangeMid,
		model.SlotPower:   model.RangeLong,
	},
	model.ActivityRaid: {
		model.SlotKinetic: model.RangeLong,
		model.SlotEnergy:  model.RangeMid,
		model.SlotPower:   model.RangeLong,
	},
	model.ActivityDungeon: {
		model.SlotKinetic: model.RangeMid,
		model.SlotEnergy:  model.RangeClose,
		model.SlotPower:   model.RangeLong,
	},
	model.ActivityPvP: {
		model.SlotKinetic: model.RangeMid,
		model.SlotEnergy:  model.RangeClose,
		model.SlotPower:   model.RangeClose,
	},
	model.ActivityNightfall: {
		model.SlotKinetic: model.RangeLong,
		model.SlotEnergy:  model.RangeMid,
		model.SlotPower:   model.RangeLong,
	},
	model.ActivityGambit: {
		model.SlotKinetic: model.RangeMid,
		model.SlotEnergy:  model.RangeClose,
		model.SlotPower:   model.RangeLong,
	},
	model.ActivityTrials: {
		model.SlotKinetic: model.RangeMid,
		model.SlotEnergy:  model.RangeClose,
		model.SlotPower:   model.RangeMid,
	},
}

// PreferredRange returns the engagement range an activity prefers for a
// weapon slot. Unknown activities fall back to the general table.
func PreferredRange(a model.Activity, slot model.WeaponSlot) model.RangeClass {
	prefs, ok := weaponRangePrefs[a]
	if !ok {
		prefs = weaponRangePrefs[model.ActivityGeneral]
	}
	return prefs[slot]
}

// Playstyle overrides on top of the activity range preferences: a tank pulls
// the energy slot close, dps wants sustained long-range heavy, speed favors a
// close kinetic for movement duels. Balanced leaves the activity table alone.
var playstyleRangeOverrides = map[model.Playstyle]map[model.WeaponSlot]model.RangeClass{
	model.PlaystyleTank: {
		model.SlotEnergy: model.RangeClose,
	},
	model.PlaystyleDPS: {
		model.SlotPower: model.RangeLong,
	},
	model.PlaystyleSpeed: {
		model.SlotKinetic: model.RangeClose,
	},
}

// PreferredRangeFor applies the playstyle override, falling back to the
// activity preference. The composer selects with this; the score engine
// grades archetype match against the plain activity table.
func PreferredRangeFor(a model.Activity, ps model.Playstyle, slot model.WeaponSlot) model.RangeClass {
	if overrides, ok := playstyleRangeOverrides[ps]; ok {
		if r, ok := overrides[slot]; ok {
			return r
		}
	}
	return PreferredRange(a, slot)
}

// Fixed default elements when the request leaves the element open: chosen by
// playstyle fit, deterministic by construction.
var playstyleElements = map[model.Playstyle]model.Element{
	model.PlaystyleBalanced: model.ElementArc,
	model.PlaystyleTank:     model.ElementVoid,
	model.PlaystyleDPS:      model.ElementSolar,
	model.PlaystyleSpeed:    model.ElementArc,
}

// DefaultElement resolves ElementAny for a playstyle.
func DefaultElement(ps model.Playstyle) model.Element {
	if e, ok := playstyleElements[ps]; ok {
		return e
	}
	return model.ElementArc
}
