// Package synergy detects beneficial interactions inside a composed build.
// Detection is a pure function of the loadout and stats: every rule is
// evaluated independently and the results are concatenated in rule order, so
// a build's synergy list is deterministic and order-stable.
//
// Rules key off catalog-resolved metadata (range class, rarity, stat tiers),
// never off display-name substrings.
package synergy

import (
	"fmt"

	"github.com/kitforge/kitforge/internal/domain/compose"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// Tier thresholds used by the stat-driven rules.
const (
	// loopTier is the tier both ability stats must reach for an ability
	// loop (grenade/melee uptime feeding each other).
	loopTier = 7

	// fitTier is the tier an activity-favored stat must reach to count as
	// an activity fit.
	fitTier = 7
)

// Detector evaluates the synergy rules. Stateless; safe for concurrent use.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the synergies present in the build, in detection order.
func (d *Detector) Detect(build *model.Build) []model.Synergy {
	if build == nil {
		return nil
	}
	var out []model.Synergy
	if s, ok := weaponRangeCoverage(&build.Loadout); ok {
		out = append(out, s)
	}
	if s, ok := abilityLoop(build.Stats); ok {
		out = append(out, s)
	}
	out = append(out, activityFit(build.Activity, build.Stats)...)
	if s, ok := exoticPresence(&build.Loadout); ok {
		out = append(out, s)
	}
	return out
}

// weaponRangeCoverage fires when the loadout covers both close and long
// engagement ranges.
func weaponRangeCoverage(loadout *model.Loadout) (model.Synergy, bool) {
	var closeName, longName string
	for _, ref := range loadout.Weapons() {
		switch ref.Range {
		case model.RangeClose:
			if closeName == "" {
				closeName = ref.Name
			}
		case model.RangeLong:
			if longName == "" {
				longName = ref.Name
			}
		}
	}
	if closeName == "" || longName == "" {
		return model.Synergy{}, false
	}
	return model.Synergy{
		Type:         model.SynergyWeapon,
		Strength:     model.StrengthMedium,
		Participants: []string{closeName, longName},
		Description:  "weapons cover both close and long engagement ranges",
	}, true
}

// abilityLoop fires when discipline and strength both reach high tiers:
// grenade and melee energy feed each other.
func abilityLoop(stats model.StatBlock) (model.Synergy, bool) {
	if stats.Tier(model.StatDiscipline) < loopTier || stats.Tier(model.StatStrength) < loopTier {
		return model.Synergy{}, false
	}
	return model.Synergy{
		Type:     model.SynergyStat,
		Strength: model.StrengthHigh,
		Participants: []string{
			string(model.StatDiscipline),
			string(model.StatStrength),
		},
		Description: "high discipline and strength sustain an ability loop",
	}, true
}

// activityFit fires once per activity-favored stat at high tier.
func activityFit(activity model.Activity, stats model.StatBlock) []model.Synergy {
	var out []model.Synergy
	for _, s := range compose.FavoredStats(activity) {
		if stats.Tier(s) < fitTier {
			continue
		}
		out = append(out, model.Synergy{
			Type:         model.SynergyActivity,
			Strength:     model.StrengthMedium,
			Participants: []string{string(s)},
			Description:  fmt.Sprintf("%s tier %d suits %s", s, stats.Tier(s), activity),
		})
	}
	return out
}

// exoticPresence fires when any exotic is equipped, independent of which.
func exoticPresence(loadout *model.Loadout) (model.Synergy, bool) {
	var names []string
	for _, ref := range loadout.Weapons() {
		if ref.IsExotic() {
			names = append(names, ref.Name)
		}
	}
	for _, ref := range loadout.ArmorPieces() {
		if ref.IsExotic() {
			names = append(names, ref.Name)
		}
	}
	if len(names) == 0 {
		return model.Synergy{}, false
	}
	return model.Synergy{
		Type:         model.SynergyExotic,
		Strength:     model.StrengthLow,
		Participants: names,
		Description:  "exotic gear anchors the build",
	}, true
}
