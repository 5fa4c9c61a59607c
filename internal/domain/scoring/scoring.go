// Package scoring grades composed builds with a weighted multi-factor score.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kitforge/kitforge/internal/domain/compose"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// Default scoring configuration constants.
const (
	maxScoreValue = 100

	// Category internals.
	synergyBase     = 40 // zero synergies still score low, not zero
	synergyPerHit   = 15
	modBase         = 30
	modPerMod       = 14
	modCap          = 5 // mods past this add nothing
	archetypeBonus  = 15
	statFitCap      = 55
	prefBaseline    = 60 // neutral userPreference baseline
	prefFocusHigh   = 15 // focus stat at tier >= prefHighTier
	prefFocusMid    = 5
	prefFocusMiss   = 10 // deducted per focus stat left at low tier
	prefTextBonus   = 5
	prefHighTier    = 8
	prefMidTier     = 6
	degradedTotal   = 50
	degradedTier    = "unknown"
	strengthCutoff  = 85
	weaknessCutoff  = 50
	exoticBothScore = 100
	exoticOneScore  = 70
	exoticNoneScore = 40
	exoticDupeScore = 10 // double exotic in one category: sharp penalty
)

// Default category weights; they sum to 1.0.
var defaultWeights = map[model.ScoreCategory]float64{
	model.CategoryStatDistribution:     0.25,
	model.CategorySynergy:              0.20,
	model.CategoryExoticUtility:        0.15,
	model.CategoryModEffectiveness:     0.15,
	model.CategoryActivityOptimization: 0.15,
	model.CategoryUserPreference:       0.10,
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCategoryWeightsFromConfig sets category weights from a configuration
// map. Unknown categories and non-positive weights are ignored; the final
// set is normalized to sum to 1.0.
func WithCategoryWeightsFromConfig(weights map[string]float64) Option {
	return func(e *Engine) {
		merged := make(map[model.ScoreCategory]float64, len(defaultWeights))
		for cat, w := range defaultWeights {
			merged[cat] = w
		}
		changed := false
		for name, w := range weights {
			cat := model.ScoreCategory(name)
			if _, known := merged[cat]; known && w > 0 {
				merged[cat] = w
				changed = true
			}
		}
		if !changed {
			return
		}
		var sum float64
		for _, w := range merged {
			sum += w
		}
		for cat, w := range merged {
			merged[cat] = w / sum
		}
		e.weights = merged
	}
}

// Engine computes build scores. Stateless beyond configuration; safe for
// concurrent use.
type Engine struct {
	weights map[model.ScoreCategory]float64
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.weights == nil {
		e.weights = defaultWeights
	}
	return e
}

// Score computes the weighted multi-factor score for a build. It never
// panics out: an unexpected failure mid-computation yields a degraded
// result (total 50, tier "unknown", error set) so the caller can still
// render something.
func (e *Engine) Score(build *model.Build, req model.BuildRequest) (result model.ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.ScoreResult{
				Total:     degradedTotal,
				Breakdown: map[model.ScoreCategory]int{},
				Tier:      degradedTier,
				Err:       fmt.Sprintf("scoring failed: %v", r),
			}
		}
	}()

	breakdown := map[model.ScoreCategory]int{
		model.CategoryStatDistribution:     statDistribution(build, req.Activity),
		model.CategorySynergy:              synergyScore(build),
		model.CategoryExoticUtility:        exoticUtility(build),
		model.CategoryModEffectiveness:     modEffectiveness(build),
		model.CategoryActivityOptimization: activityOptimization(build, req.Activity),
		model.CategoryUserPreference:       userPreference(build, req),
	}

	var weighted float64
	for cat, score := range breakdown {
		weighted += float64(score) * e.weights[cat]
	}
	total := clampScore(int(math.Round(weighted)))

	result = model.ScoreResult{
		Total:     total,
		Breakdown: breakdown,
		Tier:      letterTier(total),
	}
	result.Strengths, result.Weaknesses = strengthsAndWeaknesses(breakdown, build)
	result.Recommendations = recommendations(breakdown)
	return result
}

// statDistribution rewards hitting tiers the activity cares about: per-stat
// tiers weighted by the activity's stat priorities, averaged onto [0,100].
func statDistribution(build *model.Build, activity model.Activity) int {
	weights := compose.StatWeights(activity)
	var sum, weightSum float64
	for _, s := range model.Stats() {
		w := weights[s]
		sum += float64(build.Stats.Tier(s)*10) * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return clampScore(int(math.Round(sum / weightSum)))
}

// synergyScore is a low base plus an additive bonus per detected synergy,
// saturating at 100.
func synergyScore(build *model.Build) int {
	return clampScore(synergyBase + synergyPerHit*len(build.Synergies))
}

// exoticUtility rewards exactly one exotic armor piece and one exotic
// weapon. A double exotic in either category should have been prevented by
// the composer; it is penalized sharply here anyway.
func exoticUtility(build *model.Build) int {
	weapons := build.Loadout.ExoticWeapons()
	armor := build.Loadout.ExoticArmor()
	switch {
	case weapons > 1 || armor > 1:
		return exoticDupeScore
	case weapons == 1 && armor == 1:
		return exoticBothScore
	case weapons == 1 || armor == 1:
		return exoticOneScore
	default:
		return exoticNoneScore
	}
}

// modEffectiveness scales with mod count up to the cap, then stays flat.
func modEffectiveness(build *model.Build) int {
	count := build.Loadout.ModCount()
	if count > modCap {
		count = modCap
	}
	return clampScore(modBase + modPerMod*count)
}

// activityOptimization sums a weapon archetype-match bonus and a favored
// stat-tier bonus.
func activityOptimization(build *model.Build, activity model.Activity) int {
	score := 0
	for _, slot := range model.WeaponSlots() {
		ref := build.Loadout.Weapon(slot)
		if ref != nil && ref.Range == compose.PreferredRange(activity, slot) {
			score += archetypeBonus
		}
	}
	weights := compose.StatWeights(activity)
	var fit float64
	for _, s := range compose.FavoredStats(activity) {
		fit += float64(build.Stats.Tier(s)) * weights[s] * 5
	}
	if fit > statFitCap {
		fit = statFitCap
	}
	return clampScore(score + int(math.Round(fit)))
}

// userPreference rewards focus stats that reached high tiers, plus keyword
// bonuses when the original free-text request is available.
func userPreference(build *model.Build, req model.BuildRequest) int {
	score := prefBaseline
	for _, s := range req.FocusStats.Stats() {
		switch tier := build.Stats.Tier(s); {
		case tier >= prefHighTier:
			score += prefFocusHigh
		case tier >= prefMidTier:
			score += prefFocusMid
		default:
			score -= prefFocusMiss
		}
	}
	if text := strings.ToLower(req.RawText); text != "" {
		if strings.Contains(text, "tank") && build.Stats.Tier(model.StatResilience) >= prefMidTier {
			score += prefTextBonus
		}
		if (strings.Contains(text, "speed") || strings.Contains(text, "fast")) &&
			build.Stats.Tier(model.StatMobility) >= prefMidTier {
			score += prefTextBonus
		}
		if strings.Contains(text, "ability") && build.Stats.Tier(model.StatDiscipline) >= prefMidTier {
			score += prefTextBonus
		}
	}
	return clampScore(score)
}

// letterTier maps a total to the fixed threshold ladder.
func letterTier(total int) string {
	switch {
	case total >= 90:
		return "S"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	case total >= 50:
		return "D"
	default:
		return "F"
	}
}

// strengthsAndWeaknesses derives human-readable notes from the breakdown.
// Empty equipment slots are surfaced as a weakness regardless of scores.
func strengthsAndWeaknesses(breakdown map[model.ScoreCategory]int, build *model.Build) (strengths, weaknesses []string) {
	for _, cat := range model.ScoreCategories() {
		score := breakdown[cat]
		switch {
		case score >= strengthCutoff:
			strengths = append(strengths, categoryNotes[cat].strength)
		case score <= weaknessCutoff:
			weaknesses = append(weaknesses, categoryNotes[cat].weakness)
		}
	}
	empty := (3 - len(build.Loadout.Weapons())) + (5 - len(build.Loadout.ArmorPieces()))
	if empty > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d equipment slots are empty under the current constraints", empty))
	}
	return strengths, weaknesses
}

// recommendations come from the single lowest-scoring category only, to
// avoid overwhelming the caller. Ties break on canonical category order.
func recommendations(breakdown map[model.ScoreCategory]int) []string {
	cats := model.ScoreCategories()
	sort.SliceStable(cats, func(i, j int) bool {
		return breakdown[cats[i]] < breakdown[cats[j]]
	})
	return []string{categoryNotes[cats[0]].recommendation}
}

// categoryNotes holds the per-category analysis strings.
var categoryNotes = map[model.ScoreCategory]struct {
	strength       string
	weakness       string
	recommendation string
}{
	model.CategoryStatDistribution: {
		strength:       "stat spread hits the tiers this activity rewards",
		weakness:       "stat spread misses the tiers this activity rewards",
		recommendation: "re-invest armor stats toward the activity's favored stats",
	},
	model.CategorySynergy: {
		strength:       "equipped items reinforce each other strongly",
		weakness:       "few synergies between equipped items",
		recommendation: "swap weapons or abilities so their effects chain together",
	},
	model.CategoryExoticUtility: {
		strength:       "exotic slots are used to full effect",
		weakness:       "exotic slots are underused or misused",
		recommendation: "equip one exotic weapon and one exotic armor piece",
	},
	model.CategoryModEffectiveness: {
		strength:       "mod sockets are working hard for the build",
		weakness:       "mod sockets are mostly empty",
		recommendation: "socket stat mods for the stats the build leans on",
	},
	model.CategoryActivityOptimization: {
		strength:       "weapon ranges and stats match the activity",
		weakness:       "weapon ranges and stats fight the activity",
		recommendation: "bring weapon archetypes the activity favors",
	},
	model.CategoryUserPreference: {
		strength:       "the build delivers on the requested focus",
		weakness:       "the requested focus stats fell short",
		recommendation: "raise the focus stats with targeted mods or different armor",
	},
}

// clampScore bounds a category or total score to [0,100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxScoreValue {
		return maxScoreValue
	}
	return v
}
