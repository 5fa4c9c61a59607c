package intent

import "github.com/kitforge/kitforge/internal/domain/model"

// Keyword tables. Each category resolves independently; class, element,
// activity and playstyle are first-match-wins, stat focus is many-match.
// Tokens are matched lowercase after whitespace tokenization.

var classKeywords = map[string]model.Class{
	"titan":   model.ClassTitan,
	"hunter":  model.ClassHunter,
	"warlock": model.ClassWarlock,
}

var elementKeywords = map[string]model.Element{
	"arc":       model.ElementArc,
	"lightning": model.ElementArc,
	"solar":     model.ElementSolar,
	"fire":      model.ElementSolar,
	"void":      model.ElementVoid,
	"stasis":    model.ElementStasis,
	"ice":       model.ElementStasis,
	"strand":    model.ElementStrand,
}

var activityKeywords = map[string]model.Activity{
	"raid":      model.ActivityRaid,
	"raids":     model.ActivityRaid,
	"raiding":   model.ActivityRaid,
	"dungeon":   model.ActivityDungeon,
	"dungeons":  model.ActivityDungeon,
	"pvp":       model.ActivityPvP,
	"crucible":  model.ActivityPvP,
	"nightfall": model.ActivityNightfall,
	"gambit":    model.ActivityGambit,
	"trials":    model.ActivityTrials,
}

var playstyleKeywords = map[string]model.Playstyle{
	"balanced":    model.PlaystyleBalanced,
	"tank":        model.PlaystyleTank,
	"tanky":       model.PlaystyleTank,
	"survivable":  model.PlaystyleTank,
	"dps":         model.PlaystyleDPS,
	"damage":      model.PlaystyleDPS,
	"boss":        model.PlaystyleDPS,
	"speed":       model.PlaystyleSpeed,
	"speedrun":    model.PlaystyleSpeed,
	"speedrunner": model.PlaystyleSpeed,
	"fast":        model.PlaystyleSpeed,
}

var statKeywords = map[string]model.Stat{
	"mobility":   model.StatMobility,
	"mobile":     model.StatMobility,
	"resilience": model.StatResilience,
	"resilient":  model.StatResilience,
	"tough":      model.StatResilience,
	"recovery":   model.StatRecovery,
	"regen":      model.StatRecovery,
	"healing":    model.StatRecovery,
	"discipline": model.StatDiscipline,
	"grenade":    model.StatDiscipline,
	"grenades":   model.StatDiscipline,
	"intellect":  model.StatIntellect,
	"super":      model.StatIntellect,
	"strength":   model.StatStrength,
	"melee":      model.StatStrength,
}
