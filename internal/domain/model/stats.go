package model

// Stat value model: every stat is an integer in [0,200]. Tier is value/20
// (0-10). Values at or above Breakpoint unlock the stat's secondary effect.
const (
	StatMin    = 0
	StatMax    = 200
	TierSize   = 20
	Breakpoint = 100
)

// StatBlock holds a value for each of the six stats.
type StatBlock struct {
	Mobility   int `json:"mobility"`
	Resilience int `json:"resilience"`
	Recovery   int `json:"recovery"`
	Discipline int `json:"discipline"`
	Intellect  int `json:"intellect"`
	Strength   int `json:"strength"`
}

// Get returns the value for stat s, or 0 for an unknown stat.
func (b StatBlock) Get(s Stat) int {
	switch s {
	case StatMobility:
		return b.Mobility
	case StatResilience:
		return b.Resilience
	case StatRecovery:
		return b.Recovery
	case StatDiscipline:
		return b.Discipline
	case StatIntellect:
		return b.Intellect
	case StatStrength:
		return b.Strength
	default:
		return 0
	}
}

// Set assigns the value for stat s. Unknown stats are ignored.
func (b *StatBlock) Set(s Stat, v int) {
	switch s {
	case StatMobility:
		b.Mobility = v
	case StatResilience:
		b.Resilience = v
	case StatRecovery:
		b.Recovery = v
	case StatDiscipline:
		b.Discipline = v
	case StatIntellect:
		b.Intellect = v
	case StatStrength:
		b.Strength = v
	}
}

// Add adds v to stat s.
func (b *StatBlock) Add(s Stat, v int) {
	b.Set(s, b.Get(s)+v)
}

// Merge adds every stat of other into b.
func (b *StatBlock) Merge(other StatBlock) {
	for _, s := range Stats() {
		b.Add(s, other.Get(s))
	}
}

// Clamp bounds every stat to [StatMin, StatMax].
func (b *StatBlock) Clamp() {
	for _, s := range Stats() {
		v := b.Get(s)
		if v < StatMin {
			v = StatMin
		}
		if v > StatMax {
			v = StatMax
		}
		b.Set(s, v)
	}
}

// Tier returns the tier bucket (0-10) for stat s.
func (b StatBlock) Tier(s Stat) int {
	return b.Get(s) / TierSize
}

// SecondaryActive reports whether stat s has crossed the breakpoint and its
// secondary effect is active.
func (b StatBlock) SecondaryActive(s Stat) bool {
	return b.Get(s) >= Breakpoint
}

// Breakpoints returns the secondary-effect flag for every stat, keyed by
// stat name, for rendering consumers.
func (b StatBlock) Breakpoints() map[Stat]bool {
	flags := make(map[Stat]bool, len(Stats()))
	for _, s := range Stats() {
		flags[s] = b.SecondaryActive(s)
	}
	return flags
}

// Total returns the sum of all six stat values.
func (b StatBlock) Total() int {
	total := 0
	for _, s := range Stats() {
		total += b.Get(s)
	}
	return total
}
