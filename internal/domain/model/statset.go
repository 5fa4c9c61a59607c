package model

import "encoding/json"

// StatSet is an insertion-ordered set of stats. A BuildRequest always carries
// a valid StatSet, possibly empty; downstream code never needs to re-check
// for nil because the zero value is usable.
type StatSet struct {
	order []Stat
}

// NewStatSet builds a set from stats, dropping duplicates and unknown names
// while preserving first-seen order.
func NewStatSet(stats ...Stat) StatSet {
	var set StatSet
	for _, s := range stats {
		set.Add(s)
	}
	return set
}

// Add appends s if it is a known stat not already present.
func (set *StatSet) Add(s Stat) {
	if !ValidStat(s) || set.Has(s) {
		return
	}
	set.order = append(set.order, s)
}

// Has reports whether s is in the set.
func (set StatSet) Has(s Stat) bool {
	for _, have := range set.order {
		if have == s {
			return true
		}
	}
	return false
}

// Stats returns the members in insertion order. The returned slice is a copy.
func (set StatSet) Stats() []Stat {
	out := make([]Stat, len(set.order))
	copy(out, set.order)
	return out
}

// Len returns the number of members.
func (set StatSet) Len() int {
	return len(set.order)
}

// IsEmpty reports whether the set has no members.
func (set StatSet) IsEmpty() bool {
	return len(set.order) == 0
}

// Reversed returns a new set with the insertion order reversed. Used by the
// alternatives generator to perturb requests without randomness.
func (set StatSet) Reversed() StatSet {
	out := StatSet{order: make([]Stat, len(set.order))}
	for i, s := range set.order {
		out.order[len(set.order)-1-i] = s
	}
	return out
}

// MarshalJSON encodes the set as an ordered array of stat names.
func (set StatSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Stats())
}

// UnmarshalJSON decodes an array of stat names, dropping duplicates and
// unknown entries.
func (set *StatSet) UnmarshalJSON(data []byte) error {
	var names []Stat
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*set = NewStatSet(names...)
	return nil
}
