package model

// Constraints narrow the catalog the composer may draw from.
type Constraints struct {
	// UseInventoryOnly restricts composition to the Inventory item IDs.
	UseInventoryOnly bool `json:"use_inventory_only"`

	// Inventory is the caller-supplied subset of catalog item IDs available
	// when UseInventoryOnly is set.
	Inventory []string `json:"inventory,omitempty"`
}

// BuildRequest is the canonical, fully-defaulted intent handed to the
// composer. It is constructed by the intent parser (from free text or
// structured filters) and is immutable once composition starts.
type BuildRequest struct {
	Class     Class     `json:"class"`
	Element   Element   `json:"element"`
	Activity  Activity  `json:"activity"`
	Playstyle Playstyle `json:"playstyle"`

	// FocusStats are the stats the user wants maximized, in mention order.
	FocusStats StatSet `json:"focus_stats"`

	// LockedExotic pins a single exotic armor piece or weapon by item ID.
	// Empty means no lock; the field holds at most one ID so only one lock
	// is ever representable.
	LockedExotic string `json:"locked_exotic,omitempty"`

	Constraints Constraints `json:"constraints"`

	// RawText preserves the original free-text input when the request came
	// through the text path; the score engine uses it for keyword bonuses.
	RawText string `json:"raw_text,omitempty"`
}

// Filters is the structured input shape produced by a filter UI. Zero-value
// fields mean "no preference" and are defaulted by the structured parse path.
type Filters struct {
	Class      Class     `json:"class,omitempty"`
	Element    Element   `json:"element,omitempty"`
	Activity   Activity  `json:"activity,omitempty"`
	Playstyle  Playstyle `json:"playstyle,omitempty"`
	FocusStats []Stat    `json:"focus_stats,omitempty"`

	LockedExotic string      `json:"locked_exotic,omitempty"`
	Constraints  Constraints `json:"constraints,omitempty"`
}
