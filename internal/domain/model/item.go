package model

// Item is a catalog item definition. Classification fields (category, slot,
// range class, boosted stat) are resolved once at catalog-load time so the
// engine never derives mechanics from display names.
type Item struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`

	// Class restricts armor to a single class; ClassAny fits everyone.
	Class Class `json:"class,omitempty" yaml:"class,omitempty"`

	// Element applies to weapons and subclass kits.
	Element Element `json:"element,omitempty" yaml:"element,omitempty"`

	Rarity Rarity `json:"rarity" yaml:"rarity"`

	// WeaponSlot is set for weapons only.
	WeaponSlot WeaponSlot `json:"weapon_slot,omitempty" yaml:"weapon_slot,omitempty"`

	// ArmorSlot is set for armor only.
	ArmorSlot ArmorSlot `json:"armor_slot,omitempty" yaml:"armor_slot,omitempty"`

	// Archetype and Range are set for weapons, e.g. "scout rifle" / long.
	Archetype string     `json:"archetype,omitempty" yaml:"archetype,omitempty"`
	Range     RangeClass `json:"range,omitempty" yaml:"range,omitempty"`

	// Boost and BoostAmount are set for mods: the stat the mod raises and
	// by how much.
	Boost       Stat `json:"boost,omitempty" yaml:"boost,omitempty"`
	BoostAmount int  `json:"boost_amount,omitempty" yaml:"boost_amount,omitempty"`
}

// IsExotic reports whether the item is exotic-tier.
func (i Item) IsExotic() bool {
	return i.Rarity == RarityExotic
}

// Ref returns the slim reference stored in loadout slots.
func (i Item) Ref() ItemRef {
	return ItemRef{
		ID:        i.ID,
		Name:      i.Name,
		Rarity:    i.Rarity,
		Element:   i.Element,
		Archetype: i.Archetype,
		Range:     i.Range,
	}
}

// ItemRef references an equipped item. It carries just enough metadata for
// synergy detection and rendering without another catalog round trip.
type ItemRef struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Rarity    Rarity     `json:"rarity"`
	Element   Element    `json:"element,omitempty"`
	Archetype string     `json:"archetype,omitempty"`
	Range     RangeClass `json:"range,omitempty"`
}

// IsExotic reports whether the referenced item is exotic-tier.
func (r ItemRef) IsExotic() bool {
	return r.Rarity == RarityExotic
}

// Mod is a stat-boosting armor mod attached to a slot.
type Mod struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Boost  Stat   `json:"boost"`
	Amount int    `json:"amount"`
}

// Subclass describes the ability kit chosen for a build.
type Subclass struct {
	Element      Element  `json:"element" yaml:"element"`
	Name         string   `json:"name" yaml:"name"`
	Super        string   `json:"super" yaml:"super"`
	Grenade      string   `json:"grenade" yaml:"grenade"`
	Melee        string   `json:"melee" yaml:"melee"`
	ClassAbility string   `json:"class_ability" yaml:"class_ability"`
	Aspects      []string `json:"aspects" yaml:"aspects"`
	Fragments    []string `json:"fragments" yaml:"fragments"`
}
