// Package catalog defines the read-only item catalog the engine composes
// from. The engine never fetches or mutates catalog data; it consumes an
// immutable Snapshot built by an adapter (file loader, test fixture).
package catalog

import (
	"sort"

	"github.com/kitforge/kitforge/internal/domain/model"
)

// View is the read-only lookup boundary consumed by the composer and the
// score engine. Implementations must be safe for concurrent readers and
// must return copies so callers can never mutate shared state.
type View interface {
	// WeaponsBySlot returns the weapons for a slot, sorted by item ID.
	WeaponsBySlot(slot model.WeaponSlot) []model.Item

	// ArmorBySlotAndClass returns the armor for a slot wearable by class,
	// sorted by item ID. Class-agnostic armor (ClassAny) is included.
	ArmorBySlotAndClass(slot model.ArmorSlot, class model.Class) []model.Item

	// ItemsByCategory returns all items of a category, sorted by item ID.
	ItemsByCategory(cat model.Category) []model.Item

	// ModsForStat returns the mods boosting a stat, sorted by item ID.
	ModsForStat(stat model.Stat) []model.Item

	// Item looks an item up by ID.
	Item(id string) (model.Item, bool)

	// IsExotic reports whether the item with the given ID is exotic-tier.
	// Unknown IDs are not exotic.
	IsExotic(id string) bool

	// Subclass returns the ability kit for a class and element.
	Subclass(class model.Class, element model.Element) (model.Subclass, bool)

	// Restrict derives a view limited to the given item IDs. Subclass kits
	// are not restricted; they are abilities, not inventory.
	Restrict(ids []string) View

	// Len returns the number of items in the view.
	Len() int
}

// subclassKey identifies a subclass kit by class and element.
type subclassKey struct {
	class   model.Class
	element model.Element
}

// Snapshot is an immutable in-memory View. Build one with NewSnapshot; all
// index slices are sorted at construction so lookups are deterministic.
type Snapshot struct {
	items      map[string]model.Item
	byWeapon   map[model.WeaponSlot][]string
	byArmor    map[model.ArmorSlot][]string
	byCategory map[model.Category][]string
	byBoost    map[model.Stat][]string
	subclasses map[subclassKey]model.Subclass
}

// SubclassKit pairs a subclass definition with the class it belongs to.
type SubclassKit struct {
	Class    model.Class    `json:"class" yaml:"class"`
	Subclass model.Subclass `json:"subclass" yaml:"subclass"`
}

// NewSnapshot indexes items and subclass kits into an immutable view.
// Later duplicates of an item ID win, mirroring a load that applies
// overrides in file order.
func NewSnapshot(items []model.Item, kits []SubclassKit) *Snapshot {
	s := &Snapshot{
		items:      make(map[string]model.Item, len(items)),
		byWeapon:   make(map[model.WeaponSlot][]string),
		byArmor:    make(map[model.ArmorSlot][]string),
		byCategory: make(map[model.Category][]string),
		byBoost:    make(map[model.Stat][]string),
		subclasses: make(map[subclassKey]model.Subclass, len(kits)),
	}
	for _, it := range items {
		s.items[it.ID] = it
	}
	for id, it := range s.items {
		s.byCategory[it.Category] = append(s.byCategory[it.Category], id)
		switch it.Category {
		case model.CategoryWeapon:
			s.byWeapon[it.WeaponSlot] = append(s.byWeapon[it.WeaponSlot], id)
		case model.CategoryArmor:
			s.byArmor[it.ArmorSlot] = append(s.byArmor[it.ArmorSlot], id)
		case model.CategoryMod:
			s.byBoost[it.Boost] = append(s.byBoost[it.Boost], id)
		}
	}
	for _, ids := range s.byWeapon {
		sort.Strings(ids)
	}
	for _, ids := range s.byArmor {
		sort.Strings(ids)
	}
	for _, ids := range s.byCategory {
		sort.Strings(ids)
	}
	for _, ids := range s.byBoost {
		sort.Strings(ids)
	}
	for _, kit := range kits {
		key := subclassKey{class: kit.Class, element: kit.Subclass.Element}
		s.subclasses[key] = kit.Subclass
	}
	return s
}

// WeaponsBySlot implements View.
func (s *Snapshot) WeaponsBySlot(slot model.WeaponSlot) []model.Item {
	return s.collect(s.byWeapon[slot], nil)
}

// ArmorBySlotAndClass implements View.
func (s *Snapshot) ArmorBySlotAndClass(slot model.ArmorSlot, class model.Class) []model.Item {
	return s.collect(s.byArmor[slot], func(it model.Item) bool {
		return it.Class == model.ClassAny || it.Class == class
	})
}

// ItemsByCategory implements View.
func (s *Snapshot) ItemsByCategory(cat model.Category) []model.Item {
	return s.collect(s.byCategory[cat], nil)
}

// ModsForStat implements View.
func (s *Snapshot) ModsForStat(stat model.Stat) []model.Item {
	return s.collect(s.byBoost[stat], nil)
}

// Item implements View.
func (s *Snapshot) Item(id string) (model.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// IsExotic implements View.
func (s *Snapshot) IsExotic(id string) bool {
	it, ok := s.items[id]
	return ok && it.IsExotic()
}

// Subclass implements View.
func (s *Snapshot) Subclass(class model.Class, element model.Element) (model.Subclass, bool) {
	kit, ok := s.subclasses[subclassKey{class: class, element: element}]
	if !ok {
		return model.Subclass{}, false
	}
	// Copy the slices so callers cannot reach the shared kit.
	kit.Aspects = append([]string(nil), kit.Aspects...)
	kit.Fragments = append([]string(nil), kit.Fragments...)
	return kit, true
}

// Restrict implements View.
func (s *Snapshot) Restrict(ids []string) View {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	items := make([]model.Item, 0, len(ids))
	for id := range allowed {
		if it, ok := s.items[id]; ok {
			items = append(items, it)
		}
	}
	kits := make([]SubclassKit, 0, len(s.subclasses))
	for key, kit := range s.subclasses {
		kits = append(kits, SubclassKit{Class: key.class, Subclass: kit})
	}
	return NewSnapshot(items, kits)
}

// Len implements View.
func (s *Snapshot) Len() int {
	return len(s.items)
}

// collect resolves ids to item copies, applying an optional filter.
func (s *Snapshot) collect(ids []string, keep func(model.Item) bool) []model.Item {
	out := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		it := s.items[id]
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}
