// Package compose selects a legal, internally-consistent loadout for a
// BuildRequest from a catalog view and derives its stat totals.
//
// Composition is deterministic: identical (request, view) inputs always
// produce identical builds. Candidate listings come from the view sorted by
// item ID and every selection rule is total-ordered, so there is no hidden
// randomness for the alternatives generator or tests to fight.
package compose

import (
	"fmt"

	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// Default investment targets for armor stat contributions. Floors compose
// with max, never additively: a focused, activity-favored stat targets
// focusTarget, not the sum.
const (
	defaultBaseFloor    = 40
	defaultFavoredFloor = 100
	defaultFocusTarget  = 140

	armorSlotCount = 5
)

// Composer builds loadouts. Safe for concurrent use; Compose has no state
// beyond its configuration.
type Composer struct {
	baseFloor    int
	favoredFloor int
	focusTarget  int
	defaultClass model.Class
}

// New creates a Composer with configuration options.
func New(opts ...Option) *Composer {
	c := &Composer{
		baseFloor:    defaultBaseFloor,
		favoredFloor: defaultFavoredFloor,
		focusTarget:  defaultFocusTarget,
		defaultClass: model.ClassTitan,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose selects one legal Build for the request. Catalog gaps leave slots
// empty for scoring to penalize; only a locked exotic that cannot be
// honored (missing, wrong class, or conflicting with another slot) errors.
func (c *Composer) Compose(req model.BuildRequest, view catalog.View) (*model.Build, error) {
	if req.Constraints.UseInventoryOnly {
		view = view.Restrict(req.Constraints.Inventory)
	}

	class := req.Class
	if class == model.ClassAny {
		class = c.defaultClass
	}
	element := req.Element
	if element == model.ElementAny {
		element = DefaultElement(req.Playstyle)
	}

	var locked model.Item
	if req.LockedExotic != "" {
		item, ok := view.Item(req.LockedExotic)
		if !ok {
			return nil, fmt.Errorf("compose: %w: %s", ErrLockedItemNotFound, req.LockedExotic)
		}
		if item.Category == model.CategoryArmor &&
			item.Class != model.ClassAny && item.Class != class {
			return nil, fmt.Errorf("compose: %w: %s", ErrLockedClassMismatch, item.ID)
		}
		locked = item
	}

	build := &model.Build{
		Class:    class,
		Activity: req.Activity,
	}

	// Subclass: the ability kit for the resolved class and element. A
	// missing kit is a catalog gap, not an error.
	if kit, ok := view.Subclass(class, element); ok {
		build.Loadout.Subclass = kit
	}

	if err := c.selectWeapons(req, view, locked, &build.Loadout); err != nil {
		return nil, err
	}
	if err := c.selectArmor(req, class, view, locked, &build.Loadout); err != nil {
		return nil, err
	}
	c.selectMods(req, view, &build.Loadout)

	build.Stats = c.deriveStats(req, &build.Loadout)
	build.Breakpoints = build.Stats.Breakpoints()
	return build, nil
}

// selectWeapons fills the three weapon slots. At most one exotic weapon is
// equipped; a locked exotic weapon consumes that budget up front.
func (c *Composer) selectWeapons(req model.BuildRequest, view catalog.View, locked model.Item, loadout *model.Loadout) error {
	exoticBudget := 1
	lockHolds := false
	lockedSlot := model.WeaponSlot("")
	if locked.Category == model.CategoryWeapon {
		lockedSlot = locked.WeaponSlot
		if locked.IsExotic() {
			exoticBudget = 0
			lockHolds = true
		}
	}

	for _, slot := range model.WeaponSlots() {
		if slot == lockedSlot {
			ref := locked.Ref()
			loadout.SetWeapon(slot, &ref)
			continue
		}
		pick, found, err := pickWeapon(view.WeaponsBySlot(slot), req, slot, exoticBudget > 0, lockHolds)
		if err != nil {
			return fmt.Errorf("compose: weapon slot %s: %w", slot, err)
		}
		if !found {
			continue // catalog gap: slot left empty
		}
		if pick.IsExotic() {
			exoticBudget--
		}
		ref := pick.Ref()
		loadout.SetWeapon(slot, &ref)
	}
	return nil
}

// pickWeapon chooses the best candidate for a slot: preferred engagement
// range first, then an exotic while the budget allows, then element match,
// then lowest item ID. With the budget spent, exotics are excluded. An
// exotic-only slot is then a conflict when a locked exotic holds the budget,
// and an ordinary catalog gap when a greedy pick spent it.
func pickWeapon(candidates []model.Item, req model.BuildRequest, slot model.WeaponSlot, allowExotic, lockHolds bool) (model.Item, bool, error) {
	if len(candidates) == 0 {
		return model.Item{}, false, nil
	}
	preferred := PreferredRangeFor(req.Activity, req.Playstyle, slot)

	var best model.Item
	haveBest := false
	sawNonExotic := false
	for _, cand := range candidates {
		if !cand.IsExotic() {
			sawNonExotic = true
		} else if !allowExotic {
			continue
		}
		if !haveBest || weaponLess(cand, best, preferred, req.Element, allowExotic) {
			best = cand
			haveBest = true
		}
	}
	if !haveBest {
		if !sawNonExotic && lockHolds {
			return model.Item{}, false, ErrExoticConflict
		}
		return model.Item{}, false, nil
	}
	return best, true, nil
}

// weaponLess reports whether a ranks ahead of b for the slot.
func weaponLess(a, b model.Item, preferred model.RangeClass, element model.Element, allowExotic bool) bool {
	if ra, rb := a.Range == preferred, b.Range == preferred; ra != rb {
		return ra
	}
	if allowExotic {
		if ea, eb := a.IsExotic(), b.IsExotic(); ea != eb {
			return ea
		}
	}
	if element != model.ElementAny {
		if ma, mb := a.Element == element, b.Element == element; ma != mb {
			return ma
		}
	}
	return a.ID < b.ID
}

// selectArmor fills the five armor slots with the same one-exotic budget
// discipline as weapons.
func (c *Composer) selectArmor(req model.BuildRequest, class model.Class, view catalog.View, locked model.Item, loadout *model.Loadout) error {
	exoticBudget := 1
	lockHolds := false
	lockedSlot := model.ArmorSlot("")
	if locked.Category == model.CategoryArmor {
		lockedSlot = locked.ArmorSlot
		if locked.IsExotic() {
			exoticBudget = 0
			lockHolds = true
		}
	}

	for _, slot := range model.ArmorSlots() {
		if slot == lockedSlot {
			ref := locked.Ref()
			loadout.SetArmor(slot, &ref)
			continue
		}
		pick, found, err := pickArmor(view.ArmorBySlotAndClass(slot, class), exoticBudget > 0, lockHolds)
		if err != nil {
			return fmt.Errorf("compose: armor slot %s: %w", slot, err)
		}
		if !found {
			continue // catalog gap: slot left empty
		}
		if pick.IsExotic() {
			exoticBudget--
		}
		ref := pick.Ref()
		loadout.SetArmor(slot, &ref)
	}
	return nil
}

// pickArmor chooses an exotic while the budget allows, else the lowest-ID
// legendary-or-below piece. An only-exotic slot with the budget held by a
// locked exotic is a conflict; held by a greedy pick it is a catalog gap.
func pickArmor(candidates []model.Item, allowExotic, lockHolds bool) (model.Item, bool, error) {
	if len(candidates) == 0 {
		return model.Item{}, false, nil
	}
	var best model.Item
	haveBest := false
	sawNonExotic := false
	for _, cand := range candidates {
		if !cand.IsExotic() {
			sawNonExotic = true
		} else if !allowExotic {
			continue
		}
		if !haveBest || armorLess(cand, best, allowExotic) {
			best = cand
			haveBest = true
		}
	}
	if !haveBest {
		if !sawNonExotic && lockHolds {
			return model.Item{}, false, ErrExoticConflict
		}
		return model.Item{}, false, nil
	}
	return best, true, nil
}

// armorLess reports whether a ranks ahead of b.
func armorLess(a, b model.Item, allowExotic bool) bool {
	if allowExotic {
		if ea, eb := a.IsExotic(), b.IsExotic(); ea != eb {
			return ea
		}
	}
	return a.ID < b.ID
}

// selectMods attaches one stat mod per focus stat, distributed round-robin
// across the occupied armor slots in canonical order.
func (c *Composer) selectMods(req model.BuildRequest, view catalog.View, loadout *model.Loadout) {
	var occupied []model.ArmorSlot
	for _, slot := range model.ArmorSlots() {
		if loadout.Armor(slot) != nil {
			occupied = append(occupied, slot)
		}
	}
	if len(occupied) == 0 {
		return
	}
	for i, stat := range req.FocusStats.Stats() {
		mods := view.ModsForStat(stat)
		if len(mods) == 0 {
			continue
		}
		item := mods[0] // sorted by ID; first is the canonical pick
		slot := occupied[i%len(occupied)]
		if loadout.Mods == nil {
			loadout.Mods = make(map[model.ArmorSlot][]model.Mod)
		}
		loadout.Mods[slot] = append(loadout.Mods[slot], model.Mod{
			ID:     item.ID,
			Name:   item.Name,
			Boost:  item.Boost,
			Amount: item.BoostAmount,
		})
	}
}

// deriveStats sums per-slot armor contributions and mod bonuses, clamped to
// the stat range. Each occupied armor slot contributes target/5 per stat,
// where target is the max of the base floor, the activity floor for favored
// stats, and the focus target for focus stats.
func (c *Composer) deriveStats(req model.BuildRequest, loadout *model.Loadout) model.StatBlock {
	targets := c.statTargets(req)

	var stats model.StatBlock
	occupied := len(loadout.ArmorPieces())
	for _, s := range model.Stats() {
		perSlot := targets.Get(s) / armorSlotCount
		stats.Set(s, perSlot*occupied)
	}
	for _, mods := range loadout.Mods {
		for _, mod := range mods {
			stats.Add(mod.Boost, mod.Amount)
		}
	}
	stats.Clamp()
	return stats
}

// statTargets computes the per-stat investment targets for a request.
func (c *Composer) statTargets(req model.BuildRequest) model.StatBlock {
	var targets model.StatBlock
	for _, s := range model.Stats() {
		targets.Set(s, c.baseFloor)
	}
	for _, s := range FavoredStats(req.Activity) {
		if targets.Get(s) < c.favoredFloor {
			targets.Set(s, c.favoredFloor)
		}
	}
	for _, s := range req.FocusStats.Stats() {
		if targets.Get(s) < c.focusTarget {
			targets.Set(s, c.focusTarget)
		}
	}
	return targets
}
