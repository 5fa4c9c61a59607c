package forgetool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File permission constants.
const (
	catalogFilePermission = 0600
)

// catalogItem mirrors the catalog file item schema.
type catalogItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Class       string `yaml:"class,omitempty"`
	Element     string `yaml:"element,omitempty"`
	Rarity      string `yaml:"rarity"`
	WeaponSlot  string `yaml:"weapon_slot,omitempty"`
	ArmorSlot   string `yaml:"armor_slot,omitempty"`
	Archetype   string `yaml:"archetype,omitempty"`
	Range       string `yaml:"range,omitempty"`
	Boost       string `yaml:"boost,omitempty"`
	BoostAmount int    `yaml:"boost_amount,omitempty"`
}

// catalogSubclass mirrors the catalog file subclass kit schema.
type catalogSubclass struct {
	Class    string          `yaml:"class"`
	Subclass subclassDetails `yaml:"subclass"`
}

type subclassDetails struct {
	Element      string   `yaml:"element"`
	Name         string   `yaml:"name"`
	Super        string   `yaml:"super"`
	Grenade      string   `yaml:"grenade"`
	Melee        string   `yaml:"melee"`
	ClassAbility string   `yaml:"class_ability"`
	Aspects      []string `yaml:"aspects"`
	Fragments    []string `yaml:"fragments"`
}

type catalogDocument struct {
	Items      []catalogItem     `yaml:"items"`
	Subclasses []catalogSubclass `yaml:"subclasses"`
}

// WriteSampleCatalog writes a small but complete catalog usable for local
// runs: weapons across all slots and ranges, armor for every class and
// slot, mods for every stat, and subclass kits for common elements.
func WriteSampleCatalog(path string) error {
	doc := catalogDocument{
		Items:      sampleItems(),
		Subclasses: sampleSubclasses(),
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, catalogFilePermission); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func sampleItems() []catalogItem {
	items := []catalogItem{
		// Kinetic weapons
		{ID: "w-kin-001", Name: "Outlast Drift", Category: "weapon", Element: "arc", Rarity: "legendary", WeaponSlot: "kinetic", Archetype: "auto rifle", Range: "mid"},
		{ID: "w-kin-002", Name: "Stonebreaker", Category: "weapon", Element: "solar", Rarity: "legendary", WeaponSlot: "kinetic", Archetype: "hand cannon", Range: "close"},
		{ID: "w-kin-003", Name: "Farsight Oath", Category: "weapon", Element: "void", Rarity: "legendary", WeaponSlot: "kinetic", Archetype: "scout rifle", Range: "long"},
		{ID: "w-kin-004", Name: "Hawthorne's Vow", Category: "weapon", Element: "arc", Rarity: "exotic", WeaponSlot: "kinetic", Archetype: "shotgun", Range: "close"},
		// Energy weapons
		{ID: "w-enr-001", Name: "Emberline", Category: "weapon", Element: "solar", Rarity: "legendary", WeaponSlot: "energy", Archetype: "fusion rifle", Range: "close"},
		{ID: "w-enr-002", Name: "Null Hymn", Category: "weapon", Element: "void", Rarity: "legendary", WeaponSlot: "energy", Archetype: "pulse rifle", Range: "mid"},
		{ID: "w-enr-003", Name: "Winter's Reach", Category: "weapon", Element: "stasis", Rarity: "legendary", WeaponSlot: "energy", Archetype: "sniper rifle", Range: "long"},
		{ID: "w-enr-004", Name: "Threadcutter", Category: "weapon", Element: "strand", Rarity: "exotic", WeaponSlot: "energy", Archetype: "sidearm", Range: "close"},
		// Power weapons
		{ID: "w-pow-001", Name: "Gravemaker", Category: "weapon", Element: "solar", Rarity: "legendary", WeaponSlot: "power", Archetype: "rocket launcher", Range: "long"},
		{ID: "w-pow-002", Name: "Edge of Ruin", Category: "weapon", Element: "arc", Rarity: "legendary", WeaponSlot: "power", Archetype: "sword", Range: "close"},
		{ID: "w-pow-003", Name: "Worldsplitter", Category: "weapon", Element: "void", Rarity: "exotic", WeaponSlot: "power", Archetype: "linear fusion rifle", Range: "long"},
	}

	// Armor for every class and slot, one exotic chest per class.
	classes := []string{"titan", "hunter", "warlock"}
	slots := []string{"helmet", "arms", "chest", "legs", "classitem"}
	for _, class := range classes {
		for i, slot := range slots {
			rarity := "legendary"
			if slot == "chest" {
				rarity = "exotic"
			}
			items = append(items, catalogItem{
				ID:        fmt.Sprintf("a-%s-%03d", class[:3], i+1),
				Name:      fmt.Sprintf("%s %s plate", class, slot),
				Category:  "armor",
				Class:     class,
				Rarity:    rarity,
				ArmorSlot: slot,
			})
			if slot == "chest" {
				// A legendary fallback so non-exotic compositions stay legal.
				items = append(items, catalogItem{
					ID:        fmt.Sprintf("a-%s-%03d-l", class[:3], i+1),
					Name:      fmt.Sprintf("%s %s weave", class, slot),
					Category:  "armor",
					Class:     class,
					Rarity:    "legendary",
					ArmorSlot: slot,
				})
			}
		}
	}

	// One mod per stat.
	mods := []struct {
		stat string
		name string
	}{
		{"mobility", "Traction Surge"},
		{"resilience", "Bulwark Core"},
		{"recovery", "Mending Loop"},
		{"discipline", "Ordnance Reserve"},
		{"intellect", "Mind Well"},
		{"strength", "Impact Driver"},
	}
	for i, mod := range mods {
		items = append(items, catalogItem{
			ID:          fmt.Sprintf("m-%03d", i+1),
			Name:        mod.name,
			Category:    "mod",
			Rarity:      "common",
			Boost:       mod.stat,
			BoostAmount: 20,
		})
	}

	return items
}

func sampleSubclasses() []catalogSubclass {
	elements := map[string]struct {
		name    string
		super   string
		grenade string
	}{
		"arc":    {"Stormfront", "Tempest Cage", "Pulse Grenade"},
		"solar":  {"Dawnbreak", "Burning Maul", "Fusion Grenade"},
		"void":   {"Nightshade", "Ward of Dusk", "Vortex Grenade"},
		"stasis": {"Rimecaller", "Glacial Wake", "Coldsnap Grenade"},
		"strand": {"Broodweaver", "Needlestorm", "Shackle Grenade"},
	}
	abilities := map[string]string{
		"titan":   "Barricade",
		"hunter":  "Dodge",
		"warlock": "Rift",
	}

	kits := make([]catalogSubclass, 0, len(elements)*len(abilities))
	for _, class := range []string{"titan", "hunter", "warlock"} {
		for element, kit := range elements {
			kits = append(kits, catalogSubclass{
				Class: class,
				Subclass: subclassDetails{
					Element:      element,
					Name:         kit.name,
					Super:        kit.super,
					Grenade:      kit.grenade,
					Melee:        "Charged Strike",
					ClassAbility: abilities[class],
					Aspects:      []string{"Resonant Core", "Echoing Pulse"},
					Fragments:    []string{"Spark of Focus", "Spark of Momentum"},
				},
			})
		}
	}
	return kits
}
