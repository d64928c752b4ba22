package dnd5e

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxLevel is the highest character level the progression tables cover.
const MaxLevel = 20

// Class is a playable class from the rules catalog.
type Class struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description,omitempty"`
	HitDie              string        `json:"hit_die"`
	PrimaryAbilities    []string      `json:"primary_abilities"`
	SavingThrows        []string      `json:"saving_throws"`
	ArmorProficiencies  []string      `json:"armor_proficiencies,omitempty"`
	WeaponProficiencies []string      `json:"weapon_proficiencies,omitempty"`
	ToolProficiencies   []string      `json:"tool_proficiencies,omitempty"`
	SkillChoices        []string      `json:"skill_choices,omitempty"`
	Features            []Feature     `json:"features,omitempty"`
	Spellcasting        *Spellcasting `json:"spellcasting,omitempty"`
	Subclasses          []Subclass    `json:"subclasses,omitempty"`
}

// Feature is a class or subclass feature gained at a level.
type Feature struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Spellcasting describes how a class casts. Per-level arrays are indexed by
// character level minus one.
type Spellcasting struct {
	Ability       string           `json:"ability"`
	RitualCasting bool             `json:"ritual_casting,omitempty"`
	Focus         string           `json:"focus,omitempty"`
	CantripsKnown []int            `json:"cantrips_known,omitempty"`
	SpellsKnown   []int            `json:"spells_known,omitempty"`
	SpellSlots    map[string][]int `json:"spell_slots"`
}

// HitDieValue parses the numeric size of the hit die ("d8" -> 8).
func (c *Class) HitDieValue() (int, error) {
	raw := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.HitDie)), "d")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("class %q has invalid hit die %q", c.Name, c.HitDie)
	}
	return n, nil
}

// IsSpellcaster reports whether the class has a spellcasting block.
func (c *Class) IsSpellcaster() bool {
	return c.Spellcasting != nil
}

// SubclassNames returns the names of the class's subclasses.
func (c *Class) SubclassNames() []string {
	names := make([]string, 0, len(c.Subclasses))
	for _, sc := range c.Subclasses {
		names = append(names, sc.Name)
	}
	return names
}

// SlotLevels returns the slot-level keys of the table in numeric order.
func (s *Spellcasting) SlotLevels() []string {
	levels := make([]string, 0, len(s.SpellSlots))
	for key := range s.SpellSlots {
		levels = append(levels, key)
	}
	slices.SortFunc(levels, CompareSlotLevels)
	return levels
}

// CompareSlotLevels orders slot-level keys numerically, falling back to
// string order for keys that are not numbers.
func CompareSlotLevels(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	return strings.Compare(a, b)
}

// AtLevel returns the entry for a character level, or 0 when the table is
// short or the level is out of range.
func AtLevel(table []int, level int) int {
	if level < 1 || level > len(table) {
		return 0
	}
	return table[level-1]
}

// Subclass is always carried as an object with a name. The catalog format
// also allows a bare string, which decodes to a Subclass with only a name.
type Subclass struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Features    []Feature `json:"features,omitempty"`
}

// UnmarshalJSON accepts either "Name" or {"name": "Name", ...}.
func (s *Subclass) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = Subclass{Name: name}
		return nil
	}

	type plain Subclass
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("subclass must be a string or an object: %w", err)
	}
	if strings.TrimSpace(obj.Name) == "" {
		return fmt.Errorf("subclass object is missing a name")
	}
	*s = Subclass(obj)
	return nil
}
