package engine

import (
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

// CalculateProgressionInput identifies the class and level to derive from.
type CalculateProgressionInput struct {
	ClassName string
	Level     int
}

// CalculateProgressionOutput holds derived values. When Matched is false the
// remaining fields are zero and callers keep whatever they had.
type CalculateProgressionOutput struct {
	Matched          bool
	HPMax            int
	HPCurrent        int
	SpellSlots       entities.SpellSlots
	ProficiencyBonus int
}

// ProgressionTableInput names the class to tabulate.
type ProgressionTableInput struct {
	ClassName string
}

// ProgressionRow is one level of a class progression table. Slots is indexed
// by spell level minus one.
type ProgressionRow struct {
	Level            int    `json:"level"`
	ProficiencyBonus int    `json:"proficiency_bonus"`
	CantripsKnown    int    `json:"cantrips_known"`
	SpellsKnown      int    `json:"spells_known"`
	Slots            [9]int `json:"slots"`
	HPMax            int    `json:"hp_max"`
}

// ProgressionTableOutput holds twenty rows, level 1 first.
type ProgressionTableOutput struct {
	Class *dnd5e.Class
	Rows  []ProgressionRow
}

// EligibleSpellsInput takes either a resolved class or a class name. A name
// that does not resolve still matches spells by class list.
type EligibleSpellsInput struct {
	Class     *dnd5e.Class
	ClassName string
}

// EligibleSpellsOutput contains the eligible spells in catalog order.
type EligibleSpellsOutput struct {
	Spells []*dnd5e.Spell
}

// MergeGrimoireInput holds the current grimoire and the selected batch.
type MergeGrimoireInput struct {
	Known    []entities.KnownSpell
	Selected []*dnd5e.Spell
}

// MergeGrimoireOutput holds the merged grimoire. AlreadyKnown is set, and
// Known is the input unchanged, when nothing new was selected.
type MergeGrimoireOutput struct {
	Known        []entities.KnownSpell
	Added        int
	AlreadyKnown bool
}

// SlotAxis selects which half of a slot pair an adjustment targets.
type SlotAxis string

// Slot axes
const (
	SlotAxisCurrent SlotAxis = "current"
	SlotAxisMax     SlotAxis = "max"
)

// AdjustSpellSlotInput describes one slot adjustment.
type AdjustSpellSlotInput struct {
	Slots entities.SpellSlots
	Level string
	Axis  SlotAxis
	Delta int
}

// AdjustSpellSlotOutput holds a copy of the slots with the adjustment
// applied. Changed is false when the level was absent or the pair did not
// move.
type AdjustSpellSlotOutput struct {
	Slots   entities.SpellSlots
	Pair    entities.SlotPair
	Present bool
	Changed bool
}
