// Package engine implements the character rules: progression, spell
// eligibility, grimoire merging and spell slot adjustment. Every method is a
// pure function over its input and the injected rules catalog.
package engine

// Engine provides game mechanics and rules calculations
type Engine interface {
	// CalculateProgression derives hit points and spell slots for a class and
	// level. Output.Matched is false when the class is not in the catalog.
	// Returns errors.InvalidArgument for a level outside 1-20.
	CalculateProgression(input *CalculateProgressionInput) (*CalculateProgressionOutput, error)

	// ProgressionTable returns one row per level 1-20 for a class.
	// Returns errors.NotFound for an unknown class.
	ProgressionTable(input *ProgressionTableInput) (*ProgressionTableOutput, error)

	// EligibleSpells returns the catalog spells castable by a class, in
	// catalog order.
	EligibleSpells(input *EligibleSpellsInput) (*EligibleSpellsOutput, error)

	// MergeGrimoire appends the spells of a batch that are not already known.
	MergeGrimoire(input *MergeGrimoireInput) (*MergeGrimoireOutput, error)

	// AdjustSpellSlot applies a bounded delta to one slot level.
	// Returns errors.InvalidArgument for an unknown axis.
	AdjustSpellSlot(input *AdjustSpellSlotInput) (*AdjustSpellSlotOutput, error)

	// CalculateProficiencyBonus returns ceil(level/4)+1.
	CalculateProficiencyBonus(level int) int
}
