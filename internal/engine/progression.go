package engine

import (
	"strconv"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// Hit points assume a fixed +2 ability modifier at every level.
const assumedHPModifier = 2

func (e *engine) CalculateProgression(input *CalculateProgressionInput) (*CalculateProgressionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Level < 1 || input.Level > dnd5e.MaxLevel {
		return nil, errors.InvalidArgumentf("level must be between 1 and %d", dnd5e.MaxLevel)
	}

	class, ok := e.catalog.ClassByName(input.ClassName)
	if !ok {
		return &CalculateProgressionOutput{Matched: false}, nil
	}

	hpMax, err := hitPointsAt(class, input.Level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate hit points")
	}

	return &CalculateProgressionOutput{
		Matched:          true,
		HPMax:            hpMax,
		HPCurrent:        hpMax,
		SpellSlots:       slotsAt(class, input.Level),
		ProficiencyBonus: e.CalculateProficiencyBonus(input.Level),
	}, nil
}

func (e *engine) ProgressionTable(input *ProgressionTableInput) (*ProgressionTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	class, ok := e.catalog.ClassByName(input.ClassName)
	if !ok {
		return nil, errors.NotFoundf("class %q not found", input.ClassName)
	}

	rows := make([]ProgressionRow, 0, dnd5e.MaxLevel)
	for level := 1; level <= dnd5e.MaxLevel; level++ {
		hpMax, err := hitPointsAt(class, level)
		if err != nil {
			return nil, errors.Wrap(err, "failed to calculate hit points")
		}

		row := ProgressionRow{
			Level:            level,
			ProficiencyBonus: e.CalculateProficiencyBonus(level),
			HPMax:            hpMax,
		}
		if sc := class.Spellcasting; sc != nil {
			row.CantripsKnown = dnd5e.AtLevel(sc.CantripsKnown, level)
			row.SpellsKnown = dnd5e.AtLevel(sc.SpellsKnown, level)
			for key, table := range sc.SpellSlots {
				slotLevel, err := strconv.Atoi(key)
				if err != nil || slotLevel < 1 || slotLevel > len(row.Slots) {
					continue
				}
				row.Slots[slotLevel-1] = dnd5e.AtLevel(table, level)
			}
		}
		rows = append(rows, row)
	}

	return &ProgressionTableOutput{Class: class, Rows: rows}, nil
}

// hitPointsAt is (die+2) at level 1 plus floor(die/2)+1+2 per further level.
func hitPointsAt(class *dnd5e.Class, level int) (int, error) {
	die, err := class.HitDieValue()
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "class has no usable hit die")
	}

	base := die + assumedHPModifier
	perLevel := die/2 + 1 + assumedHPModifier
	return base + (level-1)*perLevel, nil
}

// slotsAt starts every non-zero slot level full. Classes without
// spellcasting get an empty map.
func slotsAt(class *dnd5e.Class, level int) entities.SpellSlots {
	slots := entities.SpellSlots{}
	if class.Spellcasting == nil {
		return slots
	}

	for key, table := range class.Spellcasting.SpellSlots {
		if n := dnd5e.AtLevel(table, level); n > 0 {
			slots[key] = entities.SlotPair{Current: n, Max: n}
		}
	}
	return slots
}
