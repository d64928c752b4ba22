package character

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	characterrepo "github.com/KirkDiggler/grimoire-api/internal/repositories/character"
)

// NoticeAlreadyKnown is returned when a learn request adds nothing.
const NoticeAlreadyKnown = "All selected spells are already known"

// AdjustSpellSlot moves the current or max count of one slot level. An
// absent level, or a pair already at its bound, leaves the record unwritten.
func (o *Orchestrator) AdjustSpellSlot(ctx context.Context, input *AdjustSpellSlotInput) (*AdjustSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwner(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	if !isSlotLevel(input.Level) {
		vb.Fieldf("level", "must be a spell level between 1 and %d", dnd5e.MaxSpellLevel)
	}
	errors.ValidateEnum("axis", string(input.Axis),
		[]string{string(engine.SlotAxisCurrent), string(engine.SlotAxisMax)}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var adjusted *engine.AdjustSpellSlotOutput
	result, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID:     input.CharacterID,
		UserID: input.UserID,
		Mutate: func(c *entities.Character) error {
			out, err := o.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
				Slots: c.SpellSlots,
				Level: input.Level,
				Axis:  input.Axis,
				Delta: input.Delta,
			})
			if err != nil {
				return err
			}
			adjusted = out
			if !out.Changed {
				return characterrepo.ErrSkipWrite
			}
			c.SpellSlots = out.Slots
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to adjust spell slot")
	}

	slog.DebugContext(ctx, "spell slot adjusted",
		"character_id", input.CharacterID,
		"level", input.Level,
		"axis", input.Axis,
		"delta", input.Delta,
		"changed", adjusted.Changed)

	o.normalizeKnown(result.Character)
	return &AdjustSpellSlotOutput{
		Character: result.Character,
		Pair:      adjusted.Pair,
		Present:   adjusted.Present,
		Changed:   adjusted.Changed,
	}, nil
}

// LearnSpells adds catalog spells to an owned character's grimoire. Every
// name must resolve and be castable by the character's class.
func (o *Orchestrator) LearnSpells(ctx context.Context, input *LearnSpellsInput) (*LearnSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwner(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	selected, err := o.resolveSpells(input.SpellNames)
	if err != nil {
		return nil, err
	}

	var merged *engine.MergeGrimoireOutput
	result, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID:     input.CharacterID,
		UserID: input.UserID,
		Mutate: func(c *entities.Character) error {
			if err := o.checkEligible(c.ClassName, selected); err != nil {
				return err
			}

			out, err := o.engine.MergeGrimoire(&engine.MergeGrimoireInput{
				Known:    c.SpellsKnown,
				Selected: selected,
			})
			if err != nil {
				return err
			}
			merged = out
			if out.AlreadyKnown {
				return characterrepo.ErrSkipWrite
			}
			c.SpellsKnown = out.Known
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to learn spells")
	}

	output := &LearnSpellsOutput{
		Character:    result.Character,
		Added:        merged.Added,
		AlreadyKnown: merged.AlreadyKnown,
	}
	if merged.AlreadyKnown {
		output.Notice = NoticeAlreadyKnown
	}

	slog.InfoContext(ctx, "spells learned",
		"character_id", input.CharacterID,
		"requested", len(selected),
		"added", merged.Added)

	o.normalizeKnown(result.Character)
	return output, nil
}

// resolveSpells looks names up in the catalog, keeping request order.
func (o *Orchestrator) resolveSpells(names []string) ([]*dnd5e.Spell, error) {
	if len(names) == 0 {
		return nil, errors.InvalidArgument("at least one spell is required")
	}

	spells := make([]*dnd5e.Spell, 0, len(names))
	var unknown []string
	for _, name := range names {
		spell, ok := o.catalog.SpellByName(strings.TrimSpace(name))
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		spells = append(spells, spell)
	}
	if len(unknown) > 0 {
		return nil, errors.InvalidArgumentf("unknown spells: %s", strings.Join(unknown, ", ")).
			WithMeta("unknown_spells", unknown)
	}
	return spells, nil
}

func (o *Orchestrator) checkEligible(className string, spells []*dnd5e.Spell) error {
	var subclasses []string
	if class, ok := o.catalog.ClassByName(className); ok {
		subclasses = class.SubclassNames()
	}

	var ineligible []string
	for _, spell := range spells {
		if !engine.IsEligible(spell, className, subclasses) {
			ineligible = append(ineligible, spell.Name)
		}
	}
	if len(ineligible) > 0 {
		return errors.InvalidArgumentf("spells not available to %s: %s",
			className, strings.Join(ineligible, ", ")).
			WithMeta("ineligible_spells", ineligible)
	}
	return nil
}

// GetGrimoire builds the display view of an owned character's spells.
func (o *Orchestrator) GetGrimoire(ctx context.Context, input *GetGrimoireInput) (*GetGrimoireOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.getOwned(ctx, input.UserID, input.CharacterID)
	if err != nil {
		return nil, err
	}

	grimoire := &Grimoire{
		CharacterID:      c.ID,
		ClassName:        c.ClassName,
		Level:            c.Level,
		ProficiencyBonus: o.engine.CalculateProficiencyBonus(c.Level),
		Unresolved:       []string{},
		Slots:            make([]SlotLevel, 0, len(c.SpellSlots)),
	}
	if class, ok := o.catalog.ClassByName(c.ClassName); ok {
		grimoire.Spellcasting = class.Spellcasting
	}

	spells := make([]*dnd5e.Spell, 0, len(c.SpellsKnown))
	for _, known := range c.SpellsKnown {
		spell, ok := o.catalog.SpellByName(known.Name)
		if !ok {
			grimoire.Unresolved = append(grimoire.Unresolved, known.Name)
			continue
		}
		spells = append(spells, spell)
	}
	grimoire.ByLevel = engine.GroupByLevel(spells)
	slices.Sort(grimoire.Unresolved)

	for _, level := range c.SpellSlots.Levels() {
		pair := c.SpellSlots[level]
		grimoire.Slots = append(grimoire.Slots, SlotLevel{Level: level, Current: pair.Current, Max: pair.Max})
		grimoire.TotalCurrent += pair.Current
		grimoire.TotalMax += pair.Max
	}

	return &GetGrimoireOutput{Grimoire: grimoire}, nil
}
