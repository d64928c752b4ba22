package character

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

const defaultLevel = 1

// buildCharacter turns a draft into a new record. A class the catalog knows
// derives hit points and spell slots; anything else keeps what the client
// sent, with hit points defaulting to 1/1.
func (o *Orchestrator) buildCharacter(userID string, draft *CharacterDraft) (*entities.Character, error) {
	level := defaultLevel
	if draft.Level != nil {
		level = *draft.Level
	}

	c := &entities.Character{
		ID:            o.idGenerator.Generate(),
		UserID:        userID,
		Name:          strings.TrimSpace(draft.Name),
		ClassName:     strings.TrimSpace(draft.ClassName),
		Level:         level,
		HPMax:         1,
		HPCurrent:     1,
		SpellSlots:    draft.SpellSlots.Clone(),
		SpellsKnown:   append([]entities.KnownSpell(nil), draft.SpellsKnown...),
		CharacterData: normalizeData(draft.CharacterData),
	}
	if c.SpellSlots == nil {
		c.SpellSlots = entities.SpellSlots{}
	}
	if c.SpellsKnown == nil {
		c.SpellsKnown = []entities.KnownSpell{}
	}
	if draft.HPMax != nil {
		c.HPMax = *draft.HPMax
		c.HPCurrent = *draft.HPMax
	}
	if draft.HPCurrent != nil {
		c.HPCurrent = *draft.HPCurrent
	}

	if err := validateLevel(c.Level); err != nil {
		return nil, err
	}
	if _, err := o.applyProgression(c); err != nil {
		return nil, err
	}

	o.normalizeKnown(c)
	if err := validateCharacter(c); err != nil {
		return nil, err
	}
	return c, nil
}

// applyPatch edits c in place. It reports whether progression was
// recomputed, which happens when the class or level actually changes.
func (o *Orchestrator) applyPatch(c *entities.Character, patch *CharacterPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, errors.InvalidArgument("no fields to update")
	}

	progressionChanged := false
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ClassName != nil {
		className := strings.TrimSpace(*patch.ClassName)
		progressionChanged = progressionChanged || className != c.ClassName
		c.ClassName = className
	}
	if patch.Level != nil {
		if err := validateLevel(*patch.Level); err != nil {
			return false, err
		}
		progressionChanged = progressionChanged || *patch.Level != c.Level
		c.Level = *patch.Level
	}
	if patch.HPMax != nil {
		c.HPMax = *patch.HPMax
	}
	if patch.HPCurrent != nil {
		c.HPCurrent = *patch.HPCurrent
	}
	if patch.SpellSlots != nil {
		c.SpellSlots = patch.SpellSlots.Clone()
	}
	if patch.SpellsKnown != nil {
		c.SpellsKnown = append([]entities.KnownSpell{}, patch.SpellsKnown...)
	}
	if patch.CharacterData != nil {
		c.CharacterData = normalizeData(patch.CharacterData)
	}

	recomputed := false
	if progressionChanged {
		var err error
		recomputed, err = o.applyProgression(c)
		if err != nil {
			return false, err
		}
	}

	o.normalizeKnown(c)
	if err := validateCharacter(c); err != nil {
		return false, err
	}
	return recomputed, nil
}

// applyProgression overwrites hit points and spell slots from the class
// tables. It is a no-op for classes the catalog does not know.
func (o *Orchestrator) applyProgression(c *entities.Character) (bool, error) {
	result, err := o.engine.CalculateProgression(&engine.CalculateProgressionInput{
		ClassName: c.ClassName,
		Level:     c.Level,
	})
	if err != nil {
		return false, err
	}
	if !result.Matched {
		return false, nil
	}

	c.HPMax = result.HPMax
	c.HPCurrent = result.HPCurrent
	c.SpellSlots = result.SpellSlots
	return true, nil
}

func validateLevel(level int) error {
	if level < 1 || level > dnd5e.MaxLevel {
		return errors.InvalidArgumentf("level must be between 1 and %d", dnd5e.MaxLevel)
	}
	return nil
}

// validateCharacter checks the record invariants every stored character
// satisfies.
func validateCharacter(c *entities.Character) error {
	vb := errors.NewValidationBuilder()

	if c.Name == "" {
		vb.RequiredField("name")
	}
	errors.ValidateRange("level", c.Level, 1, dnd5e.MaxLevel, vb)
	if c.HPMax < 1 {
		vb.Field("hp_max", "must be at least 1")
	}
	if c.HPCurrent < 0 || c.HPCurrent > c.HPMax {
		vb.Field("hp_current", "must be between 0 and hp_max")
	}

	for _, key := range c.SpellSlots.Levels() {
		pair := c.SpellSlots[key]
		if !isSlotLevel(key) {
			vb.Fieldf("spell_slots", "unknown slot level %q", key)
			continue
		}
		if pair.Max < 0 || pair.Current < 0 || pair.Current > pair.Max {
			vb.Fieldf("spell_slots", "level %s must satisfy 0 <= current <= max", key)
		}
	}

	seen := make(map[string]bool, len(c.SpellsKnown))
	for _, known := range c.SpellsKnown {
		name := strings.TrimSpace(known.Name)
		if name == "" {
			vb.Field("spells_known", "spell names cannot be empty")
			continue
		}
		if seen[name] {
			vb.Fieldf("spells_known", "duplicate spell %q", name)
		}
		seen[name] = true
	}

	if len(c.CharacterData) > 0 && !json.Valid(c.CharacterData) {
		vb.Field("character_data", "must be valid JSON")
	}

	return vb.Build()
}

// isSlotLevel reports whether key is one of "1".."9".
func isSlotLevel(key string) bool {
	n, err := strconv.Atoi(key)
	return err == nil && n >= 1 && n <= dnd5e.MaxSpellLevel && strconv.Itoa(n) == key
}

// normalizeData treats an empty body or JSON null as no data.
func normalizeData(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return append(json.RawMessage(nil), trimmed...)
}
