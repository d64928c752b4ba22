package engine

import (
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

func (e *engine) EligibleSpells(input *EligibleSpellsInput) (*EligibleSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	className := input.ClassName
	var subclasses []string
	class := input.Class
	if class == nil {
		class, _ = e.catalog.ClassByName(input.ClassName)
	}
	if class != nil {
		className = class.Name
		subclasses = class.SubclassNames()
	}
	if strings.TrimSpace(className) == "" {
		return nil, errors.InvalidArgument("class is required")
	}

	var eligible []*dnd5e.Spell
	for _, spell := range e.catalog.AllSpells() {
		if IsEligible(spell, className, subclasses) {
			eligible = append(eligible, spell)
		}
	}

	return &EligibleSpellsOutput{Spells: eligible}, nil
}

// IsEligible reports whether spell lists className (trimmed, case-insensitive)
// or shares a subclass name with subclasses (case-insensitive). Names must
// match whole; substrings do not count.
func IsEligible(spell *dnd5e.Spell, className string, subclasses []string) bool {
	if spell == nil {
		return false
	}

	if matchesAny(spell.Classes, className) {
		return true
	}
	for _, sub := range subclasses {
		if matchesAny(spell.Subclasses, sub) {
			return true
		}
	}
	return false
}

func matchesAny(names []string, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), target) {
			return true
		}
	}
	return false
}
