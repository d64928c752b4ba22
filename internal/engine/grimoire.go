package engine

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

func (e *engine) MergeGrimoire(input *MergeGrimoireInput) (*MergeGrimoireOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	known := make(map[string]struct{}, len(input.Known)+len(input.Selected))
	for _, ks := range input.Known {
		known[ks.Name] = struct{}{}
	}

	var fresh []entities.KnownSpell
	for _, spell := range input.Selected {
		if spell == nil {
			continue
		}
		if _, dup := known[spell.Name]; dup {
			continue
		}
		// a batch naming the same spell twice adds it once
		known[spell.Name] = struct{}{}
		fresh = append(fresh, entities.KnownSpell{Name: spell.Name, Level: spell.Level})
	}

	if len(fresh) == 0 {
		return &MergeGrimoireOutput{Known: input.Known, AlreadyKnown: true}, nil
	}

	merged := make([]entities.KnownSpell, 0, len(input.Known)+len(fresh))
	merged = append(merged, input.Known...)
	merged = append(merged, fresh...)

	return &MergeGrimoireOutput{Known: merged, Added: len(fresh)}, nil
}

// GroupByLevel buckets spells by level 0-9, each bucket sorted by name.
// Spells with a level outside 0-9 are dropped.
func GroupByLevel(spells []*dnd5e.Spell) [dnd5e.MaxSpellLevel + 1][]*dnd5e.Spell {
	var buckets [dnd5e.MaxSpellLevel + 1][]*dnd5e.Spell
	for _, spell := range spells {
		if spell == nil || spell.Level < 0 || spell.Level > dnd5e.MaxSpellLevel {
			continue
		}
		buckets[spell.Level] = append(buckets[spell.Level], spell)
	}
	for i := range buckets {
		slices.SortStableFunc(buckets[i], byName)
	}
	return buckets
}

// SchoolGroup is the spells of one school, sorted by name.
type SchoolGroup struct {
	School dnd5e.School
	Spells []*dnd5e.Spell
}

// GroupBySchool groups spells by school, schools in alphabetical order.
// Empty schools are omitted.
func GroupBySchool(spells []*dnd5e.Spell) []SchoolGroup {
	bySchool := make(map[dnd5e.School][]*dnd5e.Spell)
	for _, spell := range spells {
		if spell != nil {
			bySchool[spell.School] = append(bySchool[spell.School], spell)
		}
	}

	schools := make([]dnd5e.School, 0, len(bySchool))
	for school := range bySchool {
		schools = append(schools, school)
	}
	slices.Sort(schools)

	groups := make([]SchoolGroup, 0, len(schools))
	for _, school := range schools {
		list := bySchool[school]
		slices.SortStableFunc(list, byName)
		groups = append(groups, SchoolGroup{School: school, Spells: list})
	}
	return groups
}

func byName(a, b *dnd5e.Spell) int {
	return strings.Compare(a.Name, b.Name)
}
