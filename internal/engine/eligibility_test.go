package engine_test

import (
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

func spellNames(spells []*dnd5e.Spell) []string {
	names := make([]string, 0, len(spells))
	for _, spell := range spells {
		names = append(names, spell.Name)
	}
	return names
}

func (s *EngineTestSuite) TestWizardEligibility() {
	out, err := s.engine.EligibleSpells(&engine.EligibleSpellsInput{ClassName: "Wizard"})
	s.Require().NoError(err)

	// catalog order, subclass match included, substring "Wizards" excluded
	s.Equal([]string{"Light", "Magic Missile", "Shield", "Phantasmal Force", "Fireball"}, spellNames(out.Spells))
	s.NotContains(spellNames(out.Spells), "Sacred Flame")
}

func (s *EngineTestSuite) TestSubclassMatchIsCaseInsensitive() {
	out, err := s.engine.EligibleSpells(&engine.EligibleSpellsInput{ClassName: "Warlock"})
	s.Require().NoError(err)
	s.Equal([]string{"Burning Hands"}, spellNames(out.Spells))
}

func (s *EngineTestSuite) TestEligibilityWithExplicitClass() {
	class := &dnd5e.Class{
		Name:       "Cleric",
		HitDie:     "d8",
		Subclasses: []dnd5e.Subclass{{Name: "School of Illusion"}},
	}
	out, err := s.engine.EligibleSpells(&engine.EligibleSpellsInput{Class: class})
	s.Require().NoError(err)
	s.Contains(spellNames(out.Spells), "Phantasmal Force")
	s.Contains(spellNames(out.Spells), "Sacred Flame")
}

func (s *EngineTestSuite) TestEligibilityByUnknownClassName() {
	out, err := s.engine.EligibleSpells(&engine.EligibleSpellsInput{ClassName: "  druid "})
	s.Require().NoError(err)
	s.Equal([]string{"Cure Wounds"}, spellNames(out.Spells))
}

func (s *EngineTestSuite) TestEligibilityRequiresClass() {
	_, err := s.engine.EligibleSpells(&engine.EligibleSpellsInput{ClassName: " "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestIsEligible() {
	spell := &dnd5e.Spell{Name: "Test", Classes: []string{" Paladin"}, Subclasses: []string{"Oath of Devotion"}}

	s.True(engine.IsEligible(spell, "paladin", nil))
	s.True(engine.IsEligible(spell, "Cleric", []string{"oath of devotion"}))
	s.False(engine.IsEligible(spell, "Pal", nil))
	s.False(engine.IsEligible(spell, "Cleric", []string{"Oath"}))
	s.False(engine.IsEligible(nil, "Paladin", nil))
}
