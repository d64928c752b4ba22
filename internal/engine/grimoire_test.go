package engine_test

import (
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

func (s *EngineTestSuite) TestMergeAppendsNewSpellsAfterExisting() {
	known := []entities.KnownSpell{{Name: "Light", Level: 0}}
	selected := []*dnd5e.Spell{
		{Name: "Fireball", Level: 3},
		{Name: "Light", Level: 0},
	}

	out, err := s.engine.MergeGrimoire(&engine.MergeGrimoireInput{Known: known, Selected: selected})
	s.Require().NoError(err)
	s.False(out.AlreadyKnown)
	s.Equal(1, out.Added)
	s.Equal([]entities.KnownSpell{
		{Name: "Light", Level: 0},
		{Name: "Fireball", Level: 3},
	}, out.Known)
}

func (s *EngineTestSuite) TestMergeIsIdempotent() {
	known := []entities.KnownSpell{{Name: "Light", Level: 0}, {Name: "Shield", Level: 1}}
	selected := []*dnd5e.Spell{{Name: "Shield", Level: 1}, {Name: "Light", Level: 0}}

	out, err := s.engine.MergeGrimoire(&engine.MergeGrimoireInput{Known: known, Selected: selected})
	s.Require().NoError(err)
	s.True(out.AlreadyKnown)
	s.Zero(out.Added)
	s.Equal(known, out.Known)
}

func (s *EngineTestSuite) TestMergePreservesBareEntriesAndSelectionOrder() {
	known := []entities.KnownSpell{{Name: "Mystery", Level: entities.UnknownSpellLevel}}
	selected := []*dnd5e.Spell{
		{Name: "Shield", Level: 1},
		{Name: "Acid Splash", Level: 0},
		{Name: "Shield", Level: 1},
	}

	out, err := s.engine.MergeGrimoire(&engine.MergeGrimoireInput{Known: known, Selected: selected})
	s.Require().NoError(err)
	s.Equal(2, out.Added)
	s.Equal([]entities.KnownSpell{
		{Name: "Mystery", Level: entities.UnknownSpellLevel},
		{Name: "Shield", Level: 1},
		{Name: "Acid Splash", Level: 0},
	}, out.Known)
}

func (s *EngineTestSuite) TestMergeNameMatchIsCaseSensitive() {
	known := []entities.KnownSpell{{Name: "light", Level: 0}}
	out, err := s.engine.MergeGrimoire(&engine.MergeGrimoireInput{
		Known:    known,
		Selected: []*dnd5e.Spell{{Name: "Light", Level: 0}},
	})
	s.Require().NoError(err)
	s.Equal(1, out.Added)
}

func (s *EngineTestSuite) TestMergeDoesNotMutateInput() {
	known := make([]entities.KnownSpell, 1, 4)
	known[0] = entities.KnownSpell{Name: "Light", Level: 0}

	_, err := s.engine.MergeGrimoire(&engine.MergeGrimoireInput{
		Known:    known,
		Selected: []*dnd5e.Spell{{Name: "Shield", Level: 1}},
	})
	s.Require().NoError(err)
	s.Len(known, 1)
}

func (s *EngineTestSuite) TestGroupByLevel() {
	buckets := engine.GroupByLevel([]*dnd5e.Spell{
		{Name: "Shield", Level: 1},
		{Name: "Light", Level: 0},
		{Name: "Magic Missile", Level: 1},
		{Name: "Acid Splash", Level: 0},
		{Name: "Wish", Level: 9},
		{Name: "Broken", Level: 12},
	})

	s.Equal([]string{"Acid Splash", "Light"}, spellNames(buckets[0]))
	s.Equal([]string{"Magic Missile", "Shield"}, spellNames(buckets[1]))
	s.Empty(buckets[2])
	s.Equal([]string{"Wish"}, spellNames(buckets[9]))
}

func (s *EngineTestSuite) TestGroupBySchool() {
	groups := engine.GroupBySchool([]*dnd5e.Spell{
		{Name: "Shield", School: dnd5e.SchoolAbjuration},
		{Name: "Magic Missile", School: dnd5e.SchoolEvocation},
		{Name: "Counterspell", School: dnd5e.SchoolAbjuration},
	})

	s.Require().Len(groups, 2)
	s.Equal(dnd5e.SchoolAbjuration, groups[0].School)
	s.Equal([]string{"Counterspell", "Shield"}, spellNames(groups[0].Spells))
	s.Equal(dnd5e.SchoolEvocation, groups[1].School)
}
