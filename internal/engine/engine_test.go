package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	engine engine.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	e, err := engine.New(&engine.Config{Catalog: testutils.NewFixtureCatalog(s.T())})
	s.Require().NoError(err)
	s.engine = e
}

func (s *EngineTestSuite) TestNewRequiresCatalog() {
	_, err := engine.New(&engine.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = engine.New(nil)
	s.Error(err)
}

func (s *EngineTestSuite) TestProficiencyBonus() {
	expected := map[int]int{1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 12: 4, 13: 5, 16: 5, 17: 6, 20: 6}
	for level, bonus := range expected {
		s.Equal(bonus, s.engine.CalculateProficiencyBonus(level), "level %d", level)
	}
}

func (s *EngineTestSuite) TestHitPointFormula() {
	testCases := []struct {
		name     string
		class    string
		level    int
		expected int
	}{
		{name: "d8 level 1", class: "Cleric", level: 1, expected: 10},
		{name: "d8 level 5", class: "Cleric", level: 5, expected: 38},
		{name: "d6 level 1", class: "Wizard", level: 1, expected: 8},
		{name: "d6 level 20", class: "Wizard", level: 20, expected: 8 + 19*6},
		{name: "d10 level 3", class: "Fighter", level: 3, expected: 12 + 2*8},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{
				ClassName: tc.class,
				Level:     tc.level,
			})
			s.Require().NoError(err)
			s.True(out.Matched)
			s.Equal(tc.expected, out.HPMax)
			s.Equal(out.HPMax, out.HPCurrent, "recompute is a full heal")
		})
	}
}

func (s *EngineTestSuite) TestClericLevelFiveSlots() {
	out, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{ClassName: "Cleric", Level: 5})
	s.Require().NoError(err)

	s.Equal(entities.SpellSlots{
		"1": {Current: 4, Max: 4},
		"2": {Current: 3, Max: 3},
		"3": {Current: 2, Max: 2},
	}, out.SpellSlots)
	s.Equal(3, out.ProficiencyBonus)
}

func (s *EngineTestSuite) TestPactCasterOmitsZeroLevels() {
	out, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{ClassName: "Warlock", Level: 3})
	s.Require().NoError(err)
	s.Equal(entities.SpellSlots{"2": {Current: 2, Max: 2}}, out.SpellSlots)
}

func (s *EngineTestSuite) TestNonCasterGetsEmptySlots() {
	out, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{ClassName: "Fighter", Level: 10})
	s.Require().NoError(err)
	s.NotNil(out.SpellSlots)
	s.Empty(out.SpellSlots)
}

func (s *EngineTestSuite) TestUnmatchedClass() {
	out, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{ClassName: "cleric", Level: 3})
	s.Require().NoError(err)
	s.False(out.Matched)
	s.Zero(out.HPMax)
	s.Nil(out.SpellSlots)
}

func (s *EngineTestSuite) TestProgressionRejectsLevelOutOfRange() {
	for _, level := range []int{0, 21, -3} {
		_, err := s.engine.CalculateProgression(&engine.CalculateProgressionInput{ClassName: "Cleric", Level: level})
		s.True(errors.IsInvalidArgument(err), "level %d", level)
	}
}

func (s *EngineTestSuite) TestProgressionTable() {
	out, err := s.engine.ProgressionTable(&engine.ProgressionTableInput{ClassName: "Cleric"})
	s.Require().NoError(err)
	s.Require().Len(out.Rows, dnd5e.MaxLevel)

	first := out.Rows[0]
	s.Equal(1, first.Level)
	s.Equal(2, first.ProficiencyBonus)
	s.Equal(3, first.CantripsKnown)
	s.Equal([9]int{2}, first.Slots)
	s.Equal(10, first.HPMax)

	last := out.Rows[19]
	s.Equal(20, last.Level)
	s.Equal(6, last.ProficiencyBonus)
	s.Equal([9]int{4, 3, 3, 3, 3, 2, 2, 1, 1}, last.Slots)

	_, err = s.engine.ProgressionTable(&engine.ProgressionTableInput{ClassName: "Artificer"})
	s.True(errors.IsNotFound(err))
}

func (s *EngineTestSuite) TestProgressionTableForNonCaster() {
	out, err := s.engine.ProgressionTable(&engine.ProgressionTableInput{ClassName: "Fighter"})
	s.Require().NoError(err)
	for _, row := range out.Rows {
		s.Zero(row.CantripsKnown)
		s.Equal([9]int{}, row.Slots)
	}
}
