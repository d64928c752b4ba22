package engine_test

import (
	"math"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

func (s *EngineTestSuite) TestAdjustCurrent() {
	testCases := []struct {
		name     string
		pair     entities.SlotPair
		delta    int
		expected entities.SlotPair
	}{
		{name: "spend one", pair: entities.SlotPair{Current: 2, Max: 2}, delta: -1, expected: entities.SlotPair{Current: 1, Max: 2}},
		{name: "clamped at max", pair: entities.SlotPair{Current: 2, Max: 2}, delta: 1, expected: entities.SlotPair{Current: 2, Max: 2}},
		{name: "clamped at zero", pair: entities.SlotPair{Current: 2, Max: 2}, delta: -5, expected: entities.SlotPair{Current: 0, Max: 2}},
		{name: "restore", pair: entities.SlotPair{Current: 0, Max: 3}, delta: 2, expected: entities.SlotPair{Current: 2, Max: 3}},
		{name: "huge refill fills to max", pair: entities.SlotPair{Current: 1, Max: 3}, delta: math.MaxInt, expected: entities.SlotPair{Current: 3, Max: 3}},
		{name: "huge drain empties", pair: entities.SlotPair{Current: 1, Max: 3}, delta: math.MinInt, expected: entities.SlotPair{Current: 0, Max: 3}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
				Slots: entities.SpellSlots{"1": tc.pair},
				Level: "1",
				Axis:  engine.SlotAxisCurrent,
				Delta: tc.delta,
			})
			s.Require().NoError(err)
			s.True(out.Present)
			s.Equal(tc.expected, out.Pair)
			s.Equal(tc.expected, out.Slots["1"])
		})
	}
}

func (s *EngineTestSuite) TestAdjustMax() {
	testCases := []struct {
		name     string
		pair     entities.SlotPair
		delta    int
		expected entities.SlotPair
	}{
		{name: "pulls current down", pair: entities.SlotPair{Current: 3, Max: 4}, delta: -2, expected: entities.SlotPair{Current: 2, Max: 2}},
		{name: "never pushes current up", pair: entities.SlotPair{Current: 1, Max: 2}, delta: 2, expected: entities.SlotPair{Current: 1, Max: 4}},
		{name: "floors at zero", pair: entities.SlotPair{Current: 1, Max: 1}, delta: -3, expected: entities.SlotPair{Current: 0, Max: 0}},
		{name: "huge raise saturates", pair: entities.SlotPair{Current: 1, Max: 3}, delta: math.MaxInt, expected: entities.SlotPair{Current: 1, Max: math.MaxInt}},
		{name: "huge cut floors at zero", pair: entities.SlotPair{Current: 1, Max: 3}, delta: math.MinInt, expected: entities.SlotPair{Current: 0, Max: 0}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
				Slots: entities.SpellSlots{"2": tc.pair},
				Level: "2",
				Axis:  engine.SlotAxisMax,
				Delta: tc.delta,
			})
			s.Require().NoError(err)
			s.Equal(tc.expected, out.Pair)
		})
	}
}

func (s *EngineTestSuite) TestAdjustTouchesOnlyOneLevel() {
	slots := entities.SpellSlots{
		"1": {Current: 4, Max: 4},
		"2": {Current: 3, Max: 3},
	}

	out, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
		Slots: slots,
		Level: "1",
		Axis:  engine.SlotAxisCurrent,
		Delta: -1,
	})
	s.Require().NoError(err)
	s.True(out.Changed)
	s.Equal(entities.SlotPair{Current: 3, Max: 4}, out.Slots["1"])
	s.Equal(entities.SlotPair{Current: 3, Max: 3}, out.Slots["2"])
	s.Equal(4, slots["1"].Current, "input map is not mutated")
}

func (s *EngineTestSuite) TestAdjustAbsentLevelIsNoop() {
	slots := entities.SpellSlots{"1": {Current: 1, Max: 2}}
	out, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
		Slots: slots,
		Level: "5",
		Axis:  engine.SlotAxisCurrent,
		Delta: 1,
	})
	s.Require().NoError(err)
	s.False(out.Present)
	s.False(out.Changed)
	s.Equal(slots, out.Slots)
}

func (s *EngineTestSuite) TestAdjustClampedAtBoundReportsUnchanged() {
	out, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
		Slots: entities.SpellSlots{"1": {Current: 2, Max: 2}},
		Level: "1",
		Axis:  engine.SlotAxisCurrent,
		Delta: 1,
	})
	s.Require().NoError(err)
	s.True(out.Present)
	s.False(out.Changed)
}

func (s *EngineTestSuite) TestAdjustRejectsUnknownAxis() {
	_, err := s.engine.AdjustSpellSlot(&engine.AdjustSpellSlotInput{
		Slots: entities.SpellSlots{"1": {Current: 1, Max: 1}},
		Level: "1",
		Axis:  engine.SlotAxis("both"),
		Delta: 1,
	})
	s.True(errors.IsInvalidArgument(err))
}
