package engine

import (
	"math"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

func (e *engine) AdjustSpellSlot(input *AdjustSpellSlotInput) (*AdjustSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Axis != SlotAxisCurrent && input.Axis != SlotAxisMax {
		return nil, errors.InvalidArgumentf("axis must be %q or %q", SlotAxisCurrent, SlotAxisMax)
	}

	slots := input.Slots.Clone()
	pair, ok := slots[input.Level]
	if !ok {
		return &AdjustSpellSlotOutput{Slots: slots}, nil
	}

	next := pair
	switch input.Axis {
	case SlotAxisCurrent:
		next.Current = clamp(addSaturating(pair.Current, input.Delta), 0, pair.Max)
	case SlotAxisMax:
		next.Max = max(0, addSaturating(pair.Max, input.Delta))
		next.Current = min(pair.Current, next.Max)
	}
	slots[input.Level] = next

	return &AdjustSpellSlotOutput{
		Slots:   slots,
		Pair:    next,
		Present: true,
		Changed: next != pair,
	}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// addSaturating is a+b pinned to the int range instead of wrapping.
func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
