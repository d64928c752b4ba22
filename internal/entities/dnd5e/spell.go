package dnd5e

import (
	"strings"
)

// School is one of the eight schools of magic.
type School string

// Schools of magic
const (
	SchoolAbjuration    School = "Abjuration"
	SchoolConjuration   School = "Conjuration"
	SchoolDivination    School = "Divination"
	SchoolEnchantment   School = "Enchantment"
	SchoolEvocation     School = "Evocation"
	SchoolIllusion      School = "Illusion"
	SchoolNecromancy    School = "Necromancy"
	SchoolTransmutation School = "Transmutation"
)

// Schools lists every school in alphabetical order.
var Schools = []School{
	SchoolAbjuration,
	SchoolConjuration,
	SchoolDivination,
	SchoolEnchantment,
	SchoolEvocation,
	SchoolIllusion,
	SchoolNecromancy,
	SchoolTransmutation,
}

// ParseSchool matches a school name case-insensitively.
func ParseSchool(name string) (School, bool) {
	for _, school := range Schools {
		if strings.EqualFold(strings.TrimSpace(name), string(school)) {
			return school, true
		}
	}
	return "", false
}

// MaxSpellLevel is the highest spell level; 0 is a cantrip.
const MaxSpellLevel = 9

// Spell is a spell from the rules catalog.
type Spell struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	School        School   `json:"school"`
	CastingTime   string   `json:"casting_time"`
	Range         string   `json:"range"`
	Components    string   `json:"components"`
	Duration      string   `json:"duration"`
	Description   string   `json:"description"`
	Source        string   `json:"source,omitempty"`
	Ritual        bool     `json:"ritual,omitempty"`
	Concentration bool     `json:"concentration,omitempty"`
	Classes       []string `json:"classes"`
	Subclasses    []string `json:"subclasses,omitempty"`
}

// IsCantrip reports whether the spell is level 0.
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}
