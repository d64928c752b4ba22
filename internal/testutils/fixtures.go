package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/grimoire-api/internal/catalog"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

// Fixture identities and names shared across tests
const (
	TestUserID      = "user-test-001"
	OtherUserID     = "user-test-002"
	TestCharacterID = "char-test-001"

	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Merric Underbough"
)

// FixtureTime is the fixed instant fixture records are stamped with.
var FixtureTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// fullCasterSlots is the standard full-caster table.
func fullCasterSlots() map[string][]int {
	return map[string][]int{
		"1": {2, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
		"2": {0, 0, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
		"3": {0, 0, 0, 0, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
		"4": {0, 0, 0, 0, 0, 0, 1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
		"5": {0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3},
		"6": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2},
		"7": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 2},
		"8": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
		"9": {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	}
}

// FixtureClasses returns a small deterministic class list: two full casters,
// a martial class without spellcasting and a pact caster.
func FixtureClasses() []*dnd5e.Class {
	return []*dnd5e.Class{
		{
			ID:               "cleric",
			Name:             "Cleric",
			HitDie:           "d8",
			PrimaryAbilities: []string{"Wisdom"},
			SavingThrows:     []string{"Wisdom", "Charisma"},
			Features: []dnd5e.Feature{
				{Level: 1, Name: "Spellcasting", Description: "Divine magic."},
				{Level: 2, Name: "Channel Divinity", Description: "Channel divine energy."},
			},
			Spellcasting: &dnd5e.Spellcasting{
				Ability:       "Wisdom",
				RitualCasting: true,
				CantripsKnown: []int{3, 3, 3, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
				SpellSlots:    fullCasterSlots(),
			},
			Subclasses: []dnd5e.Subclass{{Name: "Life Domain"}},
		},
		{
			ID:               "wizard",
			Name:             "Wizard",
			HitDie:           "d6",
			PrimaryAbilities: []string{"Intelligence"},
			SavingThrows:     []string{"Intelligence", "Wisdom"},
			Spellcasting: &dnd5e.Spellcasting{
				Ability:       "Intelligence",
				CantripsKnown: []int{3, 3, 3, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
				SpellSlots:    fullCasterSlots(),
			},
			Subclasses: []dnd5e.Subclass{
				{Name: "School of Evocation"},
				{Name: "School of Illusion", Description: "Illusionists."},
			},
		},
		{
			ID:               "fighter",
			Name:             "Fighter",
			HitDie:           "d10",
			PrimaryAbilities: []string{"Strength"},
			SavingThrows:     []string{"Strength", "Constitution"},
			Subclasses:       []dnd5e.Subclass{{Name: "Champion"}},
		},
		{
			ID:     "warlock",
			Name:   "Warlock",
			HitDie: "d8",
			Spellcasting: &dnd5e.Spellcasting{
				Ability:       "Charisma",
				CantripsKnown: []int{2, 2, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
				SpellsKnown:   []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15},
				SpellSlots: map[string][]int{
					"1": {1, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
					"2": {0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
				},
			},
			Subclasses: []dnd5e.Subclass{{Name: "The Fiend"}},
		},
	}
}

// FixtureSpells returns spells that exercise every eligibility path.
func FixtureSpells() []*dnd5e.Spell {
	return []*dnd5e.Spell{
		{ID: "light", Name: "Light", Level: 0, School: dnd5e.SchoolEvocation, Classes: []string{"Bard", "Cleric", "Sorcerer", "Wizard"}},
		{ID: "sacred-flame", Name: "Sacred Flame", Level: 0, School: dnd5e.SchoolEvocation, Classes: []string{"Cleric"}},
		{ID: "magic-missile", Name: "Magic Missile", Level: 1, School: dnd5e.SchoolEvocation, Classes: []string{"Sorcerer", "Wizard"}},
		{ID: "cure-wounds", Name: "Cure Wounds", Level: 1, School: dnd5e.SchoolEvocation, Classes: []string{"Cleric", "Druid"}},
		{ID: "burning-hands", Name: "Burning Hands", Level: 1, School: dnd5e.SchoolEvocation, Classes: []string{"Sorcerer"}, Subclasses: []string{"the fiend"}},
		{ID: "shield", Name: "Shield", Level: 1, School: dnd5e.SchoolAbjuration, Classes: []string{" WIZARD "}},
		{ID: "phantasmal-force", Name: "Phantasmal Force", Level: 2, School: dnd5e.SchoolIllusion, Classes: []string{"Bard"}, Subclasses: []string{"school of illusion"}},
		{ID: "arcane-lock", Name: "Arcane Lock", Level: 2, School: dnd5e.SchoolAbjuration, Classes: []string{"Wizards"}},
		{ID: "fireball", Name: "Fireball", Level: 3, School: dnd5e.SchoolEvocation, Classes: []string{"Sorcerer", "Wizard"}},
		{ID: "spirit-guardians", Name: "Spirit Guardians", Level: 3, School: dnd5e.SchoolConjuration, Classes: []string{"Cleric"}},
	}
}

// NewFixtureCatalog builds a catalog.Store from the fixture data.
func NewFixtureCatalog(t *testing.T) *catalog.Store {
	store, err := catalog.New(FixtureClasses(), FixtureSpells())
	require.NoError(t, err, "failed to build fixture catalog")
	return store
}

// NewTestCharacter returns a level 1 Cleric owned by userID with full slots.
func NewTestCharacter(userID string) *entities.Character {
	return &entities.Character{
		ID:          TestCharacterID,
		UserID:      userID,
		Name:        TestCharacterName,
		ClassName:   "Cleric",
		Level:       1,
		HPCurrent:   10,
		HPMax:       10,
		SpellSlots:  entities.SpellSlots{"1": {Current: 2, Max: 2}},
		SpellsKnown: []entities.KnownSpell{{Name: "Light", Level: 0}},
		CreatedAt:   FixtureTime,
		UpdatedAt:   FixtureTime,
	}
}
