package external

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	internalDnd5e "github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

// mockSpellAPI is a mock implementation of the spell half of dnd5e.Interface
type mockSpellAPI struct {
	mock.Mock
}

func (m *mockSpellAPI) ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error) {
	args := m.Called(input)
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockSpellAPI) GetSpell(key string) (*entities.Spell, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Spell), args.Error(1)
}

func fireball() *entities.Spell {
	return &entities.Spell{
		Key:           "fireball",
		Name:          "Fireball",
		SpellLevel:    3,
		SpellSchool:   &entities.ReferenceItem{Key: "evocation", Name: "Evocation"},
		CastingTime:   "1 action",
		Range:         "150 feet",
		Duration:      "Instantaneous",
		SpellClasses:  []*entities.ReferenceItem{{Key: "sorcerer", Name: "Sorcerer"}, {Key: "wizard", Name: "Wizard"}},
		Concentration: false,
	}
}

func light() *entities.Spell {
	return &entities.Spell{
		Key:          "light",
		Name:         "Light",
		SpellLevel:   0,
		SpellSchool:  &entities.ReferenceItem{Key: "evocation", Name: "Evocation"},
		CastingTime:  "1 action",
		Range:        "Touch",
		Duration:     "1 hour",
		SpellClasses: []*entities.ReferenceItem{{Key: "cleric", Name: "Cleric"}},
	}
}

func TestLoadSpells(t *testing.T) {
	t.Run("converts spells in list order", func(t *testing.T) {
		api := new(mockSpellAPI)
		source := &SpellSource{api: api, concurrency: 2}

		refs := []*entities.ReferenceItem{
			{Key: "light", Name: "Light"},
			{Key: "fireball", Name: "Fireball"},
		}
		api.On("ListSpells", (*dnd5e.ListSpellsInput)(nil)).Return(refs, nil)
		api.On("GetSpell", "light").Return(light(), nil)
		api.On("GetSpell", "fireball").Return(fireball(), nil)

		spells, err := source.LoadSpells(context.Background())
		require.NoError(t, err)
		require.Len(t, spells, 2)

		assert.Equal(t, "light", spells[0].ID)
		assert.Equal(t, "Fireball", spells[1].Name)
		assert.Equal(t, 3, spells[1].Level)
		assert.Equal(t, internalDnd5e.SchoolEvocation, spells[1].School)
		assert.Equal(t, []string{"Sorcerer", "Wizard"}, spells[1].Classes)
		assert.Equal(t, spellSourceLabel, spells[1].Source)
		api.AssertExpectations(t)
	})

	t.Run("list failure", func(t *testing.T) {
		api := new(mockSpellAPI)
		source := &SpellSource{api: api, concurrency: 2}
		api.On("ListSpells", (*dnd5e.ListSpellsInput)(nil)).
			Return([]*entities.ReferenceItem(nil), errors.New("connection refused"))

		_, err := source.LoadSpells(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("detail failure fails the load", func(t *testing.T) {
		api := new(mockSpellAPI)
		source := &SpellSource{api: api, concurrency: 1}
		api.On("ListSpells", (*dnd5e.ListSpellsInput)(nil)).
			Return([]*entities.ReferenceItem{{Key: "fireball", Name: "Fireball"}}, nil)
		api.On("GetSpell", "fireball").Return((*entities.Spell)(nil), errors.New("503"))

		_, err := source.LoadSpells(context.Background())
		assert.ErrorContains(t, err, "fireball")
	})

	t.Run("unknown school fails the load", func(t *testing.T) {
		api := new(mockSpellAPI)
		source := &SpellSource{api: api, concurrency: 1}
		odd := fireball()
		odd.SpellSchool = &entities.ReferenceItem{Name: "Chronomancy"}
		api.On("ListSpells", (*dnd5e.ListSpellsInput)(nil)).
			Return([]*entities.ReferenceItem{{Key: "fireball", Name: "Fireball"}}, nil)
		api.On("GetSpell", "fireball").Return(odd, nil)

		_, err := source.LoadSpells(context.Background())
		assert.ErrorContains(t, err, "Chronomancy")
	})
}

func TestBuildSpellDescription(t *testing.T) {
	spell := fireball()
	spell.AreaOfEffect = nil

	assert.Equal(t, "See the SRD for the full description.", buildSpellDescription(spell))
}

func TestBaseDamageForSpellLevel(t *testing.T) {
	damage := &entities.SpellDamageAtSlotLevel{FirstLevel: "1d10", ThirdLevel: "8d6", NinthLevel: "14d6"}

	assert.Equal(t, "1d10", baseDamageForSpellLevel(0, damage))
	assert.Equal(t, "8d6", baseDamageForSpellLevel(3, damage))
	assert.Equal(t, "14d6", baseDamageForSpellLevel(9, damage))
	assert.Empty(t, baseDamageForSpellLevel(10, damage))
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://www.dnd5eapi.co/api/2014/", cfg.BaseURL)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, SourceName, (&SpellSource{}).Name())
}
