// Package catalog is the read-only rules catalog: the classes and spells the
// rest of the service derives character state from.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

//go:embed data/classes.json
var bundledClasses []byte

//go:embed data/spells.json
var bundledSpells []byte

// Catalog exposes read-only lookups over the rules data.
type Catalog interface {
	// ClassByName matches a class name exactly (case-sensitive).
	ClassByName(name string) (*dnd5e.Class, bool)

	// Classes returns every class in catalog order.
	Classes() []*dnd5e.Class

	// AllSpells returns every spell in catalog order.
	AllSpells() []*dnd5e.Spell

	// SpellByID looks a spell up by its id.
	SpellByID(id string) (*dnd5e.Spell, bool)

	// SpellByName matches a spell name exactly.
	SpellByName(name string) (*dnd5e.Spell, bool)
}

// SpellSource supplies an alternative spell list, already adapted into the
// catalog's Spell shape.
type SpellSource interface {
	Name() string
	LoadSpells(ctx context.Context) ([]*dnd5e.Spell, error)
}

// Config controls how the catalog is loaded. Zero values use the bundled
// reference data.
type Config struct {
	// ClassesJSON replaces the bundled classes when set.
	ClassesJSON []byte
	// SpellsJSON replaces the bundled baseline spells when set.
	SpellsJSON []byte
	// Supplementary is preferred over the baseline spells when it yields any.
	Supplementary SpellSource
}

// Store is the in-memory Catalog. It is never mutated after construction, so
// it is safe for concurrent use.
type Store struct {
	classes      []*dnd5e.Class
	classByName  map[string]*dnd5e.Class
	spells       []*dnd5e.Spell
	spellByID    map[string]*dnd5e.Spell
	spellByName  map[string]*dnd5e.Spell
	spellsOrigin string
}

var _ Catalog = (*Store)(nil)

// Load decodes the reference data and builds a Store. Malformed baseline data
// is an error; a failing supplementary source only logs a warning.
func Load(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	classesJSON := cfg.ClassesJSON
	if len(classesJSON) == 0 {
		classesJSON = bundledClasses
	}
	spellsJSON := cfg.SpellsJSON
	if len(spellsJSON) == 0 {
		spellsJSON = bundledSpells
	}

	var classes []*dnd5e.Class
	if err := json.Unmarshal(classesJSON, &classes); err != nil {
		return nil, errors.Wrap(err, "failed to decode classes")
	}
	var spells []*dnd5e.Spell
	if err := json.Unmarshal(spellsJSON, &spells); err != nil {
		return nil, errors.Wrap(err, "failed to decode spells")
	}

	origin := "baseline"
	if cfg.Supplementary != nil {
		supplementary, err := loadSupplementary(ctx, cfg.Supplementary)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "Supplementary spell source failed, using baseline spells",
				"source", cfg.Supplementary.Name(),
				"error", err)
		case len(supplementary) == 0:
			slog.WarnContext(ctx, "Supplementary spell source returned no spells, using baseline spells",
				"source", cfg.Supplementary.Name())
		default:
			slog.InfoContext(ctx, "Using supplementary spell source",
				"source", cfg.Supplementary.Name(),
				"count", len(supplementary))
			spells = supplementary
			origin = cfg.Supplementary.Name()
		}
	}

	store, err := New(classes, spells)
	if err != nil {
		return nil, err
	}
	store.spellsOrigin = origin
	return store, nil
}

func loadSupplementary(ctx context.Context, src SpellSource) ([]*dnd5e.Spell, error) {
	spells, err := src.LoadSpells(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateSpells(spells); err != nil {
		return nil, err
	}
	return spells, nil
}

// New builds a Store from already decoded data. Tests use it with fixture
// catalogs.
func New(classes []*dnd5e.Class, spells []*dnd5e.Spell) (*Store, error) {
	s := &Store{
		classes:      classes,
		classByName:  make(map[string]*dnd5e.Class, len(classes)),
		spells:       spells,
		spellByID:    make(map[string]*dnd5e.Spell, len(spells)),
		spellByName:  make(map[string]*dnd5e.Spell, len(spells)),
		spellsOrigin: "baseline",
	}

	for i, class := range classes {
		if class == nil || strings.TrimSpace(class.Name) == "" {
			return nil, errors.InvalidArgumentf("class at index %d has no name", i)
		}
		if _, dup := s.classByName[class.Name]; dup {
			return nil, errors.InvalidArgumentf("duplicate class %q", class.Name)
		}
		if _, err := class.HitDieValue(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid class")
		}
		s.classByName[class.Name] = class
	}

	if err := validateSpells(spells); err != nil {
		return nil, err
	}
	for _, spell := range spells {
		if spell.ID != "" {
			s.spellByID[spell.ID] = spell
		}
		if _, dup := s.spellByName[spell.Name]; !dup {
			s.spellByName[spell.Name] = spell
		}
	}

	return s, nil
}

func validateSpells(spells []*dnd5e.Spell) error {
	for i, spell := range spells {
		if spell == nil || strings.TrimSpace(spell.Name) == "" {
			return errors.InvalidArgumentf("spell at index %d has no name", i)
		}
		if spell.Level < 0 || spell.Level > dnd5e.MaxSpellLevel {
			return errors.InvalidArgumentf("spell %q has level %d outside 0-%d", spell.Name, spell.Level, dnd5e.MaxSpellLevel)
		}
		if _, ok := dnd5e.ParseSchool(string(spell.School)); !ok {
			return errors.InvalidArgumentf("spell %q has unknown school %q", spell.Name, spell.School)
		}
	}
	return nil
}

// ClassByName implements Catalog.
func (s *Store) ClassByName(name string) (*dnd5e.Class, bool) {
	class, ok := s.classByName[name]
	return class, ok
}

// Classes implements Catalog.
func (s *Store) Classes() []*dnd5e.Class {
	return s.classes
}

// AllSpells implements Catalog.
func (s *Store) AllSpells() []*dnd5e.Spell {
	return s.spells
}

// SpellByID implements Catalog.
func (s *Store) SpellByID(id string) (*dnd5e.Spell, bool) {
	spell, ok := s.spellByID[id]
	return spell, ok
}

// SpellByName implements Catalog.
func (s *Store) SpellByName(name string) (*dnd5e.Spell, bool) {
	spell, ok := s.spellByName[name]
	return spell, ok
}

// SpellsOrigin names where the spell list came from.
func (s *Store) SpellsOrigin() string {
	return s.spellsOrigin
}

// Problems reports table inconsistencies that do not stop the catalog from
// loading but produce odd progressions.
func (s *Store) Problems() []string {
	var problems []string
	for _, class := range s.classes {
		sc := class.Spellcasting
		if sc == nil {
			continue
		}
		for _, level := range sc.SlotLevels() {
			n := 0
			if _, err := fmt.Sscanf(level, "%d", &n); err != nil || n < 1 || n > dnd5e.MaxSpellLevel {
				problems = append(problems, fmt.Sprintf("%s: slot level key %q is not 1-%d", class.Name, level, dnd5e.MaxSpellLevel))
			}
			if got := len(sc.SpellSlots[level]); got != dnd5e.MaxLevel {
				problems = append(problems, fmt.Sprintf("%s: slot level %s has %d entries, want %d", class.Name, level, got, dnd5e.MaxLevel))
			}
		}
		if got := len(sc.CantripsKnown); got != 0 && got != dnd5e.MaxLevel {
			problems = append(problems, fmt.Sprintf("%s: cantrips_known has %d entries, want %d", class.Name, got, dnd5e.MaxLevel))
		}
		if got := len(sc.SpellsKnown); got != 0 && got != dnd5e.MaxLevel {
			problems = append(problems, fmt.Sprintf("%s: spells_known has %d entries, want %d", class.Name, got, dnd5e.MaxLevel))
		}
	}
	return problems
}
