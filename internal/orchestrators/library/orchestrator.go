// Package library implements read-only browsing of classes and spells
package library

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/catalog"
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// Config holds the dependencies for the library orchestrator
type Config struct {
	Catalog catalog.Catalog
	Engine  engine.Engine
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	catalog catalog.Catalog
	engine  engine.Engine
}

var _ Service = (*Orchestrator)(nil)

// New creates a new library orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Orchestrator{catalog: cfg.Catalog, engine: cfg.Engine}, nil
}

// ListClasses returns every class in catalog order
func (o *Orchestrator) ListClasses(_ context.Context, _ *ListClassesInput) (*ListClassesOutput, error) {
	return &ListClassesOutput{Classes: o.catalog.Classes()}, nil
}

// GetClass returns a class with its progression table
func (o *Orchestrator) GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	table, err := o.engine.ProgressionTable(&engine.ProgressionTableInput{ClassName: input.Name})
	if err != nil {
		slog.DebugContext(ctx, "progression table unavailable", "class_name", input.Name, "error", err)
		return nil, errors.Wrap(err, "failed to get class")
	}

	return &GetClassOutput{Class: table.Class, Progression: table.Rows}, nil
}

// ListClassSpells groups the spells a class can learn by school
func (o *Orchestrator) ListClassSpells(_ context.Context, input *ListClassSpellsInput) (*ListClassSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	class, ok := o.catalog.ClassByName(input.Name)
	if !ok {
		return nil, errors.NotFoundf("class %q not found", input.Name)
	}

	eligible, err := o.engine.EligibleSpells(&engine.EligibleSpellsInput{Class: class})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list class spells")
	}

	return &ListClassSpellsOutput{
		Class:   class,
		Schools: engine.GroupBySchool(eligible.Spells),
		Total:   len(eligible.Spells),
	}, nil
}

// ListSpells searches the spell list
func (o *Orchestrator) ListSpells(_ context.Context, input *ListSpellsInput) (*ListSpellsOutput, error) {
	if input == nil {
		input = &ListSpellsInput{}
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	className := strings.TrimSpace(input.ClassName)

	all := o.catalog.AllSpells()
	spells := make([]*dnd5e.Spell, 0, len(all))
	for _, spell := range all {
		if search != "" && !strings.Contains(strings.ToLower(spell.Name), search) {
			continue
		}
		if className != "" && !engine.IsEligible(spell, className, nil) {
			continue
		}
		spells = append(spells, spell)
	}

	slices.SortStableFunc(spells, func(a, b *dnd5e.Spell) int {
		return cmp.Or(cmp.Compare(a.Level, b.Level), strings.Compare(a.Name, b.Name))
	})

	return &ListSpellsOutput{Spells: spells, ClassNames: classNames(all)}, nil
}

// GetSpell returns one spell by id
func (o *Orchestrator) GetSpell(_ context.Context, input *GetSpellInput) (*GetSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	spell, ok := o.catalog.SpellByID(strings.TrimSpace(input.ID))
	if !ok {
		return nil, errors.NotFoundf("spell %q not found", input.ID)
	}
	return &GetSpellOutput{Spell: spell}, nil
}

// classNames collects the distinct trimmed class names the spells mention.
func classNames(spells []*dnd5e.Spell) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, spell := range spells {
		for _, name := range spell.Classes {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
