package engine

import (
	"github.com/KirkDiggler/grimoire-api/internal/catalog"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

type engine struct {
	catalog catalog.Catalog
}

// Config holds the engine dependencies.
type Config struct {
	Catalog catalog.Catalog
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// New creates a rules engine over the given catalog.
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}
	return &engine{catalog: cfg.Catalog}, nil
}

func (e *engine) CalculateProficiencyBonus(level int) int {
	if level < 1 {
		return 2
	}
	return (level+3)/4 + 1
}
