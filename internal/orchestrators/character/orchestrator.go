// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/catalog"
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/clock"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/grimoire-api/internal/repositories/character"
	sharerepo "github.com/KirkDiggler/grimoire-api/internal/repositories/share"
)

// DefaultShareTTL is how long a share link stays valid
const DefaultShareTTL = 30 * 24 * time.Hour

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	ShareRepo     sharerepo.Repository
	Engine        engine.Engine
	Catalog       catalog.Catalog
	IDGenerator   idgen.Generator
	// TokenGenerator mints share tokens (optional, defaults to random UUIDs)
	TokenGenerator idgen.Generator
	Clock          clock.Clock
	ShareTTL       time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ShareRepo == nil {
		vb.RequiredField("ShareRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ShareTTL < 0 {
		vb.Field("ShareTTL", "must not be negative")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo  characterrepo.Repository
	shareRepo      sharerepo.Repository
	engine         engine.Engine
	catalog        catalog.Catalog
	idGenerator    idgen.Generator
	tokenGenerator idgen.Generator
	clock          clock.Clock
	shareTTL       time.Duration
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &Orchestrator{
		characterRepo:  cfg.CharacterRepo,
		shareRepo:      cfg.ShareRepo,
		engine:         cfg.Engine,
		catalog:        cfg.Catalog,
		idGenerator:    cfg.IDGenerator,
		tokenGenerator: cfg.TokenGenerator,
		clock:          cfg.Clock,
		shareTTL:       cfg.ShareTTL,
	}
	if o.tokenGenerator == nil {
		o.tokenGenerator = idgen.NewUUID("")
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.shareTTL == 0 {
		o.shareTTL = DefaultShareTTL
	}

	return o, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// ListCharacters lists the caller's characters, newest first
func (o *Orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.UserID == "" {
		return nil, errors.Unauthenticated("authentication required")
	}

	result, err := o.characterRepo.ListByUserID(ctx, characterrepo.ListByUserIDInput{UserID: input.UserID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	characters := make([]*entities.Character, 0, len(result.Characters))
	for _, c := range result.Characters {
		if input.SpellcastersOnly && !o.isSpellcaster(c.ClassName) {
			continue
		}
		o.normalizeKnown(c)
		characters = append(characters, c)
	}

	return &ListCharactersOutput{Characters: characters}, nil
}

// CreateCharacter stores a new character owned by the caller
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.UserID == "" {
		return nil, errors.Unauthenticated("authentication required")
	}

	c, err := o.buildCharacter(input.UserID, &input.Draft)
	if err != nil {
		return nil, err
	}

	result, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: c})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", result.Character.ID,
		"user_id", input.UserID,
		"class_name", result.Character.ClassName,
		"level", result.Character.Level)

	return &CreateCharacterOutput{Character: result.Character}, nil
}

// GetCharacter retrieves an owned character
func (o *Orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.getOwned(ctx, input.UserID, input.CharacterID)
	if err != nil {
		return nil, err
	}
	return &GetCharacterOutput{Character: c}, nil
}

// UpdateCharacter applies a partial update to an owned character
func (o *Orchestrator) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwner(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	recomputed := false
	result, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID:     input.CharacterID,
		UserID: input.UserID,
		Mutate: func(c *entities.Character) error {
			var err error
			recomputed, err = o.applyPatch(c, &input.Patch)
			return err
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	o.normalizeKnown(result.Character)
	return &UpdateCharacterOutput{Character: result.Character, Recomputed: recomputed}, nil
}

// DeleteCharacter deletes an owned character. Deleting a character the
// caller cannot see succeeds without effect.
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwner(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	result, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{
		ID:     input.CharacterID,
		UserID: input.UserID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}

	if !result.Deleted {
		slog.DebugContext(ctx, "delete matched no owned character",
			"character_id", input.CharacterID,
			"user_id", input.UserID)
	}

	return &DeleteCharacterOutput{Deleted: result.Deleted}, nil
}

// getOwned loads a character the caller owns, with spells_known normalized.
func (o *Orchestrator) getOwned(ctx context.Context, userID, characterID string) (*entities.Character, error) {
	if err := validateOwner(userID, characterID); err != nil {
		return nil, err
	}

	result, err := o.characterRepo.Get(ctx, characterrepo.GetInput{
		ID:     characterID,
		UserID: userID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	o.normalizeKnown(result.Character)
	return result.Character, nil
}

func validateOwner(userID, characterID string) error {
	if userID == "" {
		return errors.Unauthenticated("authentication required")
	}
	if strings.TrimSpace(characterID) == "" {
		return errors.InvalidArgument("character ID is required")
	}
	return nil
}

func (o *Orchestrator) isSpellcaster(className string) bool {
	class, ok := o.catalog.ClassByName(className)
	return ok && class.IsSpellcaster()
}

// normalizeKnown fills in the level of known spells stored as bare names.
func (o *Orchestrator) normalizeKnown(c *entities.Character) {
	if c == nil {
		return
	}
	if c.SpellsKnown == nil {
		c.SpellsKnown = []entities.KnownSpell{}
	}
	if c.SpellSlots == nil {
		c.SpellSlots = entities.SpellSlots{}
	}
	for i, known := range c.SpellsKnown {
		if known.Level != entities.UnknownSpellLevel {
			continue
		}
		if spell, ok := o.catalog.SpellByName(known.Name); ok {
			c.SpellsKnown[i].Level = spell.Level
		}
	}
}
