// Package external is the location for the dnd5e-api client. It adapts the
// SRD spell list served by dnd5eapi.co into catalog spells.
package external

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"

	internalDnd5e "github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// SourceName identifies spells loaded through this client.
const SourceName = "dnd5eapi"

// spellSourceLabel is written to Spell.Source for adapted spells.
const spellSourceLabel = "SRD 5.1 (dnd5eapi.co)"

// spellAPI is the part of dnd5e.Interface the spell source uses.
type spellAPI interface {
	ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
	GetSpell(key string) (*entities.Spell, error)
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds in-flight spell detail requests (optional, defaults to 8)
	Concurrency int
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return nil
}

// SpellSource loads spells from the D&D 5e API. It satisfies
// catalog.SpellSource.
type SpellSource struct {
	api         spellAPI
	concurrency int
}

// New creates a spell source backed by a cached dnd5e-api client.
func New(cfg *Config) (*SpellSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	return &SpellSource{
		api:         dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
		concurrency: cfg.Concurrency,
	}, nil
}

// Name identifies the source in logs.
func (s *SpellSource) Name() string {
	return SourceName
}

// LoadSpells lists every spell and loads the details concurrently. The
// result keeps the API's list order. Any failed or unadaptable spell fails
// the whole load so the catalog can fall back to its bundled list.
func (s *SpellSource) LoadSpells(ctx context.Context) ([]*internalDnd5e.Spell, error) {
	slog.InfoContext(ctx, "Calling D&D 5e API to list spells")
	refs, err := s.api.ListSpells(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list spells from D&D 5e API: %w", err)
	}
	slog.InfoContext(ctx, "Got spell references", "count", len(refs))

	spells := make([]*internalDnd5e.Spell, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if ref == nil {
				return fmt.Errorf("spell reference %d is nil", i)
			}

			// cached after the first call
			spell, err := s.api.GetSpell(ref.Key)
			if err != nil {
				return fmt.Errorf("failed to get spell %s: %w", ref.Key, err)
			}

			converted, err := convertSpell(spell)
			if err != nil {
				return fmt.Errorf("failed to convert spell %s: %w", ref.Key, err)
			}
			spells[i] = converted
			slog.DebugContext(gctx, "Loaded spell details", "spell", ref.Name, "id", converted.ID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return spells, nil
}

// convertSpell converts a dnd5e-api spell into a catalog spell
func convertSpell(spell *entities.Spell) (*internalDnd5e.Spell, error) {
	if spell == nil {
		return nil, fmt.Errorf("spell is nil")
	}
	if spell.SpellSchool == nil {
		return nil, fmt.Errorf("spell %s has no school", spell.Key)
	}
	school, ok := internalDnd5e.ParseSchool(spell.SpellSchool.Name)
	if !ok {
		return nil, fmt.Errorf("spell %s has unknown school %q", spell.Key, spell.SpellSchool.Name)
	}

	classes := make([]string, 0, len(spell.SpellClasses))
	for _, class := range spell.SpellClasses {
		if class != nil && class.Name != "" {
			classes = append(classes, class.Name)
		}
	}

	return &internalDnd5e.Spell{
		ID:            spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		School:        school,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Description:   buildSpellDescription(spell),
		Source:        spellSourceLabel,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
		Classes:       classes,
	}, nil
}

// buildSpellDescription summarizes the structured fields the API exposes.
// The API client carries no prose description.
func buildSpellDescription(spell *entities.Spell) string {
	var parts []string

	if spell.SpellDamage != nil {
		if spell.SpellDamage.SpellDamageType != nil {
			parts = append(parts, fmt.Sprintf("Damage Type: %s", spell.SpellDamage.SpellDamageType.Name))
		}
		if spell.SpellDamage.SpellDamageAtSlotLevel != nil {
			baseDamage := baseDamageForSpellLevel(spell.SpellLevel, spell.SpellDamage.SpellDamageAtSlotLevel)
			if baseDamage != "" {
				parts = append(parts, fmt.Sprintf("Base Damage: %s", baseDamage))
			}
		}
	}

	if spell.DC != nil {
		dcInfo := "Saving Throw"
		if spell.DC.DCType != nil {
			dcInfo = fmt.Sprintf("%s Save", spell.DC.DCType.Name)
		}
		if spell.DC.DCSuccess != "" {
			dcInfo += fmt.Sprintf(" (%s)", spell.DC.DCSuccess)
		}
		parts = append(parts, dcInfo)
	}

	if spell.AreaOfEffect != nil {
		parts = append(parts, fmt.Sprintf("Area: %s (%d ft)", spell.AreaOfEffect.Type, spell.AreaOfEffect.Size))
	}

	if len(parts) == 0 {
		return "See the SRD for the full description."
	}
	return strings.Join(parts, ". ") + "."
}

// baseDamageForSpellLevel returns the damage at the spell's lowest slot
func baseDamageForSpellLevel(level int, damageAtSlotLevel *entities.SpellDamageAtSlotLevel) string {
	switch level {
	case 0, 1:
		return damageAtSlotLevel.FirstLevel
	case 2:
		return damageAtSlotLevel.SecondLevel
	case 3:
		return damageAtSlotLevel.ThirdLevel
	case 4:
		return damageAtSlotLevel.FourthLevel
	case 5:
		return damageAtSlotLevel.FifthLevel
	case 6:
		return damageAtSlotLevel.SixthLevel
	case 7:
		return damageAtSlotLevel.SeventhLevel
	case 8:
		return damageAtSlotLevel.EighthLevel
	case 9:
		return damageAtSlotLevel.NinthLevel
	default:
		return ""
	}
}
