package character

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/grimoire-api/internal/orchestrators/character Service

// Service defines the character orchestrator interface. Every operation but
// GetSharedCharacter is scoped to the calling user.
type Service interface {
	// Character records
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Share links
	ShareCharacter(ctx context.Context, input *ShareCharacterInput) (*ShareCharacterOutput, error)
	RevokeShare(ctx context.Context, input *RevokeShareInput) (*RevokeShareOutput, error)
	GetSharedCharacter(ctx context.Context, input *GetSharedCharacterInput) (*GetSharedCharacterOutput, error)

	// Spellcasting
	AdjustSpellSlot(ctx context.Context, input *AdjustSpellSlotInput) (*AdjustSpellSlotOutput, error)
	LearnSpells(ctx context.Context, input *LearnSpellsInput) (*LearnSpellsOutput, error)
	GetGrimoire(ctx context.Context, input *GetGrimoireInput) (*GetGrimoireOutput, error)
}

// ListCharactersInput lists the caller's characters
type ListCharactersInput struct {
	UserID string
	// SpellcastersOnly keeps characters whose class has a spellcasting block
	SpellcastersOnly bool
}

// ListCharactersOutput holds characters newest first
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// CharacterDraft is the client-supplied content of a new character. Nil
// fields are absent.
type CharacterDraft struct {
	Name          string
	ClassName     string
	Level         *int
	HPCurrent     *int
	HPMax         *int
	SpellSlots    entities.SpellSlots
	SpellsKnown   []entities.KnownSpell
	CharacterData json.RawMessage
}

// CreateCharacterInput creates a character owned by UserID
type CreateCharacterInput struct {
	UserID string
	Draft  CharacterDraft
}

// CreateCharacterOutput holds the stored character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput reads one owned character
type GetCharacterInput struct {
	UserID      string
	CharacterID string
}

// GetCharacterOutput holds the character
type GetCharacterOutput struct {
	Character *entities.Character
}

// CharacterPatch is a partial update. Nil fields are left untouched.
type CharacterPatch struct {
	Name          *string
	ClassName     *string
	Level         *int
	HPCurrent     *int
	HPMax         *int
	SpellSlots    entities.SpellSlots
	SpellsKnown   []entities.KnownSpell
	CharacterData json.RawMessage
}

// IsEmpty reports whether the patch changes nothing.
func (p *CharacterPatch) IsEmpty() bool {
	return p.Name == nil && p.ClassName == nil && p.Level == nil &&
		p.HPCurrent == nil && p.HPMax == nil && p.SpellSlots == nil &&
		p.SpellsKnown == nil && p.CharacterData == nil
}

// UpdateCharacterInput applies a patch to an owned character
type UpdateCharacterInput struct {
	UserID      string
	CharacterID string
	Patch       CharacterPatch
}

// UpdateCharacterOutput holds the updated character. Recomputed is set when
// a class or level change re-derived hit points and spell slots.
type UpdateCharacterOutput struct {
	Character  *entities.Character
	Recomputed bool
}

// DeleteCharacterInput deletes an owned character
type DeleteCharacterInput struct {
	UserID      string
	CharacterID string
}

// DeleteCharacterOutput reports whether anything was removed
type DeleteCharacterOutput struct {
	Deleted bool
}

// ShareCharacterInput mints a share link for an owned character
type ShareCharacterInput struct {
	UserID      string
	CharacterID string
}

// ShareCharacterOutput holds the new token and its expiry
type ShareCharacterOutput struct {
	Token     string
	ExpiresAt time.Time
	Character *entities.Character
}

// RevokeShareInput clears the share link of an owned character
type RevokeShareInput struct {
	UserID      string
	CharacterID string
}

// RevokeShareOutput holds the character without a token
type RevokeShareOutput struct {
	Character *entities.Character
}

// GetSharedCharacterInput resolves a share token
type GetSharedCharacterInput struct {
	Token string
}

// GetSharedCharacterOutput holds the shared character
type GetSharedCharacterOutput struct {
	Character *entities.Character
}

// AdjustSpellSlotInput moves one slot level of an owned character
type AdjustSpellSlotInput struct {
	UserID      string
	CharacterID string
	Level       string
	Axis        engine.SlotAxis
	Delta       int
}

// AdjustSpellSlotOutput holds the character after the adjustment. Changed is
// false when the level was absent or already at its bound.
type AdjustSpellSlotOutput struct {
	Character *entities.Character
	Pair      entities.SlotPair
	Present   bool
	Changed   bool
}

// LearnSpellsInput adds spells by name to an owned character's grimoire
type LearnSpellsInput struct {
	UserID      string
	CharacterID string
	SpellNames  []string
}

// LearnSpellsOutput holds the character and how many spells were new.
// Notice is set when nothing was added.
type LearnSpellsOutput struct {
	Character    *entities.Character
	Added        int
	AlreadyKnown bool
	Notice       string
}

// GetGrimoireInput reads the spell view of an owned character
type GetGrimoireInput struct {
	UserID      string
	CharacterID string
}

// GetGrimoireOutput holds the derived grimoire view
type GetGrimoireOutput struct {
	Grimoire *Grimoire
}

// Grimoire is the display view of a character's spells and slots. It is
// derived on read and never stored.
type Grimoire struct {
	CharacterID      string
	ClassName        string
	Level            int
	ProficiencyBonus int
	Spellcasting     *dnd5e.Spellcasting
	// ByLevel buckets known spells by spell level, each sorted by name
	ByLevel [dnd5e.MaxSpellLevel + 1][]*dnd5e.Spell
	// Unresolved lists known names the catalog does not contain
	Unresolved   []string
	Slots        []SlotLevel
	TotalCurrent int
	TotalMax     int
}

// SlotLevel is one row of the slot tracker
type SlotLevel struct {
	Level   string
	Current int
	Max     int
}
