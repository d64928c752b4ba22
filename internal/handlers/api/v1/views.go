package v1

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
)

// characterRequest is the body of POST and PUT /characters. Owner fields in
// the body are ignored; the owner is always the caller.
type characterRequest struct {
	Name          *string               `json:"name"`
	ClassName     *string               `json:"class_name"`
	Level         *int                  `json:"level"`
	HPCurrent     *int                  `json:"hp_current"`
	HPMax         *int                  `json:"hp_max"`
	SpellSlots    entities.SpellSlots   `json:"spell_slots"`
	SpellsKnown   []entities.KnownSpell `json:"spells_known"`
	CharacterData json.RawMessage       `json:"character_data"`
}

func (req *characterRequest) draft() character.CharacterDraft {
	d := character.CharacterDraft{
		Level:         req.Level,
		HPCurrent:     req.HPCurrent,
		HPMax:         req.HPMax,
		SpellSlots:    req.SpellSlots,
		SpellsKnown:   req.SpellsKnown,
		CharacterData: req.CharacterData,
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.ClassName != nil {
		d.ClassName = *req.ClassName
	}
	return d
}

func (req *characterRequest) patch() character.CharacterPatch {
	return character.CharacterPatch{
		Name:          req.Name,
		ClassName:     req.ClassName,
		Level:         req.Level,
		HPCurrent:     req.HPCurrent,
		HPMax:         req.HPMax,
		SpellSlots:    req.SpellSlots,
		SpellsKnown:   req.SpellsKnown,
		CharacterData: req.CharacterData,
	}
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type shareResponse struct {
	ShareToken string    `json:"share_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type revokeResponse struct {
	Revoked bool `json:"revoked"`
}

// sharedCharacterView is the read-only sheet behind a share link.
type sharedCharacterView struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	ClassName     string                `json:"class_name"`
	Level         int                   `json:"level"`
	HPCurrent     int                   `json:"hp_current"`
	HPMax         int                   `json:"hp_max"`
	SpellSlots    entities.SpellSlots   `json:"spell_slots"`
	SpellsKnown   []entities.KnownSpell `json:"spells_known"`
	CharacterData json.RawMessage       `json:"character_data,omitempty"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func toSharedView(c *entities.Character) sharedCharacterView {
	return sharedCharacterView{
		ID:            c.ID,
		Name:          c.Name,
		ClassName:     c.ClassName,
		Level:         c.Level,
		HPCurrent:     c.HPCurrent,
		HPMax:         c.HPMax,
		SpellSlots:    c.SpellSlots,
		SpellsKnown:   c.SpellsKnown,
		CharacterData: c.CharacterData,
		UpdatedAt:     c.UpdatedAt,
	}
}

type adjustSlotRequest struct {
	Axis  engine.SlotAxis `json:"axis"`
	Delta *int            `json:"delta"`
}

type adjustSlotResponse struct {
	Character *entities.Character `json:"character"`
	Level     string              `json:"level"`
	Slot      *entities.SlotPair  `json:"slot"`
	Changed   bool                `json:"changed"`
}

type learnSpellsRequest struct {
	Spells []string `json:"spells"`
}

type learnSpellsResponse struct {
	Character *entities.Character `json:"character"`
	Added     int                 `json:"added"`
	Notice    string              `json:"notice,omitempty"`
}

type grimoireSpell struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Level  int          `json:"level"`
	School dnd5e.School `json:"school"`
	Ritual bool         `json:"ritual,omitempty"`
}

type grimoireLevel struct {
	Level  int             `json:"level"`
	Spells []grimoireSpell `json:"spells"`
}

type grimoireSlot struct {
	Level   string `json:"level"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

type grimoireResponse struct {
	CharacterID      string              `json:"character_id"`
	ClassName        string              `json:"class_name"`
	Level            int                 `json:"level"`
	ProficiencyBonus int                 `json:"proficiency_bonus"`
	Spellcasting     *dnd5e.Spellcasting `json:"spellcasting,omitempty"`
	SpellsByLevel    []grimoireLevel     `json:"spells_by_level"`
	Unresolved       []string            `json:"unresolved"`
	Slots            []grimoireSlot      `json:"slots"`
	TotalCurrent     int                 `json:"total_current"`
	TotalMax         int                 `json:"total_max"`
}

// toGrimoireResponse lists only the spell levels that hold spells.
func toGrimoireResponse(g *character.Grimoire) grimoireResponse {
	resp := grimoireResponse{
		CharacterID:      g.CharacterID,
		ClassName:        g.ClassName,
		Level:            g.Level,
		ProficiencyBonus: g.ProficiencyBonus,
		Spellcasting:     g.Spellcasting,
		SpellsByLevel:    []grimoireLevel{},
		Unresolved:       g.Unresolved,
		Slots:            make([]grimoireSlot, 0, len(g.Slots)),
		TotalCurrent:     g.TotalCurrent,
		TotalMax:         g.TotalMax,
	}
	for level, spells := range g.ByLevel {
		if len(spells) == 0 {
			continue
		}
		bucket := grimoireLevel{Level: level, Spells: make([]grimoireSpell, 0, len(spells))}
		for _, spell := range spells {
			bucket.Spells = append(bucket.Spells, grimoireSpell{
				ID:     spell.ID,
				Name:   spell.Name,
				Level:  spell.Level,
				School: spell.School,
				Ritual: spell.Ritual,
			})
		}
		resp.SpellsByLevel = append(resp.SpellsByLevel, bucket)
	}
	for _, slot := range g.Slots {
		resp.Slots = append(resp.Slots, grimoireSlot(slot))
	}
	return resp
}

type classSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	HitDie           string   `json:"hit_die"`
	Spellcaster      bool     `json:"spellcaster"`
	PrimaryAbilities []string `json:"primary_abilities,omitempty"`
	Subclasses       []string `json:"subclasses"`
}

type classDetailResponse struct {
	Class       *dnd5e.Class            `json:"class"`
	Progression []engine.ProgressionRow `json:"progression"`
}

type schoolGroup struct {
	School dnd5e.School   `json:"school"`
	Spells []*dnd5e.Spell `json:"spells"`
}

type classSpellsResponse struct {
	Class   string        `json:"class"`
	Total   int           `json:"total"`
	Schools []schoolGroup `json:"schools"`
}

type spellListResponse struct {
	Spells     []*dnd5e.Spell `json:"spells"`
	Count      int            `json:"count"`
	ClassNames []string       `json:"class_names"`
}
