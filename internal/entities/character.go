// Package entities holds the persisted domain records of grimoire-api.
package entities

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

// Character is a player character owned by exactly one user.
type Character struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	ClassName      string          `json:"class_name"`
	Level          int             `json:"level"`
	HPCurrent      int             `json:"hp_current"`
	HPMax          int             `json:"hp_max"`
	SpellSlots     SpellSlots      `json:"spell_slots"`
	SpellsKnown    []KnownSpell    `json:"spells_known"`
	CharacterData  json.RawMessage `json:"character_data,omitempty"`
	ShareToken     *string         `json:"share_token,omitempty"`
	TokenExpiresAt *time.Time      `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.SpellSlots = c.SpellSlots.Clone()
	out.SpellsKnown = slices.Clone(c.SpellsKnown)
	out.CharacterData = slices.Clone(c.CharacterData)
	if c.ShareToken != nil {
		token := *c.ShareToken
		out.ShareToken = &token
	}
	if c.TokenExpiresAt != nil {
		expires := *c.TokenExpiresAt
		out.TokenExpiresAt = &expires
	}
	return &out
}

// KnownSpellNames returns the names in spells_known, in order.
func (c *Character) KnownSpellNames() []string {
	names := make([]string, 0, len(c.SpellsKnown))
	for _, ks := range c.SpellsKnown {
		names = append(names, ks.Name)
	}
	return names
}

// SharedWith reports whether token is this character's share token and has
// not expired at now.
func (c *Character) SharedWith(token string, now time.Time) bool {
	if c.ShareToken == nil || *c.ShareToken == "" || *c.ShareToken != token {
		return false
	}
	return c.TokenExpiresAt != nil && now.Before(*c.TokenExpiresAt)
}

// SlotPair is the current and maximum count of one spell-slot level. It is
// encoded as a two-element array [current, max].
type SlotPair struct {
	Current int
	Max     int
}

// MarshalJSON writes [current, max].
func (p SlotPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Current, p.Max})
}

// UnmarshalJSON reads [current, max].
func (p *SlotPair) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("spell slot must be [current, max]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("spell slot must have 2 elements, got %d", len(pair))
	}
	p.Current, p.Max = pair[0], pair[1]
	return nil
}

// SpellSlots maps a slot level ("1".."9") to its pair.
type SpellSlots map[string]SlotPair

// Clone copies the map.
func (s SpellSlots) Clone() SpellSlots {
	if s == nil {
		return nil
	}
	out := make(SpellSlots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Levels returns the keys in numeric order.
func (s SpellSlots) Levels() []string {
	levels := make([]string, 0, len(s))
	for k := range s {
		levels = append(levels, k)
	}
	slices.SortFunc(levels, dnd5e.CompareSlotLevels)
	return levels
}

// UnknownSpellLevel marks a known spell whose level could not be resolved.
const UnknownSpellLevel = -1

// KnownSpell is one entry of a character's grimoire. Stored records may hold
// a bare spell name; those decode with Level set to UnknownSpellLevel and are
// always written back as {"name", "level"} objects.
type KnownSpell struct {
	Name  string
	Level int
}

type knownSpellWire struct {
	Name  string `json:"name"`
	Level *int   `json:"level,omitempty"`
}

// MarshalJSON always writes the object form.
func (k KnownSpell) MarshalJSON() ([]byte, error) {
	wire := knownSpellWire{Name: k.Name}
	if k.Level != UnknownSpellLevel {
		level := k.Level
		wire.Level = &level
	}
	return json.Marshal(wire)
}

// UnmarshalJSON accepts a bare name or an object.
func (k *KnownSpell) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*k = KnownSpell{Name: name, Level: UnknownSpellLevel}
		return nil
	}

	var wire knownSpellWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("known spell must be a name or {name, level}: %w", err)
	}
	*k = KnownSpell{Name: wire.Name, Level: UnknownSpellLevel}
	if wire.Level != nil {
		k.Level = *wire.Level
	}
	return nil
}
