package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

// FileSource reads a sourcebook spell export from disk. Sourcebook exports
// are looser than the catalog format: levels may be words ("cantrip",
// "3rd"), and components and classes may be comma-separated strings.
type FileSource struct {
	Path string
}

var _ SpellSource = (*FileSource)(nil)

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name implements SpellSource.
func (f *FileSource) Name() string {
	return "file:" + f.Path
}

type sourcebookSpell struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Level       json.RawMessage `json:"level"`
	School      string          `json:"school"`
	CastingTime string          `json:"casting_time"`
	Range       string          `json:"range"`
	Components  json.RawMessage `json:"components"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Ritual      bool            `json:"ritual"`
	Classes     json.RawMessage `json:"classes"`
	Subclasses  json.RawMessage `json:"subclasses"`
}

// LoadSpells implements SpellSource. Any entry that cannot be adapted fails
// the whole load.
func (f *FileSource) LoadSpells(_ context.Context) ([]*dnd5e.Spell, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return AdaptSourcebook(data)
}

// AdaptSourcebook converts a sourcebook export into catalog spells.
func AdaptSourcebook(data []byte) ([]*dnd5e.Spell, error) {
	var raw []sourcebookSpell
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode sourcebook: %w", err)
	}

	spells := make([]*dnd5e.Spell, 0, len(raw))
	for i, entry := range raw {
		spell, err := entry.adapt()
		if err != nil {
			return nil, fmt.Errorf("sourcebook entry %d (%q): %w", i, entry.Name, err)
		}
		spells = append(spells, spell)
	}
	return spells, nil
}

func (e sourcebookSpell) adapt() (*dnd5e.Spell, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	level, err := parseSourcebookLevel(e.Level)
	if err != nil {
		return nil, err
	}
	school, ok := dnd5e.ParseSchool(e.School)
	if !ok {
		return nil, fmt.Errorf("unknown school %q", e.School)
	}
	components, err := stringOrList(e.Components)
	if err != nil {
		return nil, fmt.Errorf("components: %w", err)
	}
	classes, err := stringOrList(e.Classes)
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	subclasses, err := stringOrList(e.Subclasses)
	if err != nil {
		return nil, fmt.Errorf("subclasses: %w", err)
	}

	id := e.ID
	if id == "" {
		id = slug(name)
	}

	return &dnd5e.Spell{
		ID:            id,
		Name:          name,
		Level:         level,
		School:        school,
		CastingTime:   e.CastingTime,
		Range:         e.Range,
		Components:    strings.Join(components, ", "),
		Duration:      e.Duration,
		Description:   e.Description,
		Source:        e.Source,
		Ritual:        e.Ritual,
		Concentration: strings.HasPrefix(strings.ToLower(e.Duration), "concentration"),
		Classes:       classes,
		Subclasses:    subclasses,
	}, nil
}

func parseSourcebookLevel(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var word string
	if err := json.Unmarshal(raw, &word); err != nil {
		return 0, fmt.Errorf("level must be a number or a string")
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "cantrip" || word == "truque" {
		return 0, nil
	}
	digits := strings.TrimRight(word, "abcdefghijklmnopqrstuvwxyzº° ")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("unrecognised level %q", word)
	}
	return n, nil
}

func stringOrList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list), nil
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil, fmt.Errorf("must be a string or a list of strings")
	}
	return trimAll(strings.Split(joined, ",")), nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == '\'':
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
