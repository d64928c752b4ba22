package library

import (
	"context"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities/dnd5e"
)

//go:generate mockgen -destination=mock/mock_service.go -package=librarymock github.com/KirkDiggler/grimoire-api/internal/orchestrators/library Service

// Service browses the rules catalog. Nothing here needs a caller identity.
type Service interface {
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)
	ListClassSpells(ctx context.Context, input *ListClassSpellsInput) (*ListClassSpellsOutput, error)
	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)
	GetSpell(ctx context.Context, input *GetSpellInput) (*GetSpellOutput, error)
}

// ListClassesInput is empty; every class is returned
type ListClassesInput struct{}

// ListClassesOutput holds classes in catalog order
type ListClassesOutput struct {
	Classes []*dnd5e.Class
}

// GetClassInput names one class
type GetClassInput struct {
	Name string
}

// GetClassOutput holds the class and its level 1-20 progression
type GetClassOutput struct {
	Class       *dnd5e.Class
	Progression []engine.ProgressionRow
}

// ListClassSpellsInput names the class whose spell list to build
type ListClassSpellsInput struct {
	Name string
}

// ListClassSpellsOutput holds the eligible spells grouped by school
type ListClassSpellsOutput struct {
	Class   *dnd5e.Class
	Schools []engine.SchoolGroup
	Total   int
}

// ListSpellsInput filters the spell list. Empty fields don't filter.
type ListSpellsInput struct {
	// Search matches a case-insensitive substring of the spell name
	Search string
	// ClassName matches a class list entry, trimmed and case-insensitive
	ClassName string
}

// ListSpellsOutput holds matching spells ordered by level then name
type ListSpellsOutput struct {
	Spells []*dnd5e.Spell
	// ClassNames lists every class named by any spell, sorted
	ClassNames []string
}

// GetSpellInput identifies a spell by catalog id
type GetSpellInput struct {
	ID string
}

// GetSpellOutput holds the spell
type GetSpellOutput struct {
	Spell *dnd5e.Spell
}
