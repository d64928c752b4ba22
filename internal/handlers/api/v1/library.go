package v1

import (
	"net/http"

	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/library"
)

// ListClasses handles GET /classes
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	output, err := h.libraryService.ListClasses(r.Context(), &library.ListClassesInput{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	summaries := make([]classSummary, 0, len(output.Classes))
	for _, class := range output.Classes {
		summaries = append(summaries, classSummary{
			ID:               class.ID,
			Name:             class.Name,
			HitDie:           class.HitDie,
			Spellcaster:      class.IsSpellcaster(),
			PrimaryAbilities: class.PrimaryAbilities,
			Subclasses:       class.SubclassNames(),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetClass handles GET /classes/{name}
func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	output, err := h.libraryService.GetClass(r.Context(), &library.GetClassInput{Name: r.PathValue("name")})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, classDetailResponse{Class: output.Class, Progression: output.Progression})
}

// ListClassSpells handles GET /classes/{name}/spells
func (h *Handler) ListClassSpells(w http.ResponseWriter, r *http.Request) {
	output, err := h.libraryService.ListClassSpells(r.Context(), &library.ListClassSpellsInput{
		Name: r.PathValue("name"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := classSpellsResponse{
		Class:   output.Class.Name,
		Total:   output.Total,
		Schools: make([]schoolGroup, 0, len(output.Schools)),
	}
	for _, group := range output.Schools {
		resp.Schools = append(resp.Schools, schoolGroup{School: group.School, Spells: group.Spells})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSpells handles GET /spells?search=&class=
func (h *Handler) ListSpells(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	output, err := h.libraryService.ListSpells(r.Context(), &library.ListSpellsInput{
		Search:    query.Get("search"),
		ClassName: query.Get("class"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, spellListResponse{
		Spells:     output.Spells,
		Count:      len(output.Spells),
		ClassNames: output.ClassNames,
	})
}

// GetSpell handles GET /spells/{id}
func (h *Handler) GetSpell(w http.ResponseWriter, r *http.Request) {
	output, err := h.libraryService.GetSpell(r.Context(), &library.GetSpellInput{ID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Spell)
}
