package v1

import (
	"net/http"
	"strconv"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
)

// ListCharacters handles GET /characters[?spellcasters=true]
func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	spellcastersOnly := false
	if raw := r.URL.Query().Get("spellcasters"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, errors.InvalidArgument("spellcasters must be true or false"))
			return
		}
		spellcastersOnly = v
	}

	output, err := h.characterService.ListCharacters(r.Context(), &character.ListCharactersInput{
		UserID:           UserIDFromContext(r.Context()),
		SpellcastersOnly: spellcastersOnly,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Characters)
}

// CreateCharacter handles POST /characters
func (h *Handler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.characterService.CreateCharacter(r.Context(), &character.CreateCharacterInput{
		UserID: UserIDFromContext(r.Context()),
		Draft:  req.draft(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/characters/"+output.Character.ID)
	writeJSON(w, http.StatusCreated, output.Character)
}

// GetCharacter handles GET /characters/{id}
func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	output, err := h.characterService.GetCharacter(r.Context(), &character.GetCharacterInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Character)
}

// UpdateCharacter handles PUT /characters/{id} as a partial update
func (h *Handler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.characterService.UpdateCharacter(r.Context(), &character.UpdateCharacterInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
		Patch:       req.patch(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if output.Recomputed {
		w.Header().Set("X-Progression-Recomputed", "true")
	}
	writeJSON(w, http.StatusOK, output.Character)
}

// DeleteCharacter handles DELETE /characters/{id}
func (h *Handler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	output, err := h.characterService.DeleteCharacter(r.Context(), &character.DeleteCharacterInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: output.Deleted})
}

// ShareCharacter handles POST /characters/{id}/share
func (h *Handler) ShareCharacter(w http.ResponseWriter, r *http.Request) {
	output, err := h.characterService.ShareCharacter(r.Context(), &character.ShareCharacterInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shareResponse{ShareToken: output.Token, ExpiresAt: output.ExpiresAt})
}

// RevokeShare handles DELETE /characters/{id}/share
func (h *Handler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	_, err := h.characterService.RevokeShare(r.Context(), &character.RevokeShareInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, revokeResponse{Revoked: true})
}

// GetSharedCharacter handles GET /shared/{token} without authentication
func (h *Handler) GetSharedCharacter(w http.ResponseWriter, r *http.Request) {
	output, err := h.characterService.GetSharedCharacter(r.Context(), &character.GetSharedCharacterInput{
		Token: r.PathValue("token"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSharedView(output.Character))
}

// AdjustSpellSlot handles POST /characters/{id}/spell-slots/{level}
func (h *Handler) AdjustSpellSlot(w http.ResponseWriter, r *http.Request) {
	var req adjustSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Delta == nil {
		writeError(w, r, errors.InvalidArgument("delta is required"))
		return
	}

	level := r.PathValue("level")
	output, err := h.characterService.AdjustSpellSlot(r.Context(), &character.AdjustSpellSlotInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
		Level:       level,
		Axis:        req.Axis,
		Delta:       *req.Delta,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := adjustSlotResponse{
		Character: output.Character,
		Level:     level,
		Changed:   output.Changed,
	}
	if output.Present {
		pair := output.Pair
		resp.Slot = &pair
	}
	writeJSON(w, http.StatusOK, resp)
}

// LearnSpells handles POST /characters/{id}/spells. A batch of spells that
// are all already known answers 200 with a notice.
func (h *Handler) LearnSpells(w http.ResponseWriter, r *http.Request) {
	var req learnSpellsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	output, err := h.characterService.LearnSpells(r.Context(), &character.LearnSpellsInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
		SpellNames:  req.Spells,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, learnSpellsResponse{
		Character: output.Character,
		Added:     output.Added,
		Notice:    output.Notice,
	})
}

// GetGrimoire handles GET /characters/{id}/grimoire
func (h *Handler) GetGrimoire(w http.ResponseWriter, r *http.Request) {
	output, err := h.characterService.GetGrimoire(r.Context(), &character.GetGrimoireInput{
		UserID:      UserIDFromContext(r.Context()),
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGrimoireResponse(output.Grimoire))
}

