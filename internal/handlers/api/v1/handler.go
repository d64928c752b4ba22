// Package v1 serves the grimoire REST API
package v1

import (
	"net/http"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/library"
)

// TokenVerifier resolves a bearer token to the caller's user ID
type TokenVerifier interface {
	VerifySubject(token string) (string, error)
}

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
	LibraryService   library.Service
	Verifier         TokenVerifier
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.LibraryService == nil {
		vb.RequiredField("LibraryService")
	}
	if c.Verifier == nil {
		vb.RequiredField("Verifier")
	}
	return vb.Build()
}

// Handler implements the REST API
type Handler struct {
	characterService character.Service
	libraryService   library.Service
	verifier         TokenVerifier
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
		libraryService:   cfg.LibraryService,
		verifier:         cfg.Verifier,
	}, nil
}

// Routes returns the API wrapped in the request middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// characters, owner-scoped
	mux.Handle("GET /characters", h.authenticated(h.ListCharacters))
	mux.Handle("POST /characters", h.authenticated(h.CreateCharacter))
	mux.Handle("GET /characters/{id}", h.authenticated(h.GetCharacter))
	mux.Handle("PUT /characters/{id}", h.authenticated(h.UpdateCharacter))
	mux.Handle("DELETE /characters/{id}", h.authenticated(h.DeleteCharacter))
	mux.Handle("POST /characters/{id}/share", h.authenticated(h.ShareCharacter))
	mux.Handle("DELETE /characters/{id}/share", h.authenticated(h.RevokeShare))
	mux.Handle("POST /characters/{id}/spell-slots/{level}", h.authenticated(h.AdjustSpellSlot))
	mux.Handle("POST /characters/{id}/spells", h.authenticated(h.LearnSpells))
	mux.Handle("GET /characters/{id}/grimoire", h.authenticated(h.GetGrimoire))

	// public
	mux.HandleFunc("GET /shared/{token}", h.GetSharedCharacter)
	mux.HandleFunc("GET /classes", h.ListClasses)
	mux.HandleFunc("GET /classes/{name}", h.GetClass)
	mux.HandleFunc("GET /classes/{name}/spells", h.ListClassSpells)
	mux.HandleFunc("GET /spells", h.ListSpells)
	mux.HandleFunc("GET /spells/{id}", h.GetSpell)
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
	})

	return withRequestID(withLogging(withRecovery(mux)))
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
