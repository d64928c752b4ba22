// Package share stores character share tokens. It runs on a privileged
// backend credential, separate from the owner-scoped character repository,
// and performs no ownership checks of its own: callers verify ownership
// with the character repository before writing.
package share

//go:generate mockgen -destination=mock/mock_repository.go -package=sharemock github.com/KirkDiggler/grimoire-api/internal/repositories/share Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// Repository defines share token persistence
type Repository interface {
	// SetToken replaces the character's share token and expiry
	// Returns errors.InvalidArgument for empty fields
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.Internal for storage failures
	SetToken(ctx context.Context, input SetTokenInput) (*SetTokenOutput, error)

	// ClearToken removes any share token from the character
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.Internal for storage failures
	ClearToken(ctx context.Context, input ClearTokenInput) (*ClearTokenOutput, error)

	// GetByToken returns the character shared under a valid, unexpired token
	// Returns errors.InvalidArgument for an empty token
	// Returns errors.NotFound for unknown or expired tokens
	// Returns errors.Internal for storage failures
	GetByToken(ctx context.Context, input GetByTokenInput) (*GetByTokenOutput, error)
}

// SetTokenInput defines the input for setting a share token
type SetTokenInput struct {
	CharacterID string
	Token       string
	ExpiresAt   time.Time
}

// SetTokenOutput defines the output for setting a share token
type SetTokenOutput struct {
	Character *entities.Character
}

// ClearTokenInput defines the input for clearing a share token
type ClearTokenInput struct {
	CharacterID string
}

// ClearTokenOutput defines the output for clearing a share token
type ClearTokenOutput struct {
	Character *entities.Character
}

// GetByTokenInput defines the input for resolving a share token
type GetByTokenInput struct {
	Token string
}

// GetByTokenOutput defines the output for resolving a share token
type GetByTokenOutput struct {
	Character *entities.Character
}

const (
	errCharacterIDEmpty = "character ID cannot be empty"
	errTokenEmpty       = "token cannot be empty"
	errExpiryEmpty      = "expiry cannot be empty"
)

func validateSet(input SetTokenInput) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("token", input.Token, vb)
	if input.ExpiresAt.IsZero() {
		vb.Field("expires_at", errExpiryEmpty)
	}
	return vb.Build()
}

func tokenNotFound() error {
	return errors.NotFound("share link not found or expired")
}
