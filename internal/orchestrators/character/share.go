package character

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
	sharerepo "github.com/KirkDiggler/grimoire-api/internal/repositories/share"
)

// ShareCharacter mints a new share token for an owned character. Any
// previous token stops working.
func (o *Orchestrator) ShareCharacter(ctx context.Context, input *ShareCharacterInput) (*ShareCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	// the share store is privileged, so ownership is settled here first
	if _, err := o.getOwned(ctx, input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	token := o.tokenGenerator.Generate()
	expiresAt := o.clock.Now().Add(o.shareTTL)

	result, err := o.shareRepo.SetToken(ctx, sharerepo.SetTokenInput{
		CharacterID: input.CharacterID,
		Token:       token,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to share character")
	}

	slog.InfoContext(ctx, "character shared",
		"character_id", input.CharacterID,
		"user_id", input.UserID,
		"expires_at", expiresAt)

	o.normalizeKnown(result.Character)
	return &ShareCharacterOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Character: result.Character,
	}, nil
}

// RevokeShare clears the share token of an owned character.
func (o *Orchestrator) RevokeShare(ctx context.Context, input *RevokeShareInput) (*RevokeShareOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.getOwned(ctx, input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	result, err := o.shareRepo.ClearToken(ctx, sharerepo.ClearTokenInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to revoke share")
	}

	slog.InfoContext(ctx, "character share revoked",
		"character_id", input.CharacterID,
		"user_id", input.UserID)

	o.normalizeKnown(result.Character)
	return &RevokeShareOutput{Character: result.Character}, nil
}

// GetSharedCharacter resolves a share token without authentication.
func (o *Orchestrator) GetSharedCharacter(
	ctx context.Context,
	input *GetSharedCharacterInput,
) (*GetSharedCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, errors.NotFound("share link not found or expired")
	}

	result, err := o.shareRepo.GetByToken(ctx, sharerepo.GetByTokenInput{Token: token})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve share link")
	}

	o.normalizeKnown(result.Character)
	return &GetSharedCharacterOutput{Character: result.Character}, nil
}
