// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/grimoire-api/internal/repositories/character Repository

import (
	"context"
	stderrors "errors"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// ErrSkipWrite is returned by an UpdateInput.Mutate func to end the update
// without writing. Update then succeeds with Written set to false.
var ErrSkipWrite = stderrors.New("character: skip write")

// Repository defines the interface for character persistence. Every read and
// write is scoped to the owning user: a record owned by someone else behaves
// exactly like a missing one.
//
// Share token fields are never written here; see the share repository.
type Repository interface {
	// Create stores a new character, stamping created_at and updated_at
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a character with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character owned by UserID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the character doesn't exist or isn't owned
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update loads the owned character, applies Mutate to a copy and writes
	// it back atomically, stamping updated_at
	// Returns errors.InvalidArgument for empty IDs or a nil Mutate
	// Returns errors.NotFound if the character doesn't exist or isn't owned
	// Returns errors.Aborted if the record changed while being updated
	// Returns any error from Mutate other than ErrSkipWrite unchanged
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an owned character. Deleting a missing or foreign
	// character is not an error; Deleted reports whether a row went away.
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByUserID retrieves all characters for a user, newest first
	// Returns errors.InvalidArgument for an empty user ID
	// Returns errors.Internal for storage failures
	ListByUserID(ctx context.Context, input ListByUserIDInput) (*ListByUserIDOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID     string
	UserID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	ID     string
	UserID string
	// Mutate edits the loaded record in place. ID, owner, created_at and
	// share fields are restored afterwards.
	Mutate func(*entities.Character) error
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
	Written   bool
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID     string
	UserID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct {
	Deleted bool
}

// ListByUserIDInput defines the input for listing a user's characters
type ListByUserIDInput struct {
	UserID string
}

// ListByUserIDOutput defines the output for listing a user's characters
type ListByUserIDOutput struct {
	Characters []*entities.Character
}

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errUserIDEmpty      = "user ID cannot be empty"
	errMutateNil        = "mutate func cannot be nil"
)

func validateCreate(input CreateInput) error {
	if input.Character == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Character.UserID == "" {
		return errors.InvalidArgument(errUserIDEmpty)
	}
	return nil
}

func validateOwned(id, userID string) error {
	if id == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if userID == "" {
		return errors.InvalidArgument(errUserIDEmpty)
	}
	return nil
}

// pinImmutable copies the fields Mutate may not change from stored onto next.
func pinImmutable(next, stored *entities.Character) {
	next.ID = stored.ID
	next.UserID = stored.UserID
	next.CreatedAt = stored.CreatedAt
	next.ShareToken = stored.ShareToken
	next.TokenExpiresAt = stored.TokenExpiresAt
}
