package share

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/clock"
	"github.com/KirkDiggler/grimoire-api/internal/repositories/character"
)

type postgresRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

// PostgresConfig contains configuration for the Postgres share repository.
// DB should be opened with the privileged service DSN.
type PostgresConfig struct {
	DB    *gorm.DB
	Clock clock.Clock
}

// Validate validates the PostgresConfig.
func (cfg *PostgresConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

var _ Repository = (*postgresRepository)(nil)

// NewPostgres creates a Postgres-backed share repository
func NewPostgres(cfg *PostgresConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &postgresRepository{db: cfg.DB, clock: c}, nil
}

func (r *postgresRepository) SetToken(ctx context.Context, input SetTokenInput) (*SetTokenOutput, error) {
	if err := validateSet(input); err != nil {
		return nil, err
	}

	updated, err := r.write(ctx, input.CharacterID, map[string]any{
		"share_token":      input.Token,
		"token_expires_at": input.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "share token set",
		"character_id", input.CharacterID,
		"expires_at", input.ExpiresAt)

	return &SetTokenOutput{Character: updated}, nil
}

func (r *postgresRepository) ClearToken(ctx context.Context, input ClearTokenInput) (*ClearTokenOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	updated, err := r.write(ctx, input.CharacterID, map[string]any{
		"share_token":      nil,
		"token_expires_at": nil,
	})
	if err != nil {
		return nil, err
	}

	return &ClearTokenOutput{Character: updated}, nil
}

func (r *postgresRepository) GetByToken(ctx context.Context, input GetByTokenInput) (*GetByTokenOutput, error) {
	if input.Token == "" {
		return nil, errors.InvalidArgument(errTokenEmpty)
	}

	var record character.Record
	err := r.db.WithContext(ctx).
		Where("share_token = ? AND token_expires_at > ?", input.Token, r.clock.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tokenNotFound()
		}
		return nil, errors.Wrapf(err, "failed to resolve share token")
	}

	c, err := record.ToCharacter()
	if err != nil {
		return nil, err
	}
	return &GetByTokenOutput{Character: c}, nil
}

func (r *postgresRepository) write(ctx context.Context, id string, columns map[string]any) (*entities.Character, error) {
	var updated *entities.Character
	columns["updated_at"] = r.clock.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&character.Record{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to write share token")
		}
		if result.RowsAffected == 0 {
			return errors.NotFoundf("character with ID %s not found", id)
		}

		var record character.Record
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return errors.Wrapf(err, "failed to reload character")
		}
		c, err := record.ToCharacter()
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
