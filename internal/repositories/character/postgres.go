package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/clock"
)

// Record is the characters table row. JSON-shaped fields live in jsonb
// columns. Timestamps are stamped by the repository clock, not by gorm.
type Record struct {
	ID             string         `gorm:"primaryKey;type:text"`
	UserID         string         `gorm:"column:user_id;type:text;not null;index"`
	Name           string         `gorm:"column:name;not null"`
	ClassName      string         `gorm:"column:class_name"`
	Level          int            `gorm:"column:level;not null;default:1"`
	HPCurrent      int            `gorm:"column:hp_current;not null"`
	HPMax          int            `gorm:"column:hp_max;not null"`
	SpellSlots     datatypes.JSON `gorm:"column:spell_slots;type:jsonb"`
	SpellsKnown    datatypes.JSON `gorm:"column:spells_known;type:jsonb"`
	CharacterData  datatypes.JSON `gorm:"column:character_data;type:jsonb"`
	ShareToken     *string        `gorm:"column:share_token;uniqueIndex"`
	TokenExpiresAt *time.Time     `gorm:"column:token_expires_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;index;autoCreateTime:false"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName pins the table name.
func (Record) TableName() string {
	return "characters"
}

// ToRecord converts a character to its row.
func ToRecord(c *entities.Character) (*Record, error) {
	slots := c.SpellSlots
	if slots == nil {
		slots = entities.SpellSlots{}
	}
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal spell slots")
	}

	known := c.SpellsKnown
	if known == nil {
		known = []entities.KnownSpell{}
	}
	knownJSON, err := json.Marshal(known)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal spells known")
	}

	var data datatypes.JSON
	if len(c.CharacterData) > 0 {
		data = datatypes.JSON(c.CharacterData)
	}

	return &Record{
		ID:             c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		ClassName:      c.ClassName,
		Level:          c.Level,
		HPCurrent:      c.HPCurrent,
		HPMax:          c.HPMax,
		SpellSlots:     datatypes.JSON(slotsJSON),
		SpellsKnown:    datatypes.JSON(knownJSON),
		CharacterData:  data,
		ShareToken:     c.ShareToken,
		TokenExpiresAt: c.TokenExpiresAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}, nil
}

// ToCharacter converts a row back to a character.
func (r *Record) ToCharacter() (*entities.Character, error) {
	c := &entities.Character{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		ClassName:      r.ClassName,
		Level:          r.Level,
		HPCurrent:      r.HPCurrent,
		HPMax:          r.HPMax,
		SpellSlots:     entities.SpellSlots{},
		SpellsKnown:    []entities.KnownSpell{},
		ShareToken:     r.ShareToken,
		TokenExpiresAt: r.TokenExpiresAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if len(r.SpellSlots) > 0 {
		if err := json.Unmarshal(r.SpellSlots, &c.SpellSlots); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal spell slots of %s", r.ID)
		}
	}
	if len(r.SpellsKnown) > 0 {
		if err := json.Unmarshal(r.SpellsKnown, &c.SpellsKnown); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal spells known of %s", r.ID)
		}
	}
	if len(r.CharacterData) > 0 {
		c.CharacterData = json.RawMessage(r.CharacterData)
	}
	return c, nil
}

// Migrate creates or updates the characters table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return errors.Wrapf(err, "failed to migrate characters table")
	}
	return nil
}

type postgresRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

// PostgresConfig contains configuration for the Postgres character repository.
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

// NewPostgres creates a Postgres-backed character repository
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

func (r *postgresRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	character := input.Character.Clone()
	now := r.clock.Now()
	character.CreatedAt = now
	character.UpdatedAt = now
	character.ShareToken = nil
	character.TokenExpiresAt = nil

	record, err := ToRecord(character)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", character.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: character}, nil
}

func (r *postgresRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}

	var record Record
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", input.ID, input.UserID).
		First(&record).Error
	if err != nil {
		return nil, mapFindError(err, input.ID)
	}

	character, err := record.ToCharacter()
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: character}, nil
}

func (r *postgresRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}
	if input.Mutate == nil {
		return nil, errors.InvalidArgument(errMutateNil)
	}

	var output *UpdateOutput
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record Record
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", input.ID, input.UserID).
			First(&record).Error
		if err != nil {
			return mapFindError(err, input.ID)
		}

		stored, err := record.ToCharacter()
		if err != nil {
			return err
		}

		next := stored.Clone()
		if err := input.Mutate(next); err != nil {
			if errors.Is(err, ErrSkipWrite) {
				output = &UpdateOutput{Character: stored}
				return nil
			}
			return err
		}
		pinImmutable(next, stored)
		next.UpdatedAt = r.clock.Now()

		row, err := ToRecord(next)
		if err != nil {
			return err
		}

		err = tx.Model(&Record{}).
			Where("id = ?", input.ID).
			Select("name", "class_name", "level", "hp_current", "hp_max",
				"spell_slots", "spells_known", "character_data", "updated_at").
			Updates(row).Error
		if err != nil {
			return errors.Wrapf(err, "failed to update character")
		}

		output = &UpdateOutput{Character: next, Written: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *postgresRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", input.ID, input.UserID).
		Delete(&Record{})
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to delete character")
	}

	slog.DebugContext(ctx, "delete character",
		"character_id", input.ID,
		"user_id", input.UserID,
		"deleted", result.RowsAffected > 0)

	return &DeleteOutput{Deleted: result.RowsAffected > 0}, nil
}

func (r *postgresRepository) ListByUserID(
	ctx context.Context,
	input ListByUserIDInput,
) (*ListByUserIDOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	var records []Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", input.UserID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	characters := make([]*entities.Character, 0, len(records))
	for i := range records {
		character, err := records[i].ToCharacter()
		if err != nil {
			return nil, err
		}
		characters = append(characters, character)
	}

	return &ListByUserIDOutput{Characters: characters}, nil
}

func mapFindError(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(id)
	}
	return errors.Wrapf(err, "failed to get character")
}
