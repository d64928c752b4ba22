package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/grimoire-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	userIndexPrefix    = "character:user:"
	shareIndexPrefix   = "character:share:"
)

// RedisKey is the key holding a character's JSON record.
func RedisKey(id string) string {
	return characterKeyPrefix + id
}

// ShareIndexKey is the key mapping a share token to a character ID.
func ShareIndexKey(token string) string {
	return shareIndexPrefix + token
}

// userIndexKey is a sorted set of a user's character IDs scored by
// created_at in milliseconds.
func userIndexKey(userID string) string {
	return userIndexPrefix + userID
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := input.Character.Clone()
	now := r.clock.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	record.ShareToken = nil
	record.TokenExpiresAt = nil

	key := RedisKey(record.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", record.ID)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.ZAdd(ctx, userIndexKey(record.UserID), redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: record.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.DebugContext(ctx, "created character",
		"character_id", record.ID,
		"user_id", record.UserID)

	return &CreateOutput{Character: record}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}

	record, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	if record.UserID != input.UserID {
		return nil, notFound(input.ID)
	}

	return &GetOutput{Character: record}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}
	if input.Mutate == nil {
		return nil, errors.InvalidArgument(errMutateNil)
	}

	key := RedisKey(input.ID)
	var output *UpdateOutput
	var mutateErr error

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := load(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if stored.UserID != input.UserID {
			return notFound(input.ID)
		}

		next := stored.Clone()
		if err := input.Mutate(next); err != nil {
			if errors.Is(err, ErrSkipWrite) {
				output = &UpdateOutput{Character: stored}
				return nil
			}
			mutateErr = err
			return err
		}
		pinImmutable(next, stored)
		next.UpdatedAt = r.clock.Now()

		data, err := json.Marshal(next)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		output = &UpdateOutput{Character: next, Written: true}
		return nil
	}, key)
	if err != nil {
		if mutateErr != nil {
			return nil, mutateErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			slog.WarnContext(ctx, "character changed during update",
				"character_id", input.ID)
			return nil, errors.Abortedf("character %s was modified concurrently, retry the request", input.ID)
		}
		var typed *errors.Error
		if errors.As(err, &typed) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return output, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateOwned(input.ID, input.UserID); err != nil {
		return nil, err
	}

	key := RedisKey(input.ID)
	deleted := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := load(ctx, tx, input.ID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil
			}
			return err
		}
		if stored.UserID != input.UserID {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, userIndexKey(stored.UserID), stored.ID)
			if stored.ShareToken != nil && *stored.ShareToken != "" {
				pipe.Del(ctx, ShareIndexKey(*stored.ShareToken))
			}
			return nil
		})
		if err != nil {
			return err
		}
		deleted = true
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, errors.Abortedf("character %s was modified concurrently, retry the request", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	slog.DebugContext(ctx, "delete character",
		"character_id", input.ID,
		"user_id", input.UserID,
		"deleted", deleted)

	return &DeleteOutput{Deleted: deleted}, nil
}

func (r *redisRepository) ListByUserID(
	ctx context.Context,
	input ListByUserIDInput,
) (*ListByUserIDOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	indexKey := userIndexKey(input.UserID)
	slog.DebugContext(ctx, "listing characters by user index",
		"user_id", input.UserID,
		"index_key", indexKey)

	ids, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}
	if len(ids) == 0 {
		return &ListByUserIDOutput{Characters: []*entities.Character{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RedisKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load characters")
	}

	characters := make([]*entities.Character, 0, len(ids))
	var stale []any
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}

		var record entities.Character
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal character %s", ids[i])
		}
		if record.UserID != input.UserID {
			stale = append(stale, ids[i])
			continue
		}
		characters = append(characters, &record)
	}

	if len(stale) > 0 {
		slog.WarnContext(ctx, "characters missing, cleaning up index",
			"index_key", indexKey,
			"stale", len(stale))
		if err := r.client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			slog.WarnContext(ctx, "failed to clean up index",
				"index_key", indexKey,
				"error", err.Error())
		}
	}

	slog.DebugContext(ctx, "successfully listed characters by user",
		"user_id", input.UserID,
		"count", len(characters))

	return &ListByUserIDOutput{Characters: characters}, nil
}

// Getter is the part of a Redis client or transaction that Load needs.
type Getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Load reads a character record without an owner check. It is shared with
// the share repository, which runs with its own client.
func Load(ctx context.Context, client Getter, id string) (*entities.Character, error) {
	return load(ctx, client, id)
}

func load(ctx context.Context, client Getter, id string) (*entities.Character, error) {
	raw, err := client.Get(ctx, RedisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var record entities.Character
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}
	return &record, nil
}

func notFound(id string) error {
	return errors.NotFoundf("character with ID %s not found", id)
}
