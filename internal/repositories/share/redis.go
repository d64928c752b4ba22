package share

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/grimoire-api/internal/redis"
	"github.com/KirkDiggler/grimoire-api/internal/repositories/character"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis share repository. Client
// should authenticate as the privileged ACL user.
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

// NewRedis creates a Redis-backed share repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func (r *redisRepository) SetToken(ctx context.Context, input SetTokenInput) (*SetTokenOutput, error) {
	if err := validateSet(input); err != nil {
		return nil, err
	}

	ttl := input.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return nil, errors.InvalidArgument("expiry must be in the future")
	}

	var updated *entities.Character
	err := r.mutate(ctx, input.CharacterID, func(c *entities.Character, pipe redis.Pipeliner) {
		if c.ShareToken != nil && *c.ShareToken != input.Token {
			pipe.Del(ctx, character.ShareIndexKey(*c.ShareToken))
		}
		token := input.Token
		expires := input.ExpiresAt
		c.ShareToken = &token
		c.TokenExpiresAt = &expires
		pipe.Set(ctx, character.ShareIndexKey(token), c.ID, ttl)
		updated = c
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "share token set",
		"character_id", input.CharacterID,
		"expires_at", input.ExpiresAt)

	return &SetTokenOutput{Character: updated}, nil
}

func (r *redisRepository) ClearToken(ctx context.Context, input ClearTokenInput) (*ClearTokenOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var updated *entities.Character
	err := r.mutate(ctx, input.CharacterID, func(c *entities.Character, pipe redis.Pipeliner) {
		if c.ShareToken != nil && *c.ShareToken != "" {
			pipe.Del(ctx, character.ShareIndexKey(*c.ShareToken))
		}
		c.ShareToken = nil
		c.TokenExpiresAt = nil
		updated = c
	})
	if err != nil {
		return nil, err
	}

	return &ClearTokenOutput{Character: updated}, nil
}

func (r *redisRepository) GetByToken(ctx context.Context, input GetByTokenInput) (*GetByTokenOutput, error) {
	if input.Token == "" {
		return nil, errors.InvalidArgument(errTokenEmpty)
	}

	indexKey := character.ShareIndexKey(input.Token)
	id, err := r.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tokenNotFound()
		}
		return nil, errors.Wrapf(err, "failed to resolve share token")
	}

	stored, err := character.Load(ctx, r.client, id)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.WarnContext(ctx, "shared character missing, cleaning up index",
				"character_id", id)
			r.client.Del(ctx, indexKey)
			return nil, tokenNotFound()
		}
		return nil, err
	}

	if !stored.SharedWith(input.Token, r.clock.Now()) {
		return nil, tokenNotFound()
	}

	return &GetByTokenOutput{Character: stored}, nil
}

// mutate runs edit against the stored record under WATCH and writes the
// record, stamped with updated_at, in the same MULTI as whatever edit queued.
func (r *redisRepository) mutate(
	ctx context.Context,
	id string,
	edit func(*entities.Character, redis.Pipeliner),
) error {
	key := character.RedisKey(id)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := character.Load(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			edit(stored, pipe)
			stored.UpdatedAt = r.clock.Now()
			data, err := json.Marshal(stored)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal character")
			}
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return errors.Abortedf("character %s was modified concurrently, retry the request", id)
		}
		var typed *errors.Error
		if errors.As(err, &typed) {
			return err
		}
		return errors.Wrapf(err, "failed to write share token")
	}
	return nil
}
