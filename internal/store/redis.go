package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

const (
	redisKeyPrefix = "game:"
	redisIndexKey  = "games:index"
)

// RedisStore keeps games under game:<uuid> keys that expire after a TTL.
// A sorted set indexes the IDs by save time.
type RedisStore struct {
	rdb  *redis.Client
	ttl  time.Duration
	opts options
}

type redisMeta struct {
	White  string    `json:"white"`
	Black  string    `json:"black"`
	Result string    `json:"result,omitempty"`
	Saved  time.Time `json:"saved"`
}

// NewRedisStore connects to the Redis server at url. A zero ttl keeps games
// until deleted.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration, opts ...Option) (*RedisStore, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "redis url is required")
	}
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "redis url: %v", err)
	}
	rdb := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return NewRedisStoreWithClient(rdb, ttl, opts...), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(rdb *redis.Client, ttl time.Duration, opts ...Option) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, opts: buildOptions(opts)}
}

func (s *RedisStore) keyPGN(id string) string  { return redisKeyPrefix + id }
func (s *RedisStore) keyMeta(id string) string { return redisKeyPrefix + id + ":meta" }

// Save stores the game under a fresh UUID.
func (s *RedisStore) Save(ctx context.Context, e Entry, pgnText string) (Entry, error) {
	if e.White == "" {
		e.White = DefaultWhite
	}
	if e.Black == "" {
		e.Black = DefaultBlack
	}
	e.ID = uuid.NewString()
	e.Saved = s.opts.clock()

	meta, err := json.Marshal(redisMeta{White: e.White, Black: e.Black, Result: e.Result, Saved: e.Saved})
	if err != nil {
		return Entry{}, errors.Wrap(err, "encode game metadata")
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keyPGN(e.ID), pgnText, s.ttl)
		pipe.Set(ctx, s.keyMeta(e.ID), meta, s.ttl)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(e.Saved.UnixMilli()), Member: e.ID})
		if s.ttl > 0 {
			pipe.Expire(ctx, redisIndexKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return Entry{}, errors.Wrapf(err, "save game %s", e.ID)
	}
	s.opts.logger.Info("game saved", zap.String("id", e.ID), zap.Duration("ttl", s.ttl))
	return e, nil
}

// Load returns the PGN stored under id.
func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	text, err := s.rdb.Get(ctx, s.keyPGN(id)).Result()
	if err == redis.Nil {
		return "", errors.Wrapf(errors.ErrNotFound, "game %s", id)
	}
	if err != nil {
		return "", errors.Wrapf(err, "load game %s", id)
	}
	return text, nil
}

// List returns the indexed games, newest first. Expired games are pruned
// from the index.
func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	ids, err := s.rdb.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list games")
	}

	var entries []Entry
	for _, id := range ids {
		raw, err := s.rdb.Get(ctx, s.keyMeta(id)).Bytes()
		if err == redis.Nil {
			if err := s.rdb.ZRem(ctx, redisIndexKey, id).Err(); err != nil {
				s.opts.logger.Warn("prune expired game from index", zap.String("id", id), zap.Error(err))
			}
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "load metadata %s", id)
		}
		var m redisMeta
		if err := json.Unmarshal(raw, &m); err != nil {
			s.opts.logger.Warn("skip corrupt metadata", zap.String("id", id), zap.Error(err))
			continue
		}
		entries = append(entries, Entry{ID: id, White: m.White, Black: m.Black, Result: m.Result, Saved: m.Saved})
	}
	return entries, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
