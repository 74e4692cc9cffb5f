package store

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s, err := NewRedisStore(context.Background(), "redis://"+mr.Addr()+"/0", ttl, WithClock(fixedClock(start)))
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	e, err := s.Save(ctx, Entry{White: "Alice", Black: "Bob", Result: "0-1"}, samplePGN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(e.ID), 36, "UUID string")

	testutil.AssertTrue(t, mr.Exists("game:"+e.ID))
	testutil.AssertEqual(t, mr.TTL("game:"+e.ID), time.Hour)

	text, err := s.Load(ctx, e.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, text, samplePGN)

	_, err = s.Load(ctx, "no-such-game")
	testutil.AssertErrorIs(t, err, errors.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	e, err := s.Save(ctx, Entry{White: "Alice", Black: "Bob"}, samplePGN)
	testutil.AssertNoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = s.Load(ctx, e.ID)
	testutil.AssertErrorIs(t, err, errors.ErrNotFound)

	entries, err := s.List(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, entries, 0)
}

func TestRedisStore_List(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, 0)

	first, err := s.Save(ctx, Entry{White: "Alice", Black: "Bob", Result: "0-1"}, samplePGN)
	testutil.AssertNoError(t, err)
	second, err := s.Save(ctx, Entry{White: "Carol"}, "*")
	testutil.AssertNoError(t, err)
	third, err := s.Save(ctx, Entry{White: "Eve", Black: "Frank"}, "*")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, mr.TTL("game:"+first.ID), time.Duration(0), "zero ttl keeps games")

	mr.Del("game:" + third.ID + ":meta")

	entries, err := s.List(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, entries, []Entry{second, first})
	testutil.AssertEqual(t, entries[0].Black, DefaultBlack)

	members, err := mr.ZMembers(redisIndexKey)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, members, 2, "pruned from index")
}

func TestNewRedisStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRedisStore(ctx, "", time.Hour)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)

	_, err = NewRedisStore(ctx, "http://localhost", time.Hour)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

// failZRem makes every ZREM fail with errZRem.
type failZRem struct{}

var errZRem = stderrors.New("zrem refused")

func (failZRem) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (failZRem) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "zrem" {
			cmd.SetErr(errZRem)
			return errZRem
		}
		return next(ctx, cmd)
	}
}

func (failZRem) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisStore_ListLogsPruneFailure(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdb.AddHook(failZRem{})
	core, logs := observer.New(zapcore.WarnLevel)
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s := NewRedisStoreWithClient(rdb, time.Hour, WithLogger(zap.New(core)), WithClock(fixedClock(start)))
	t.Cleanup(func() { _ = s.Close() })

	e, err := s.Save(ctx, Entry{White: "Alice", Black: "Bob"}, samplePGN)
	testutil.AssertNoError(t, err)
	mr.Del("game:" + e.ID + ":meta")

	entries, err := s.List(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, entries, 0)

	warned := logs.FilterMessage("prune expired game from index").All()
	testutil.AssertLen(t, warned, 1)
	testutil.AssertEqual(t, warned[0].ContextMap()["id"], e.ID)
	testutil.AssertContains(t, warned[0].ContextMap()["error"].(string), "zrem refused")

	members, err := mr.ZMembers("games:index")
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, members, 1, "index entry kept when ZREM fails")
}
