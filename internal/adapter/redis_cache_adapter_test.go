package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-folio/internal/cache"
	"quiz-folio/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_QuestionPool(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.QuestionPoolKey()

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Set then hit", func(t *testing.T) {
		mock.ExpectSet(key, `[{"id":"q1"}]`, 5*time.Minute).SetVal("OK")
		mock.ExpectGet(key).SetVal(`[{"id":"q1"}]`)

		assert.NoError(t, adapter.Set(ctx, key, `[{"id":"q1"}]`, 5*time.Minute))
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, `[{"id":"q1"}]`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_LeaderboardHash(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.LeaderboardKey()

	t.Run("Field miss", func(t *testing.T) {
		mock.ExpectHGet(key, "10").SetErr(redis.Nil)
		_, err := adapter.HGet(ctx, key, "10")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HSet and Expire", func(t *testing.T) {
		mock.ExpectHSet(key, "10", "[]").SetVal(1)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectHGet(key, "10").SetVal("[]")

		assert.NoError(t, adapter.HSet(ctx, key, "10", "[]"))
		assert.NoError(t, adapter.Expire(ctx, key, time.Minute))
		val, err := adapter.HGet(ctx, key, "10")
		assert.NoError(t, err)
		assert.Equal(t, "[]", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HSet error", func(t *testing.T) {
		redisErr := errors.New("READONLY")
		mock.ExpectHSet(key, "5", "[]").SetErr(redisErr)
		assert.ErrorIs(t, adapter.HSet(ctx, key, "5", "[]"), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
