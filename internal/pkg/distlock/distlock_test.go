package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisLockAcquireRelease(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	l := NewRedisLock(rdb, "snapshot:refresh", time.Minute)
	held, err := l.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, held)

	require.NoError(t, l.Release(ctx))

	held, err = l.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, held, "lock is free again after release")
}

func TestRedisLockContention(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	first := NewRedisLock(rdb, "snapshot:refresh", time.Minute)
	second := NewRedisLock(rdb, "snapshot:refresh", time.Minute)

	held, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, held)

	held, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, held, "second holder must not get the lock")

	// releasing someone else's lock is a no-op
	require.NoError(t, second.Release(ctx))
	held, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, held, "first holder still owns the lock")
}

func TestPGAdvisoryLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := NewPGAdvisoryLock(db, "snapshot:refresh")

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	held, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, held)

	mock.ExpectExec("SELECT pg_advisory_unlock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, l.Release(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLockPrefersRedis(t *testing.T) {
	rdb := testRedis(t)
	if _, ok := NewLock(rdb, nil, "k", time.Minute).(*RedisLock); !ok {
		t.Error("NewLock with a redis client should return a RedisLock")
	}
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	if _, ok := NewLock(nil, db, "k", time.Minute).(*PGAdvisoryLock); !ok {
		t.Error("NewLock without redis should fall back to the advisory lock")
	}
}
