package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *RedisKV {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	kv := NewRedisKV(addr)
	t.Cleanup(func() { _ = kv.Close() })
	require.NoError(t, kv.Ping(ctx))
	return kv
}

func TestKVSimulationRepository_Redis(t *testing.T) {
	kv := testRedis(t)

	ids := [3]string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	t.Cleanup(func() {
		ctx := context.Background()
		for _, id := range ids {
			_ = kv.Del(ctx, simulationKey(id))
		}
		_ = kv.Del(ctx, userSimulationsKey("ana@example.com"))
		_ = kv.Del(ctx, userSimulationsKey("luis@example.com"))
	})

	exerciseRepository(t, NewKVSimulationRepository(kv), ids)
}

func TestRedisKV_MissingKey(t *testing.T) {
	kv := testRedis(t)

	_, err := kv.Get(context.Background(), "missing:"+uuid.NewString())
	require.ErrorIs(t, err, ErrKeyNotFound)
}
