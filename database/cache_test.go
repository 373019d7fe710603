package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ireoo/sixin-server/models"
)

// 需要本機 Redis；可用 REDIS_ADDR 指定，連不上就跳過
func setupCache(t *testing.T) *CachedManager {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	inner := setupTestDB(t)
	cached, err := NewCachedManager(inner, addr)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		cached.rdb.Del(context.Background(), userListKey)
		cached.rdb.Close()
	})
	return cached
}

func TestCachedUserList(t *testing.T) {
	cached := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cached.CreateUser(ctx, &models.User{Name: "alice", Email: "alice@example.com"}))

	// 第一次回源並填充快取
	users, err := cached.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	exists, err := cached.rdb.Exists(ctx, userListKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "讀取後應該填充快取")

	// 第二次命中快取，內容一致
	users, err = cached.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)
}

func TestCacheInvalidatedOnWrite(t *testing.T) {
	cached := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cached.CreateUser(ctx, &models.User{Name: "alice", Email: "alice@example.com"}))

	users, err := cached.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	// 寫入後快取失效，下次讀取看到新資料
	require.NoError(t, cached.CreateUser(ctx, &models.User{Name: "bob", Email: "bob@example.com"}))

	exists, err := cached.rdb.Exists(ctx, userListKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists, "寫入後快取應該被清掉")

	users, err = cached.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCorruptCacheRebuilt(t *testing.T) {
	cached := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cached.CreateUser(ctx, &models.User{Name: "alice", Email: "alice@example.com"}))
	require.NoError(t, cached.rdb.Set(ctx, userListKey, "not json", 0).Err())

	// 壞掉的快取被丟棄，照常回源
	users, err := cached.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)
}
