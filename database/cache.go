package database

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ireoo/sixin-server/models"
)

const (
	userListKey = "sixin:users:all"
	userListTTL = 5 * time.Minute
)

// CachedManager 在 DatabaseManager 外加一層 Redis 讀取快取（cache-aside）。
// 目前只快取使用者列表：讀取量最大、寫入時整鍵失效即可。
// 快取故障只記日誌不影響功能，直接回源查詢。
type CachedManager struct {
	DatabaseManager
	rdb *redis.Client
}

// NewCachedManager 包裝既有管理器並驗證 Redis 連線
func NewCachedManager(inner DatabaseManager, redisAddr string) (*CachedManager, error) {
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Println("Connected to Redis successfully!")
	return &CachedManager{DatabaseManager: inner, rdb: rdb}, nil
}

func (c *CachedManager) GetAllUsers(ctx context.Context) ([]models.User, error) {
	data, err := c.rdb.Get(ctx, userListKey).Bytes()
	if err == nil {
		var users []models.User
		if err := json.Unmarshal(data, &users); err == nil {
			return users, nil
		}
		// 快取內容壞掉就丟棄重建
		c.rdb.Del(ctx, userListKey)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis get error: %v", err)
	}

	users, err := c.DatabaseManager.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(users); err == nil {
		if err := c.rdb.Set(ctx, userListKey, data, userListTTL).Err(); err != nil {
			log.Printf("Redis set error: %v", err)
		}
	}
	return users, nil
}

func (c *CachedManager) invalidateUsers(ctx context.Context) {
	if err := c.rdb.Del(ctx, userListKey).Err(); err != nil {
		log.Printf("Redis del error: %v", err)
	}
}

func (c *CachedManager) CreateUser(ctx context.Context, user *models.User) error {
	if err := c.DatabaseManager.CreateUser(ctx, user); err != nil {
		return err
	}
	c.invalidateUsers(ctx)
	return nil
}

func (c *CachedManager) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	user, err := c.DatabaseManager.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, err
	}
	c.invalidateUsers(ctx)
	return user, nil
}

func (c *CachedManager) DeleteUser(ctx context.Context, id uint) error {
	if err := c.DatabaseManager.DeleteUser(ctx, id); err != nil {
		return err
	}
	c.invalidateUsers(ctx)
	return nil
}

func (c *CachedManager) Close(ctx context.Context) error {
	if err := c.rdb.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	return c.DatabaseManager.Close(ctx)
}
