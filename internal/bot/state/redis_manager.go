package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

// stateTTL drops conversations that were abandoned halfway
const stateTTL = 24 * time.Hour

// RedisManager manages chat states using Redis
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("sugar:chat:%d:state", chatID)
}

func tempKey(chatID int64) string {
	return fmt.Sprintf("sugar:chat:%d:temp", chatID)
}

// SetUserState sets the state for a chat with TTL
func (m *RedisManager) SetUserState(chatID int64, state string) {
	if err := m.client.Set(context.Background(), stateKey(chatID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to save chat state", "chat_id", chatID, "error", err)
	}
}

// GetUserState gets the state for a chat. Missing keys and Redis errors both read as None.
func (m *RedisManager) GetUserState(chatID int64) string {
	state, err := m.client.Get(context.Background(), stateKey(chatID)).Result()
	if err == redis.Nil {
		return None
	}
	if err != nil {
		logger.Warn("Failed to load chat state", "chat_id", chatID, "error", err)
		return None
	}
	return state
}

func (m *RedisManager) ClearUserState(chatID int64) {
	m.client.Del(context.Background(), stateKey(chatID))
}

// SetTempData sets one field of the chat's temp hash and refreshes its TTL
func (m *RedisManager) SetTempData(chatID int64, key, value string) {
	ctx := context.Background()
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(chatID), key, value)
	pipe.Expire(ctx, tempKey(chatID), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Failed to save temp data", "chat_id", chatID, "key", key, "error", err)
	}
}

func (m *RedisManager) GetTempData(chatID int64, key string) (string, bool) {
	value, err := m.client.HGet(context.Background(), tempKey(chatID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a chat
func (m *RedisManager) ClearTempData(chatID int64) {
	m.client.Del(context.Background(), tempKey(chatID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

var _ StateManager = (*RedisManager)(nil)
