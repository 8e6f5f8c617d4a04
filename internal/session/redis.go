package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyCartID holds the cart id of a session: session:cart:{session_id} -> cart_id
const KeyCartID = "session:cart:%s"

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient connects to addr and verifies it with a ping.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// NewRedis returns a Store shared by every API instance using rdb.
func NewRedis(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) CartID(ctx context.Context, sessionID string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, fmt.Sprintf(KeyCartID, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisStore) SetCartID(ctx context.Context, sessionID, cartID string) error {
	return s.rdb.Set(ctx, fmt.Sprintf(KeyCartID, sessionID), cartID, s.ttl).Err()
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(KeyCartID, sessionID)).Err()
}
