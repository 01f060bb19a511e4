package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portfolio:session:"

// RedisStore keeps sessions in Redis with a TTL equal to the session lifetime,
// so expired sessions disappear without a sweeper.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)

	if ttl <= 0 {
		return ErrExpired
	}

	b, err := json.Marshal(sess)

	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.rdb.Set(ctx, redisKeyPrefix+sess.ID, b, ttl).Err()

	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	b, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session

	err = json.Unmarshal(b, &sess)

	if err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}

	if sess.Expired(time.Now()) {
		return Session{}, ErrExpired
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	err := s.rdb.Del(ctx, redisKeyPrefix+id).Err()

	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
