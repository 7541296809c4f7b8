package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/session"
)

var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// RedisStore keeps sessions in redis under session:<token> with a TTL
// matching the session expiry, so sign-out and expiry both converge on
// key deletion.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) session.Store {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sess *session.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "failed to serialize session")
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	if err := s.client.Set(ctx, keyPrefix+sess.Token, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store session")
	}
	return nil
}

func (s *RedisStore) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	var sess session.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize session")
	}
	if sess.Expired() {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
