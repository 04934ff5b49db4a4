package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/panesgr/chatbot-backend/pkg/logger"
	"github.com/panesgr/chatbot-backend/pkg/redis"
)

// sessionKV is the slice of the redis client the store needs.
type sessionKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(identity string) string
}

// RedisStore keeps sessions in Redis as JSON with a rolling TTL, so state
// survives process restarts and expires on its own.
type RedisStore struct {
	kv   sessionKV
	ttl  time.Duration
	logg *logger.Logger
}

// NewRedisStore constructs a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logg *logger.Logger) *RedisStore {
	return &RedisStore{kv: client, ttl: ttl, logg: logg}
}

// GetOrCreate loads the session for the identity, returning a fresh
// welcome-state session on a miss. A corrupt stored blob is dropped and
// replaced rather than surfaced to the conversation.
func (s *RedisStore) GetOrCreate(ctx context.Context, identity string) (*Session, error) {
	raw, err := s.kv.Get(ctx, s.kv.SessionKey(identity))
	if errors.Is(err, redis.Nil) {
		return New(identity), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logg.Warn(s.logg.WithIdentity(ctx, identity), "dropping undecodable session blob")
		_ = s.kv.Del(ctx, s.kv.SessionKey(identity))
		return New(identity), nil
	}
	return &session, nil
}

// Save serializes the session and resets its TTL.
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.SessionKey(session.Identity), string(raw), s.ttl); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Delete removes the stored session for the identity.
func (s *RedisStore) Delete(ctx context.Context, identity string) error {
	return s.kv.Del(ctx, s.kv.SessionKey(identity))
}
