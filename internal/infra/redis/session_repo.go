package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/repository"
)

var _ repository.SessionStateRepository = (*SessionRepo)(nil)

// SessionRepo keeps the per-user dialogue context in Redis as a JSON blob.
// The TTL bounds the context to roughly one login session; an expired or
// missing key maps to ErrNotFound so callers start from a fresh context.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func (s *SessionRepo) contextKey(username string) string {
	return fmt.Sprintf("chat_ctx:%s", username)
}

func (s *SessionRepo) Get(ctx context.Context, username string) (model.SessionContext, error) {
	data, err := s.client.Get(ctx, s.contextKey(username))
	if err != nil {
		if IsNil(err) {
			return model.SessionContext{}, domain.ErrNotFound
		}
		return model.SessionContext{}, err
	}

	var sc model.SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return model.SessionContext{}, fmt.Errorf("decode session context: %w", err)
	}
	return sc, nil
}

func (s *SessionRepo) Put(ctx context.Context, username string, sc model.SessionContext) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.contextKey(username), data, s.ttl)
}

func (s *SessionRepo) Clear(ctx context.Context, username string) error {
	return s.client.Del(ctx, s.contextKey(username))
}
