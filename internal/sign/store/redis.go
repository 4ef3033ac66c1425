package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"underwriter/internal/sign/models"
	"underwriter/pkg/platform/sentinel"
)

const (
	sessionKeyPrefix = "sign:session:"
	claimKeySuffix   = ":claim"

	// DefaultSessionTTL bounds how long a session can wait for its callback.
	DefaultSessionTTL = 24 * time.Hour
)

type redisSession struct {
	Method    models.SignMethod `json:"method"`
	QuoteIDs  []uuid.UUID       `json:"quoteIds"`
	CreatedAt time.Time         `json:"createdAt"`
}

type redisClaim struct {
	Status     models.SessionStatus `json:"status"`
	Reason     string               `json:"reason,omitempty"`
	FinishedAt time.Time            `json:"finishedAt"`
}

// RedisStore keeps sign sessions in Redis. The terminal status lives under
// a separate claim key written with SETNX, so exactly one claim wins.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

func WithSessionTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func sessionKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() }
func claimKey(id uuid.UUID) string   { return sessionKeyPrefix + id.String() + claimKeySuffix }

func (s *RedisStore) Insert(ctx context.Context, method models.SignMethod, quoteIDs []uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	body, err := json.Marshal(redisSession{Method: method, QuoteIDs: quoteIDs, CreatedAt: s.now()})
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal sign session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), body, s.ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("insert sign session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Find(ctx context.Context, id uuid.UUID) (*models.SignSession, error) {
	pipe := s.client.Pipeline()
	sessCmd := pipe.Get(ctx, sessionKey(id))
	claimCmd := pipe.Get(ctx, claimKey(id))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("find sign session: %w", err)
	}

	raw, err := sessCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find sign session: %w", err)
	}
	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("unmarshal sign session: %w", err)
	}
	sess := &models.SignSession{
		ID:        id,
		Method:    rs.Method,
		QuoteIDs:  rs.QuoteIDs,
		Status:    models.SessionPending,
		CreatedAt: rs.CreatedAt,
	}

	rawClaim, err := claimCmd.Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return sess, nil
	case err != nil:
		return nil, fmt.Errorf("find sign session claim: %w", err)
	}
	var claim redisClaim
	if err := json.Unmarshal(rawClaim, &claim); err != nil {
		return nil, fmt.Errorf("unmarshal sign session claim: %w", err)
	}
	sess.Status = claim.Status
	sess.Reason = claim.Reason
	sess.FinishedAt = &claim.FinishedAt
	return sess, nil
}

func (s *RedisStore) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.claim(ctx, id, redisClaim{Status: models.SessionCompleted, FinishedAt: at})
}

func (s *RedisStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return s.claim(ctx, id, redisClaim{Status: models.SessionFailed, Reason: reason, FinishedAt: at})
}

func (s *RedisStore) claim(ctx context.Context, id uuid.UUID, c redisClaim) error {
	n, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("check sign session: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}

	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal sign session claim: %w", err)
	}
	ok, err := s.client.SetNX(ctx, claimKey(id), body, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("claim sign session: %w", err)
	}
	if !ok {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}
