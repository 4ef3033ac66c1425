package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"underwriter/internal/sign/models"
	"underwriter/pkg/platform/sentinel"
)

// PostgresStore keeps sign sessions in the sign_sessions table.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

func (s *PostgresStore) Insert(ctx context.Context, method models.SignMethod, quoteIDs []uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx, `
INSERT INTO sign_sessions (id, method, quote_ids, status, created_at)
VALUES ($1, $2, $3::uuid[], $4, $5)
`, id.String(), string(method), uuidStrings(quoteIDs), string(models.SessionPending), s.now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert sign session: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Find(ctx context.Context, id uuid.UUID) (*models.SignSession, error) {
	var (
		sess     models.SignSession
		method   string
		status   string
		quoteIDs []string
	)
	err := s.pool.QueryRow(ctx, `
SELECT method, quote_ids::text[], status, reason, created_at, finished_at
FROM sign_sessions
WHERE id = $1
`, id.String()).Scan(&method, &quoteIDs, &status, &sess.Reason, &sess.CreatedAt, &sess.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sign session: %w", err)
	}
	sess.ID = id
	sess.Method = models.SignMethod(method)
	sess.Status = models.SessionStatus(status)
	sess.QuoteIDs = make([]uuid.UUID, 0, len(quoteIDs))
	for _, raw := range quoteIDs {
		qid, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse quote id of sign session %s: %w", id, err)
		}
		sess.QuoteIDs = append(sess.QuoteIDs, qid)
	}
	return &sess, nil
}

func (s *PostgresStore) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.claim(ctx, id, models.SessionCompleted, "", at)
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return s.claim(ctx, id, models.SessionFailed, reason, at)
}

// claim moves a PENDING session to status. The status predicate makes
// concurrent claims race on the row lock; only one sees a row affected.
func (s *PostgresStore) claim(ctx context.Context, id uuid.UUID, status models.SessionStatus, reason string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE sign_sessions
SET status = $2, reason = $3, finished_at = $4
WHERE id = $1 AND status = $5
`, id.String(), string(status), reason, at, string(models.SessionPending))
	if err != nil {
		return fmt.Errorf("update sign session: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sign_sessions WHERE id = $1)`, id.String()).Scan(&exists); err != nil {
		return fmt.Errorf("check sign session: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrAlreadyUsed
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
