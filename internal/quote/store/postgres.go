package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"underwriter/internal/quote/models"
	"underwriter/pkg/platform/sentinel"
	txcontext "underwriter/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists quotes in the quotes table. Payloads are stored as
// JSONB envelopes; concurrent writers are serialized by the version column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const selectColumns = `
	id, created_at, updated_at, state, data, parked, price, currency,
	attributed_to, initiated_from, current_insurer, member_id,
	originating_product_id, start_date, validity_seconds, breached_guidelines,
	underwriting_guidelines_bypassed_by, signed_at, sign_proof, failure_reason, version
`

// row holds the encoded columns shared by Insert and Update.
type row struct {
	data      []byte
	parked    []byte
	breaches  []byte
	signProof []byte
	kind      string
	market    string
	validity  int64
}

func encode(q *models.Quote) (row, error) {
	data, err := models.MarshalData(q.Data)
	if err != nil {
		return row{}, err
	}
	parked, err := models.MarshalParked(q.Parked)
	if err != nil {
		return row{}, err
	}
	breaches, err := json.Marshal(q.BreachedGuidelines)
	if err != nil {
		return row{}, fmt.Errorf("marshal breaches: %w", err)
	}
	var proof []byte
	if q.SignProof != nil {
		if proof, err = json.Marshal(q.SignProof); err != nil {
			return row{}, fmt.Errorf("marshal sign proof: %w", err)
		}
	}
	return row{
		data:      data,
		parked:    parked,
		breaches:  breaches,
		signProof: proof,
		kind:      string(q.Data.Kind()),
		market:    string(q.Market()),
		validity:  int64(q.Validity / time.Second),
	}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, q *models.Quote) error {
	r, err := encode(q)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO quotes (
			id, created_at, updated_at, state, kind, market, data, parked, price, currency,
			attributed_to, initiated_from, current_insurer, member_id,
			originating_product_id, start_date, validity_seconds, breached_guidelines,
			underwriting_guidelines_bypassed_by, signed_at, sign_proof, failure_reason, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, 1)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		q.ID, q.CreatedAt, q.UpdatedAt, string(q.State), r.kind, r.market, r.data, r.parked,
		q.Price, q.Currency, string(q.AttributedTo), string(q.InitiatedFrom),
		q.CurrentInsurer, q.MemberID, q.OriginatingProductID, q.StartDate, r.validity,
		r.breaches, q.UnderwritingGuidelinesBypassedBy, q.SignedAt, nullJSON(r.signProof),
		q.FailureReason,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	q.Version = 1
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, q *models.Quote) error {
	r, err := encode(q)
	if err != nil {
		return err
	}
	query := `
		UPDATE quotes SET
			updated_at = $2, state = $3, kind = $4, market = $5, data = $6, parked = $7,
			price = $8, currency = $9, current_insurer = $10, member_id = $11, start_date = $12,
			breached_guidelines = $13, underwriting_guidelines_bypassed_by = $14,
			signed_at = $15, sign_proof = $16, failure_reason = $17, version = version + 1
		WHERE id = $1 AND version = $18
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		q.ID, q.UpdatedAt, string(q.State), r.kind, r.market, r.data, r.parked,
		q.Price, q.Currency, q.CurrentInsurer, q.MemberID, q.StartDate,
		r.breaches, q.UnderwritingGuidelinesBypassedBy, q.SignedAt, nullJSON(r.signProof),
		q.FailureReason, q.Version,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if n == 0 {
		var exists bool
		err := s.execer(ctx).QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM quotes WHERE id = $1)`, q.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check quote: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	q.Version++
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	q, err := scanQuote(s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return q, nil
}

// FindByIDs returns the quotes in the order of ids, or sentinel.ErrNotFound
// if any id is unknown.
func (s *PostgresStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Quote, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+selectColumns+` FROM quotes WHERE id = ANY($1::uuid[])`, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("find quotes: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*models.Quote, len(ids))
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		byID[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	out := make([]*models.Quote, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, sentinel.ErrNotFound
		}
		out = append(out, q)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(sc scanner) (*models.Quote, error) {
	var (
		q              models.Quote
		state          string
		data           []byte
		parked         []byte
		price          decimal.NullDecimal
		attributedTo   string
		initiatedFrom  string
		currentInsurer sql.NullString
		memberID       sql.NullString
		originating    uuid.NullUUID
		startDate      sql.NullTime
		validity       int64
		breaches       []byte
		bypassedBy     sql.NullString
		signedAt       sql.NullTime
		signProof      []byte
	)
	err := sc.Scan(
		&q.ID, &q.CreatedAt, &q.UpdatedAt, &state, &data, &parked, &price, &q.Currency,
		&attributedTo, &initiatedFrom, &currentInsurer, &memberID,
		&originating, &startDate, &validity, &breaches,
		&bypassedBy, &signedAt, &signProof, &q.FailureReason, &q.Version,
	)
	if err != nil {
		return nil, err
	}

	if q.Data, err = models.UnmarshalData(data); err != nil {
		return nil, err
	}
	if q.Parked, err = models.UnmarshalParked(parked); err != nil {
		return nil, err
	}
	if len(breaches) > 0 {
		if err := json.Unmarshal(breaches, &q.BreachedGuidelines); err != nil {
			return nil, fmt.Errorf("unmarshal breaches: %w", err)
		}
	}
	if len(signProof) > 0 {
		q.SignProof = &models.SignProof{}
		if err := json.Unmarshal(signProof, q.SignProof); err != nil {
			return nil, fmt.Errorf("unmarshal sign proof: %w", err)
		}
	}

	q.State = models.State(state)
	q.AttributedTo = models.Partner(attributedTo)
	q.InitiatedFrom = models.Channel(initiatedFrom)
	q.Validity = time.Duration(validity) * time.Second
	if price.Valid {
		q.Price = &price.Decimal
	}
	q.CurrentInsurer = nullString(currentInsurer)
	q.MemberID = nullString(memberID)
	q.UnderwritingGuidelinesBypassedBy = nullString(bypassedBy)
	if originating.Valid {
		q.OriginatingProductID = &originating.UUID
	}
	if startDate.Valid {
		q.StartDate = &startDate.Time
	}
	if signedAt.Valid {
		q.SignedAt = &signedAt.Time
	}
	return &q, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
