package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

// SQLiteQuoteRepo implements QuoteRepo using a SQLite database.
type SQLiteQuoteRepo struct {
	db db.DBTX
}

func NewSQLiteQuoteRepo(conn db.DBTX) *SQLiteQuoteRepo {
	return &SQLiteQuoteRepo{db: conn}
}

const quoteColumns = `id, client_id, creation_date, status, send_date, acceptance_date,
	considerations, economic_proposal, created_at, updated_at`

func (r *SQLiteQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	stamp(&q.CreatedAt, &q.UpdatedAt)
	if q.CreationDate.IsZero() {
		q.CreationDate = q.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO quotes (`+quoteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ClientID,
		q.CreationDate.Format(dateLayout),
		string(q.Status),
		nullableTimeToString(q.SendDate, dateLayout),
		nullableTimeToString(q.AcceptanceDate, dateLayout),
		q.Considerations, q.EconomicProposal,
		q.CreatedAt.Format(time.RFC3339),
		q.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}
	return nil
}

func (r *SQLiteQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if err != nil {
		return nil, notFound("quote", id, err)
	}
	return q, nil
}

// List returns quotes newest first. An empty status lists every quote.
func (r *SQLiteQuoteRepo) List(ctx context.Context, status domain.QuoteStatus) ([]*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY creation_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var out []*domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote row: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return out, nil
}

func (r *SQLiteQuoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	q.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE quotes SET client_id = ?, status = ?, send_date = ?,
		acceptance_date = ?, considerations = ?, economic_proposal = ?, updated_at = ?
		WHERE id = ?`,
		q.ClientID, string(q.Status),
		nullableTimeToString(q.SendDate, dateLayout),
		nullableTimeToString(q.AcceptanceDate, dateLayout),
		q.Considerations, q.EconomicProposal,
		q.UpdatedAt.Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}
	return requireAffected(res, "quote", q.ID)
}

// Delete removes the quote row only. Callers remove its selections first
// through SelectionRepo.DeleteByOrigin.
func (r *SQLiteQuoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	return requireAffected(res, "quote", id)
}

func scanQuote(s rowScanner) (*domain.Quote, error) {
	var q domain.Quote
	var status, creation, createdAt, updatedAt string
	var sendDate, acceptance sql.NullString

	if err := s.Scan(
		&q.ID, &q.ClientID, &creation, &status, &sendDate, &acceptance,
		&q.Considerations, &q.EconomicProposal, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	q.Status = domain.QuoteStatus(status)
	q.SendDate = parseNullableTime(sendDate, dateLayout)
	q.AcceptanceDate = parseNullableTime(acceptance, dateLayout)

	var err error
	if q.CreationDate, err = time.Parse(dateLayout, creation); err != nil {
		return nil, fmt.Errorf("parsing creation_date: %w", err)
	}
	if q.CreatedAt, q.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}
