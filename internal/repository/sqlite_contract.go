package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

func NewSQLiteContractRepo(conn db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: conn}
}

const contractColumns = `id, client_id, team_id, quote_id, start_date, end_date, status,
	frequency, visit_day, created_at, updated_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	_, err := r.db.ExecContext(ctx, `INSERT INTO contracts (`+contractColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.TeamID, nullableStringPtr(c.QuoteID),
		c.StartDate.Format(dateLayout),
		c.EndDate.Format(dateLayout),
		string(c.Status), string(c.Frequency),
		domain.WeekdayName(c.VisitDay),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	c, err := scanContract(row)
	if err != nil {
		return nil, notFound("contract", id, err)
	}
	return c, nil
}

func (r *SQLiteContractRepo) List(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return out, nil
}

func (r *SQLiteContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE contracts SET team_id = ?, quote_id = ?, start_date = ?,
		end_date = ?, status = ?, frequency = ?, visit_day = ?, updated_at = ?
		WHERE id = ?`,
		c.TeamID, nullableStringPtr(c.QuoteID),
		c.StartDate.Format(dateLayout),
		c.EndDate.Format(dateLayout),
		string(c.Status), string(c.Frequency),
		domain.WeekdayName(c.VisitDay),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	return requireAffected(res, "contract", c.ID)
}

func (r *SQLiteContractRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return requireAffected(res, "contract", id)
}

func scanContract(s rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var quoteID sql.NullString
	var start, end, status, frequency, visitDay, createdAt, updatedAt string

	if err := s.Scan(
		&c.ID, &c.ClientID, &c.TeamID, &quoteID, &start, &end, &status,
		&frequency, &visitDay, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if quoteID.Valid && quoteID.String != "" {
		id := quoteID.String
		c.QuoteID = &id
	}
	c.Status = domain.ContractStatus(status)
	c.Frequency = domain.Frequency(frequency)

	var err error
	if c.VisitDay, err = domain.ParseWeekday(visitDay); err != nil {
		return nil, fmt.Errorf("parsing visit_day: %w", err)
	}
	if c.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if c.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
