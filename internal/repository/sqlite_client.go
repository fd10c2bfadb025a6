package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, address, city_id, status, contact_name, contact_phone, contact_email,
	location_link, notes, onboarding_date, acceptance_date, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	if c.OnboardingDate.IsZero() {
		c.OnboardingDate = c.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO clients (`+clientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Address, nullableString(c.CityID), string(c.Status),
		c.ContactName, c.ContactPhone, c.ContactEmail, c.LocationLink, c.Notes,
		c.OnboardingDate.Format(dateLayout),
		nullableTimeToString(c.AcceptanceDate, dateLayout),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, notFound("client", id, err)
	}
	return c, nil
}

// List returns clients ordered by name. An empty status lists all clients.
func (r *SQLiteClientRepo) List(ctx context.Context, status domain.ClientStatus) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var out []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return out, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE clients SET name = ?, address = ?, city_id = ?, status = ?,
		contact_name = ?, contact_phone = ?, contact_email = ?, location_link = ?, notes = ?,
		onboarding_date = ?, acceptance_date = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Address, nullableString(c.CityID), string(c.Status),
		c.ContactName, c.ContactPhone, c.ContactEmail, c.LocationLink, c.Notes,
		c.OnboardingDate.Format(dateLayout),
		nullableTimeToString(c.AcceptanceDate, dateLayout),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return requireAffected(res, "client", c.ID)
}

func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return requireAffected(res, "client", id)
}

func scanClient(s rowScanner) (*domain.Client, error) {
	var c domain.Client
	var cityID, acceptance sql.NullString
	var status, onboarding, createdAt, updatedAt string

	if err := s.Scan(
		&c.ID, &c.Name, &c.Address, &cityID, &status,
		&c.ContactName, &c.ContactPhone, &c.ContactEmail, &c.LocationLink, &c.Notes,
		&onboarding, &acceptance, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	c.CityID = cityID.String
	c.Status = domain.ClientStatus(status)
	c.AcceptanceDate = parseNullableTime(acceptance, dateLayout)

	var err error
	if c.OnboardingDate, err = time.Parse(dateLayout, onboarding); err != nil {
		return nil, fmt.Errorf("parsing onboarding_date: %w", err)
	}
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
