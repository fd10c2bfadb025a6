package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

type SQLiteCityRepo struct {
	db db.DBTX
}

func NewSQLiteCityRepo(conn db.DBTX) *SQLiteCityRepo {
	return &SQLiteCityRepo{db: conn}
}

func (r *SQLiteCityRepo) Create(ctx context.Context, c *domain.City) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (id, name, region) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Region)
	if err != nil {
		return fmt.Errorf("inserting city: %w", err)
	}
	return nil
}

func (r *SQLiteCityRepo) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var c domain.City
	err := r.db.QueryRowContext(ctx, `SELECT id, name, region FROM cities WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Region)
	if err != nil {
		return nil, notFound("city", id, err)
	}
	return &c, nil
}

func (r *SQLiteCityRepo) List(ctx context.Context) ([]*domain.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, region FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	defer rows.Close()

	var out []*domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Region); err != nil {
			return nil, fmt.Errorf("scanning city row: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *SQLiteCityRepo) Update(ctx context.Context, c *domain.City) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cities SET name = ?, region = ? WHERE id = ?`, c.Name, c.Region, c.ID)
	if err != nil {
		return fmt.Errorf("updating city: %w", err)
	}
	return requireAffected(res, "city", c.ID)
}

func (r *SQLiteCityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting city: %w", err)
	}
	return requireAffected(res, "city", id)
}
