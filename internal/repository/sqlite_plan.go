package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err != nil {
		return nil, notFound("plan", id, err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM plans ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.UpdatedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return requireAffected(res, "plan", p.ID)
}

// Delete removes the plan and, through the foreign key, its catalog tasks.
func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireAffected(res, "plan", id)
}

func scanPlan(s rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var createdAt, updatedAt string
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
