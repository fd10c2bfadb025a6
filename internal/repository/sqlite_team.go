package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, leader) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Leader)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	var t domain.Team
	err := r.db.QueryRowContext(ctx, `SELECT id, name, leader FROM teams WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Leader)
	if err != nil {
		return nil, notFound("team", id, err)
	}
	return &t, nil
}

func (r *SQLiteTeamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, leader FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var out []*domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Leader); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *SQLiteTeamRepo) Update(ctx context.Context, t *domain.Team) error {
	res, err := r.db.ExecContext(ctx, `UPDATE teams SET name = ?, leader = ? WHERE id = ?`, t.Name, t.Leader, t.ID)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	return requireAffected(res, "team", t.ID)
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return requireAffected(res, "team", id)
}
