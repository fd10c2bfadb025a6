package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

// SQLiteVisitRepo implements VisitRepo using a SQLite database.
type SQLiteVisitRepo struct {
	db db.DBTX
}

func NewSQLiteVisitRepo(conn db.DBTX) *SQLiteVisitRepo {
	return &SQLiteVisitRepo{db: conn}
}

const visitColumns = `id, client_id, contract_id, team_id, date, original_date, type, status,
	crew_observation, closed_by, created_at, updated_at`

func (r *SQLiteVisitRepo) Create(ctx context.Context, v *domain.Visit) error {
	stamp(&v.CreatedAt, &v.UpdatedAt)
	if v.OriginalDate.IsZero() {
		v.OriginalDate = v.Date
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO visits (`+visitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ClientID, v.ContractID, v.TeamID,
		v.Date.Format(dateLayout), v.OriginalDate.Format(dateLayout),
		string(v.Type), string(v.Status),
		v.CrewObservation, v.ClosedBy,
		v.CreatedAt.Format(time.RFC3339),
		v.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting visit: %w", err)
	}
	return nil
}

func (r *SQLiteVisitRepo) GetByID(ctx context.Context, id string) (*domain.Visit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = ?`, id)
	v, err := scanVisit(row)
	if err != nil {
		return nil, notFound("visit", id, err)
	}
	return v, nil
}

// List returns visits ordered by date, filtered by f.
func (r *SQLiteVisitRepo) List(ctx context.Context, f VisitFilter) ([]*domain.Visit, error) {
	var where []string
	var args []any
	if f.ContractID != "" {
		where = append(where, "contract_id = ?")
		args = append(args, f.ContractID)
	}
	if f.TeamID != "" {
		where = append(where, "team_id = ?")
		args = append(args, f.TeamID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, f.To.Format(dateLayout))
	}

	query := `SELECT ` + visitColumns + ` FROM visits`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, team_id, rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var out []*domain.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning visit row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}
	return out, nil
}

func (r *SQLiteVisitRepo) Update(ctx context.Context, v *domain.Visit) error {
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `UPDATE visits SET team_id = ?, date = ?, type = ?, status = ?,
		crew_observation = ?, closed_by = ?, updated_at = ?
		WHERE id = ?`,
		v.TeamID, v.Date.Format(dateLayout), string(v.Type), string(v.Status),
		v.CrewObservation, v.ClosedBy,
		v.UpdatedAt.Format(time.RFC3339),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating visit: %w", err)
	}
	return requireAffected(res, "visit", v.ID)
}

func (r *SQLiteVisitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting visit: %w", err)
	}
	return requireAffected(res, "visit", id)
}

// AddCompletions records the tasks marked done on a visit.
// Re-adding a task already recorded for the visit is ignored.
func (r *SQLiteVisitRepo) AddCompletions(ctx context.Context, visitID string, done []domain.VisitTaskCompletion) error {
	for _, c := range done {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO visit_done_tasks (visit_id, task_id, task_name, plan_name)
			VALUES (?, ?, ?, ?)`,
			visitID, c.TaskID, c.TaskName, c.PlanName); err != nil {
			return fmt.Errorf("inserting visit completion: %w", err)
		}
	}
	return nil
}

func (r *SQLiteVisitRepo) ListCompletions(ctx context.Context, visitID string) ([]domain.VisitTaskCompletion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT visit_id, task_id, task_name, plan_name FROM visit_done_tasks
		WHERE visit_id = ? ORDER BY rowid`, visitID)
	if err != nil {
		return nil, fmt.Errorf("listing visit completions: %w", err)
	}
	defer rows.Close()

	var out []domain.VisitTaskCompletion
	for rows.Next() {
		var c domain.VisitTaskCompletion
		if err := rows.Scan(&c.VisitID, &c.TaskID, &c.TaskName, &c.PlanName); err != nil {
			return nil, fmt.Errorf("scanning visit completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanVisit(s rowScanner) (*domain.Visit, error) {
	var v domain.Visit
	var date, originalDate, typ, status, createdAt, updatedAt string
	if err := s.Scan(
		&v.ID, &v.ClientID, &v.ContractID, &v.TeamID, &date, &originalDate, &typ, &status,
		&v.CrewObservation, &v.ClosedBy, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	v.Type = domain.VisitType(typ)
	v.Status = domain.VisitStatus(status)

	var err error
	if v.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if v.OriginalDate, err = time.Parse(dateLayout, originalDate); err != nil {
		return nil, fmt.Errorf("parsing original_date: %w", err)
	}
	if v.CreatedAt, v.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
