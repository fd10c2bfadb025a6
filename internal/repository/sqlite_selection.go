package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/jardin/internal/db"
	"github.com/alexanderramin/jardin/internal/domain"
)

// SQLiteSelectionRepo implements SelectionRepo using a SQLite database.
// Selections are returned in insertion order (rowid), which is the order the
// plans and tasks were composed in.
type SQLiteSelectionRepo struct {
	db db.DBTX
}

func NewSQLiteSelectionRepo(conn db.DBTX) *SQLiteSelectionRepo {
	return &SQLiteSelectionRepo{db: conn}
}

func (r *SQLiteSelectionRepo) CreatePlanSelection(ctx context.Context, ps *domain.PlanSelection) error {
	if ps.CreatedAt.IsZero() {
		ps.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO plan_selections
		(id, origin_type, origin_id, plan_id, custom_name, reference_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ps.ID, string(ps.OriginType), ps.OriginID, ps.PlanID, ps.CustomName,
		ps.ReferencePrice.String(),
		ps.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan selection: %w", err)
	}
	return nil
}

func (r *SQLiteSelectionRepo) CreateTaskSelection(ctx context.Context, ts *domain.TaskSelection) error {
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO task_selections
		(id, plan_selection_id, task_id, included, visible_to_crew, observation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.ID, ts.PlanSelectionID, ts.TaskID,
		boolToInt(ts.Included), boolToInt(ts.VisibleToCrew),
		ts.Observation,
		ts.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task selection: %w", err)
	}
	return nil
}

const planSelectionColumns = `id, origin_type, origin_id, plan_id, custom_name, reference_price, created_at`

// ListPlanSelections returns every plan selection across all documents.
func (r *SQLiteSelectionRepo) ListPlanSelections(ctx context.Context) ([]*domain.PlanSelection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planSelectionColumns+` FROM plan_selections ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing plan selections: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlanSelection
	for rows.Next() {
		ps, err := scanPlanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan selection row: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// ListByOrigin returns the plan selections of one document with their task
// selections attached.
func (r *SQLiteSelectionRepo) ListByOrigin(ctx context.Context, origin domain.OriginType, originID string) ([]domain.SelectionWithTasks, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planSelectionColumns+` FROM plan_selections
		WHERE origin_type = ? AND origin_id = ? ORDER BY rowid`, string(origin), originID)
	if err != nil {
		return nil, fmt.Errorf("listing plan selections by origin: %w", err)
	}

	var out []domain.SelectionWithTasks
	index := make(map[string]int)
	for rows.Next() {
		ps, err := scanPlanSelection(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning plan selection row: %w", err)
		}
		index[ps.ID] = len(out)
		out = append(out, domain.SelectionWithTasks{Selection: *ps})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating plan selections: %w", err)
	}
	rows.Close()

	if len(out) == 0 {
		return nil, nil
	}

	taskRows, err := r.db.QueryContext(ctx, `SELECT ts.id, ts.plan_selection_id, ts.task_id, ts.included,
			ts.visible_to_crew, ts.observation, ts.created_at
		FROM task_selections ts
		JOIN plan_selections ps ON ps.id = ts.plan_selection_id
		WHERE ps.origin_type = ? AND ps.origin_id = ?
		ORDER BY ps.rowid, ts.rowid`, string(origin), originID)
	if err != nil {
		return nil, fmt.Errorf("listing task selections by origin: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		ts, err := scanTaskSelection(taskRows)
		if err != nil {
			return nil, fmt.Errorf("scanning task selection row: %w", err)
		}
		i := index[ts.PlanSelectionID]
		out[i].Tasks = append(out[i].Tasks, *ts)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task selections: %w", err)
	}
	return out, nil
}

// ListVisibleTasks returns the task selections of one document that field
// crews may see, with task and plan names resolved.
func (r *SQLiteSelectionRepo) ListVisibleTasks(ctx context.Context, origin domain.OriginType, originID string) ([]VisibleTask, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ts.id, ts.task_id, t.name,
			COALESCE(NULLIF(ps.custom_name, ''), p.name), COALESCE(ts.observation, '')
		FROM task_selections ts
		JOIN plan_selections ps ON ps.id = ts.plan_selection_id
		JOIN tasks t ON t.id = ts.task_id
		JOIN plans p ON p.id = ps.plan_id
		WHERE ps.origin_type = ? AND ps.origin_id = ? AND ts.visible_to_crew = 1
		ORDER BY ps.rowid, ts.rowid`, string(origin), originID)
	if err != nil {
		return nil, fmt.Errorf("listing visible tasks: %w", err)
	}
	defer rows.Close()

	var out []VisibleTask
	for rows.Next() {
		var vt VisibleTask
		if err := rows.Scan(&vt.TaskSelectionID, &vt.TaskID, &vt.TaskName, &vt.PlanName, &vt.Observation); err != nil {
			return nil, fmt.Errorf("scanning visible task row: %w", err)
		}
		out = append(out, vt)
	}
	return out, rows.Err()
}

// DeleteByOrigin removes every selection of one document, task selections
// before their plan selections. It returns the number of plan selections removed.
func (r *SQLiteSelectionRepo) DeleteByOrigin(ctx context.Context, origin domain.OriginType, originID string) (int, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_selections WHERE plan_selection_id IN
		(SELECT id FROM plan_selections WHERE origin_type = ? AND origin_id = ?)`,
		string(origin), originID); err != nil {
		return 0, fmt.Errorf("deleting task selections: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_selections WHERE origin_type = ? AND origin_id = ?`,
		string(origin), originID)
	if err != nil {
		return 0, fmt.Errorf("deleting plan selections: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading deleted plan selections: %w", err)
	}
	return int(n), nil
}

func scanPlanSelection(s rowScanner) (*domain.PlanSelection, error) {
	var ps domain.PlanSelection
	var origin, price, createdAt string
	if err := s.Scan(&ps.ID, &origin, &ps.OriginID, &ps.PlanID, &ps.CustomName, &price, &createdAt); err != nil {
		return nil, err
	}
	ps.OriginType = domain.OriginType(origin)

	var err error
	if ps.ReferencePrice, err = parseDecimal(price); err != nil {
		return nil, err
	}
	if ps.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &ps, nil
}

func scanTaskSelection(s rowScanner) (*domain.TaskSelection, error) {
	var ts domain.TaskSelection
	var included, visible int
	var observation sql.NullString
	var createdAt string
	if err := s.Scan(&ts.ID, &ts.PlanSelectionID, &ts.TaskID, &included, &visible, &observation, &createdAt); err != nil {
		return nil, err
	}
	ts.Included = intToBool(included)
	ts.VisibleToCrew = intToBool(visible)
	ts.Observation = observation.String

	var err error
	if ts.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &ts, nil
}
