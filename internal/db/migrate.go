package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if upgradeDone(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// upgradeDone reports errors from upgrade statements re-run against a schema
// that is already current. Every statement runs on every start.
func upgradeDone(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		strings.Contains(msg, "no such table: visit_task_completions")
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id     TEXT PRIMARY KEY,
		name   TEXT NOT NULL,
		region TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id     TEXT PRIMARY KEY,
		name   TEXT NOT NULL,
		leader TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		address         TEXT NOT NULL DEFAULT '',
		city_id         TEXT REFERENCES cities(id) ON DELETE SET NULL,
		status          TEXT NOT NULL DEFAULT 'prospect'
		                CHECK(status IN ('prospect','active','inactive')),
		contact_name    TEXT NOT NULL DEFAULT '',
		contact_phone   TEXT NOT NULL DEFAULT '',
		contact_email   TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		onboarding_date TEXT NOT NULL,
		acceptance_date TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL DEFAULT 'predefined'
		           CHECK(kind IN ('predefined','custom')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_plan ON tasks(plan_id)`,

	`CREATE TABLE IF NOT EXISTS quotes (
		id                TEXT PRIMARY KEY,
		client_id         TEXT NOT NULL REFERENCES clients(id),
		creation_date     TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending'
		                  CHECK(status IN ('pending','sent','accepted','discarded')),
		send_date         TEXT,
		acceptance_date   TEXT,
		considerations    TEXT NOT NULL DEFAULT '',
		economic_proposal TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quotes_client ON quotes(client_id)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id         TEXT PRIMARY KEY,
		client_id  TEXT NOT NULL REFERENCES clients(id),
		team_id    TEXT NOT NULL REFERENCES teams(id),
		quote_id   TEXT REFERENCES quotes(id) ON DELETE SET NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','suspended','finished','cancelled')),
		frequency  TEXT NOT NULL
		           CHECK(frequency IN ('monthly','biweekly','weekly','one_off')),
		visit_day  TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contracts_client ON contracts(client_id)`,

	`CREATE TABLE IF NOT EXISTS plan_selections (
		id              TEXT PRIMARY KEY,
		origin_type     TEXT NOT NULL CHECK(origin_type IN ('quote','contract')),
		origin_id       TEXT NOT NULL,
		plan_id         TEXT NOT NULL REFERENCES plans(id),
		custom_name     TEXT NOT NULL DEFAULT '',
		reference_price TEXT NOT NULL DEFAULT '0',
		created_at      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_selections_origin_plan
		ON plan_selections(origin_type, origin_id, plan_id)`,

	`CREATE TABLE IF NOT EXISTS task_selections (
		id                TEXT PRIMARY KEY,
		plan_selection_id TEXT NOT NULL REFERENCES plan_selections(id) ON DELETE CASCADE,
		task_id           TEXT NOT NULL REFERENCES tasks(id),
		included          INTEGER NOT NULL DEFAULT 1,
		visible_to_crew   INTEGER NOT NULL DEFAULT 1,
		observation       TEXT,
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_selections_plan_selection ON task_selections(plan_selection_id)`,

	`CREATE TABLE IF NOT EXISTS visits (
		id               TEXT PRIMARY KEY,
		client_id        TEXT NOT NULL REFERENCES clients(id),
		contract_id      TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		team_id          TEXT NOT NULL REFERENCES teams(id),
		date             TEXT NOT NULL,
		type             TEXT NOT NULL DEFAULT 'regular'
		                 CHECK(type IN ('regular','extra')),
		status           TEXT NOT NULL DEFAULT 'scheduled'
		                 CHECK(status IN ('scheduled','in_progress','completed','rescheduled','cancelled')),
		crew_observation TEXT NOT NULL DEFAULT '',
		closed_by        TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_visits_contract ON visits(contract_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_date ON visits(date)`,

	`CREATE TABLE IF NOT EXISTS visit_done_tasks (
		visit_id  TEXT NOT NULL REFERENCES visits(id) ON DELETE CASCADE,
		task_id   TEXT NOT NULL,
		task_name TEXT NOT NULL,
		plan_name TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (visit_id, task_id)
	)`,

	// Map pin for the crew, added after the first release.
	`ALTER TABLE clients ADD COLUMN location_link TEXT NOT NULL DEFAULT ''`,

	// Agenda slot of each visit. Older rows take their current date.
	`ALTER TABLE visits ADD COLUMN original_date TEXT NOT NULL DEFAULT ''`,
	`UPDATE visits SET original_date = date WHERE original_date = ''`,

	// Done tasks used to reference task selections, which contract edits
	// replace. Copy them by task with their names, then drop the old table.
	`INSERT OR IGNORE INTO visit_done_tasks (visit_id, task_id, task_name, plan_name)
		SELECT c.visit_id, ts.task_id, t.name, COALESCE(NULLIF(ps.custom_name, ''), p.name)
		FROM visit_task_completions c
		JOIN task_selections ts ON ts.id = c.task_selection_id
		JOIN plan_selections ps ON ps.id = ts.plan_selection_id
		JOIN tasks t ON t.id = ts.task_id
		JOIN plans p ON p.id = ps.plan_id`,
	`DROP TABLE IF EXISTS visit_task_completions`,
}
