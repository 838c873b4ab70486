// Package store archives run results into an embedded SQLite database so
// past reconciliation runs stay queryable after their CSV folders are gone.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// SQLiteStore persists run archives using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input_dir   TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	leads       INTEGER NOT NULL,
	updates     INTEGER NOT NULL,
	call_logs   INTEGER NOT NULL,
	run_time    DATETIME NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS leads (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	name          TEXT,
	email         TEXT,
	phone         TEXT,
	city          TEXT,
	original_file TEXT NOT NULL,
	employee      TEXT
);

CREATE TABLE IF NOT EXISTS updates (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	name          TEXT,
	email         TEXT,
	phone         TEXT,
	city          TEXT,
	update_text   TEXT NOT NULL,
	original_file TEXT NOT NULL,
	employee      TEXT,
	recorded_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS call_analyses (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	phone              TEXT NOT NULL,
	name               TEXT,
	call_count         INTEGER NOT NULL,
	total_duration_s   INTEGER NOT NULL,
	avg_duration_s     REAL NOT NULL,
	avg_gap_days       REAL NOT NULL,
	min_gap_days       REAL NOT NULL,
	max_gap_days       REAL NOT NULL,
	first_call         DATETIME,
	last_call          DATETIME,
	distinct_call_days INTEGER NOT NULL,
	timeline           TEXT
);

CREATE INDEX IF NOT EXISTS idx_leads_run_id ON leads(run_id);
CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone);
CREATE INDEX IF NOT EXISTS idx_updates_run_id ON updates(run_id);
CREATE INDEX IF NOT EXISTS idx_call_analyses_run_id ON call_analyses(run_id);
CREATE INDEX IF NOT EXISTS idx_call_analyses_phone ON call_analyses(phone);
`

// Migrate creates the archive schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ArchiveRun inserts one run with all its canonical rows in a single
// transaction and returns the run ID.
func (s *SQLiteStore) ArchiveRun(ctx context.Context, res *model.Result, inputDir, outputDir string) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin archive tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input_dir, output_dir, leads, updates, call_logs, run_time) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, inputDir, outputDir, len(res.Leads), len(res.Updates), len(res.CallLogs), res.RunTime.UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}

	for _, l := range res.Leads {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO leads (run_id, name, email, phone, city, original_file, employee) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, l.Name, l.Email, l.Phone, l.City, l.OriginalFile, l.Employee,
		)
		if err != nil {
			return "", eris.Wrap(err, "sqlite: insert lead")
		}
	}

	for _, u := range res.Updates {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO updates (run_id, name, email, phone, city, update_text, original_file, employee, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, u.Name, u.Email, u.Phone, u.City, u.UpdateText, u.OriginalFile, u.Employee, u.Timestamp.UTC(),
		)
		if err != nil {
			return "", eris.Wrap(err, "sqlite: insert update")
		}
	}

	for _, a := range res.Analyses {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO call_analyses (run_id, phone, name, call_count, total_duration_s, avg_duration_s, avg_gap_days, min_gap_days, max_gap_days, first_call, last_call, distinct_call_days, timeline)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, a.Phone, a.Name, a.CallCount, a.TotalDurationSeconds, a.AvgTimePerCallSeconds,
			a.AvgGapDays, a.MinGapDays, a.MaxGapDays,
			nullableTime(a.FirstCall), nullableTime(a.LastCall),
			a.DistinctCallDays, strings.Join(a.Timeline, " | "),
		)
		if err != nil {
			return "", eris.Wrap(err, "sqlite: insert call analysis")
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit archive tx")
	}
	return id, nil
}

// RunCount returns the number of archived runs.
func (s *SQLiteStore) RunCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: count runs")
	}
	return n, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
