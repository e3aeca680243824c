// Package history records training runs and their progress reports in a
// SQLite database, so runs can be listed and compared after the process
// that produced them has exited.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/born-ml/descent/internal/train"
)

// Run states stored in the status column.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
	StatusFailed    = "failed"
)

var (
	// ErrRunNotFound is returned when no run matches an id or prefix.
	ErrRunNotFound = errors.New("history: run not found")
	// ErrAmbiguousRun is returned when a prefix matches more than one run.
	ErrAmbiguousRun = errors.New("history: run prefix is ambiguous")
)

var schema = []string{
	`PRAGMA journal_mode=WAL`,
	`CREATE TABLE IF NOT EXISTS runs(
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		config TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		iterations INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS progress(
		run_id TEXT NOT NULL REFERENCES runs(id),
		iter INTEGER NOT NULL,
		loss REAL,
		accuracy REAL,
		PRIMARY KEY(run_id, iter)
	)`,
}

// Run describes one recorded training run.
type Run struct {
	ID         string
	Kind       string
	Config     string
	Status     string
	Iterations int
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress
}

// Store is a handle on a history database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	// SQLite allows one writer, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: init %s: %w", path, err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Start inserts a new run in the running state and returns a recorder for
// its progress. config is stored verbatim for later inspection. ctx bounds
// the recorder's progress writes.
func (s *Store) Start(ctx context.Context, id, kind, config string) (*Recorder, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, kind, config, status, started_at) VALUES(?, ?, ?, ?, ?)`,
		id, kind, config, StatusRunning, s.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("history: start run %s: %w", id, err)
	}
	return &Recorder{ctx: ctx, store: s, id: id}, nil
}

// Find returns the run whose id equals or starts with prefix.
func (s *Store) Find(ctx context.Context, prefix string) (Run, error) {
	if prefix == "" {
		return Run{}, ErrRunNotFound
	}
	runs, err := s.query(ctx, `WHERE id = ? OR substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`,
		prefix, prefix, prefix)
	if err != nil {
		return Run{}, err
	}
	switch {
	case len(runs) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case len(runs) > 1 && runs[0].ID != prefix:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
	return runs[0], nil
}

// Runs lists every run, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	return s.query(ctx, `ORDER BY started_at DESC, id`)
}

func (s *Store) query(ctx context.Context, tail string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, config, status, iterations, started_at, finished_at FROM runs `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Kind, &r.Config, &r.Status, &r.Iterations, &started, &finished); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		if finished.Valid {
			r.FinishedAt = time.UnixMilli(finished.Int64)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Progress returns the recorded reports of run id in iteration order.
func (s *Store) Progress(ctx context.Context, id string) ([]train.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iter, loss, accuracy FROM progress WHERE run_id = ? ORDER BY iter`, id)
	if err != nil {
		return nil, fmt.Errorf("history: progress of %s: %w", id, err)
	}
	defer rows.Close()

	var out []train.Progress
	for rows.Next() {
		var (
			p        train.Progress
			loss     sql.NullFloat64
			accuracy sql.NullFloat64
		)
		if err := rows.Scan(&p.Iter, &loss, &accuracy); err != nil {
			return nil, fmt.Errorf("history: scan progress: %w", err)
		}
		// SQLite stores NaN as NULL.
		p.Loss = math.NaN()
		if loss.Valid {
			p.Loss = loss.Float64
		}
		p.Accuracy, p.HasAccuracy = accuracy.Float64, accuracy.Valid
		out = append(out, p)
	}
	return out, rows.Err()
}

// Recorder writes the progress of one run. It implements train.Reporter.
type Recorder struct {
	// ctx is the run context captured by Start.
	ctx   context.Context
	store *Store
	id    string
}

// ID returns the run id.
func (r *Recorder) ID() string { return r.id }

// Report stores p.
func (r *Recorder) Report(p train.Progress) error {
	var accuracy any
	if p.HasAccuracy {
		accuracy = p.Accuracy
	}
	var loss any
	if !math.IsNaN(p.Loss) {
		loss = p.Loss
	}
	_, err := r.store.db.ExecContext(r.ctx,
		`INSERT INTO progress(run_id, iter, loss, accuracy) VALUES(?, ?, ?, ?)`,
		r.id, p.Iter, loss, accuracy)
	if err != nil {
		return fmt.Errorf("history: record iter %d: %w", p.Iter, err)
	}
	return nil
}

// Finish marks the run as done. The status is derived from the error the
// training loop returned: nil completes the run, a context error cancels it
// and anything else fails it.
func (r *Recorder) Finish(ctx context.Context, iterations int, trainErr error) error {
	status := StatusCompleted
	switch {
	case errors.Is(trainErr, context.Canceled), errors.Is(trainErr, context.DeadlineExceeded):
		status = StatusCanceled
	case trainErr != nil:
		status = StatusFailed
	}
	// The caller's ctx may be the one that was just canceled.
	_, err := r.store.db.ExecContext(context.WithoutCancel(ctx),
		`UPDATE runs SET status = ?, iterations = ?, finished_at = ? WHERE id = ?`,
		status, iterations, r.store.now().UnixMilli(), r.id)
	if err != nil {
		return fmt.Errorf("history: finish run %s: %w", r.id, err)
	}
	return nil
}
