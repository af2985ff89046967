package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"splitstep/internal/core"
	"splitstep/internal/sims/langevin"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	iterations  INTEGER,
	converged   INTEGER,
	final_time  REAL,
	density     REAL,
	elapsed_ns  INTEGER
);

CREATE TABLE IF NOT EXISTS run_params (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	grp    TEXT NOT NULL,
	key    TEXT NOT NULL,
	type   TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (run_id, key)
);

CREATE TABLE IF NOT EXISTS records (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	iteration INTEGER NOT NULL,
	time      REAL NOT NULL,
	density   REAL NOT NULL,
	wall_ns   INTEGER NOT NULL,
	PRIMARY KEY (run_id, iteration)
);
`

// fixed width so started_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Store keeps run metadata and convergence records in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// RunInfo summarises one stored run.
type RunInfo struct {
	ID         string
	Label      string
	StartedAt  time.Time
	Finished   bool
	Iterations int
	Converged  bool
	Time       float64
	Density    float64
	Elapsed    time.Duration
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// StartRun registers a run with its parameters and returns a sink that
// stores its records.
func (s *Store) StartRun(ctx context.Context, label string, params core.ParameterSnapshot) (*RunRecorder, error) {
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, started_at) VALUES (?, ?, ?)`,
		id, label, time.Now().UTC().Format(timeLayout)); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	for _, g := range params.Groups {
		for _, p := range g.Params {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_params (run_id, grp, key, type, value) VALUES (?, ?, ?, ?, ?)`,
				id, g.Name, p.Key, string(p.Type), p.Value); err != nil {
				return nil, fmt.Errorf("failed to insert parameter %s: %w", p.Key, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return &RunRecorder{store: s, ctx: ctx, id: id}, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, started_at, finished_at IS NOT NULL,
		       COALESCE(iterations, 0), COALESCE(converged, 0),
		       COALESCE(final_time, 0), COALESCE(density, 0), COALESCE(elapsed_ns, 0)
		FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			started string
			elapsed int64
		)
		if err := rows.Scan(&info.ID, &info.Label, &started, &info.Finished,
			&info.Iterations, &info.Converged, &info.Time, &info.Density, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.StartedAt, _ = time.Parse(timeLayout, started)
		info.Elapsed = time.Duration(elapsed)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Records returns the records of a run in iteration order.
func (s *Store) Records(ctx context.Context, runID string) ([]langevin.Record, error) {
	if err := s.exists(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, time, density, wall_ns FROM records WHERE run_id = ? ORDER BY iteration`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []langevin.Record
	for rows.Next() {
		var (
			r    langevin.Record
			wall int64
		)
		if err := rows.Scan(&r.Iteration, &r.Time, &r.Density, &wall); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Wall = time.Duration(wall)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Params returns the parameter snapshot a run was started with.
func (s *Store) Params(ctx context.Context, runID string) (core.ParameterSnapshot, error) {
	if err := s.exists(ctx, runID); err != nil {
		return core.ParameterSnapshot{}, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT grp, key, type, value FROM run_params WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return core.ParameterSnapshot{}, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	var snap core.ParameterSnapshot
	index := make(map[string]int)
	for rows.Next() {
		var (
			grp, typ string
			p        core.Parameter
		)
		if err := rows.Scan(&grp, &p.Key, &typ, &p.Value); err != nil {
			return core.ParameterSnapshot{}, fmt.Errorf("failed to scan parameter: %w", err)
		}
		p.Type = core.ParamType(typ)
		p.Label = p.Key
		i, ok := index[grp]
		if !ok {
			i = len(snap.Groups)
			index[grp] = i
			snap.Groups = append(snap.Groups, core.ParameterGroup{Name: grp})
		}
		snap.Groups[i].Params = append(snap.Groups[i].Params, p)
	}
	return snap, rows.Err()
}

func (s *Store) exists(ctx context.Context, runID string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
		return fmt.Errorf("failed to look up run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// RunRecorder is the record sink of one stored run.
type RunRecorder struct {
	store *Store
	ctx   context.Context
	id    string
}

// ID returns the run id.
func (r *RunRecorder) ID() string { return r.id }

// Emit stores one record.
func (r *RunRecorder) Emit(rec langevin.Record) error {
	if _, err := r.store.db.ExecContext(r.ctx,
		`INSERT INTO records (run_id, iteration, time, density, wall_ns) VALUES (?, ?, ?, ?, ?)`,
		r.id, rec.Iteration, rec.Time, rec.Density, int64(rec.Wall)); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// Finish stores the outcome of the run. It uses its own context so an
// interrupted run is still closed out.
func (r *RunRecorder) Finish(ctx context.Context, res langevin.Result) error {
	if _, err := r.store.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, iterations = ?, converged = ?,
		       final_time = ?, density = ?, elapsed_ns = ?
		WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), res.Iterations, res.Converged,
		res.Time, res.Density, int64(res.Elapsed), r.id); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}
