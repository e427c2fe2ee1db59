package rundb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"

	pathlog "voxelpath.ai/internal/persistence/log"
)

// RunIndex records finished path searches into a sqlite file. Writes go
// through a single writer goroutine so search workers never block on disk.
type RunIndex struct {
	db *sql.DB

	ch   chan pathlog.CalculationRecord
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

func Open(path string) (*RunIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	r := &RunIndex{
		db: db,
		ch: make(chan pathlog.CalculationRecord, 4096),
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.loop()
	}()
	return r, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			job_id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			start_z INTEGER NOT NULL,
			target_x INTEGER NOT NULL,
			target_y INTEGER NOT NULL,
			target_z INTEGER NOT NULL,
			reaches INTEGER NOT NULL,
			path_len INTEGER NOT NULL,
			nodes_visited INTEGER NOT NULL,
			nodes_added INTEGER NOT NULL,
			duration_ms REAL NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record enqueues a run; it never blocks the caller once the buffer fills,
// dropping the record instead.
func (r *RunIndex) Record(rec pathlog.CalculationRecord) {
	if r == nil || r.closed.Load() {
		return
	}
	select {
	case r.ch <- rec:
	default:
	}
}

func (r *RunIndex) loop() {
	for rec := range r.ch {
		if err := r.insert(rec); err != nil {
			fmt.Fprintln(os.Stderr, "rundb: insert:", err)
		}
	}
}

func (r *RunIndex) insert(rec pathlog.CalculationRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO runs
		 (job_id, recorded_at, start_x, start_y, start_z, target_x, target_y, target_z,
		  reaches, path_len, nodes_visited, nodes_added, duration_ms, raw_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.JobID, rec.RecordedAt,
		rec.Start[0], rec.Start[1], rec.Start[2],
		rec.Target[0], rec.Target[1], rec.Target[2],
		boolInt(rec.Reaches), rec.PathLen, rec.NodesVisited, rec.NodesAdded,
		rec.DurationMS, string(raw),
	)
	return err
}

// RunSummary is one row of the runs table without the raw payload.
type RunSummary struct {
	JobID        string
	RecordedAt   string
	Start        [3]int
	Target       [3]int
	Reaches      bool
	PathLen      int
	NodesVisited int
}

// RecentRuns returns up to n runs, newest first.
func (r *RunIndex) RecentRuns(n int) ([]RunSummary, error) {
	rows, err := r.db.Query(
		`SELECT job_id, recorded_at, start_x, start_y, start_z,
		        target_x, target_y, target_z, reaches, path_len, nodes_visited
		 FROM runs ORDER BY recorded_at DESC, job_id LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var reaches int
		if err := rows.Scan(&s.JobID, &s.RecordedAt,
			&s.Start[0], &s.Start[1], &s.Start[2],
			&s.Target[0], &s.Target[1], &s.Target[2],
			&reaches, &s.PathLen, &s.NodesVisited); err != nil {
			return nil, err
		}
		s.Reaches = reaches != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close drains pending writes and closes the database.
func (r *RunIndex) Close() error {
	if r == nil {
		return nil
	}
	var err error
	r.once.Do(func() {
		r.closed.Store(true)
		close(r.ch)
		r.wg.Wait()
		err = r.db.Close()
	})
	return err
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
