package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendSentinel/internal/model"
)

// SQLiteRecorder persists scan runs and the watchlist to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			period          TEXT NOT NULL,
			total_processed INTEGER,
			highest_score   REAL,
			lowest_score    REAL,
			average_score   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON batch_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           INTEGER NOT NULL,
			rank             INTEGER NOT NULL,
			ticker           TEXT NOT NULL,
			latest_date      TEXT,
			normalized_score REAL,
			weighted_raw     REAL,
			ma_score         INTEGER,
			macd_score       INTEGER,
			adx_score        INTEGER,
			rsi_score        INTEGER,
			obv_score        INTEGER,
			FOREIGN KEY (run_id) REFERENCES batch_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON scan_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_ticker ON scan_results(ticker)`,

		`CREATE TABLE IF NOT EXISTS watchlist (
			ticker   TEXT PRIMARY KEY,
			added_at INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordBatch stores one scan run and its ranked results in a single
// transaction, so a crash never leaves a run without its rows.
func (r *SQLiteRecorder) RecordBatch(rec *BatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO batch_runs
		(timestamp, period, total_processed, highest_score, lowest_score, average_score)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Period,
		rec.Summary.TotalProcessed, rec.Summary.HighestScore,
		rec.Summary.LowestScore, rec.Summary.AverageScore,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO scan_results
		(run_id, rank, ticker, latest_date, normalized_score, weighted_raw,
		 ma_score, macd_score, adx_score, rsi_score, obv_score)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare results: %w", err)
	}
	defer stmt.Close()

	for i, sc := range rec.Results {
		if _, err := stmt.Exec(runID, i+1, sc.Ticker, sc.LatestDate,
			sc.NormalizedTrendScore, sc.WeightedRawScore,
			sc.MAScore, sc.MACDScore, sc.ADXScore, sc.RSIScore, sc.OBVScore,
		); err != nil {
			return fmt.Errorf("insert result %s: %w", sc.Ticker, err)
		}
	}

	return tx.Commit()
}

// TopScores returns the top results of the most recent scan run, already
// ordered by rank.
func (r *SQLiteRecorder) TopScores(limit int) ([]model.TrendScoreResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var runID int64
	err := r.db.QueryRow(`SELECT id FROM batch_runs ORDER BY timestamp DESC, id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}

	rows, err := r.db.Query(`SELECT ticker, latest_date, normalized_score, weighted_raw,
		ma_score, macd_score, adx_score, rsi_score, obv_score
		FROM scan_results WHERE run_id = ? ORDER BY rank LIMIT ?`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []model.TrendScoreResult
	for rows.Next() {
		var sc model.TrendScoreResult
		if err := rows.Scan(&sc.Ticker, &sc.LatestDate,
			&sc.NormalizedTrendScore, &sc.WeightedRawScore,
			&sc.MAScore, &sc.MACDScore, &sc.ADXScore, &sc.RSIScore, &sc.OBVScore,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Watchlist returns the stored tickers in alphabetical order.
func (r *SQLiteRecorder) Watchlist() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT ticker FROM watchlist ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddTickers inserts tickers into the watchlist, ignoring duplicates.
func (r *SQLiteRecorder) AddTickers(tickers []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, t := range tickers {
		if _, err := r.db.Exec(
			`INSERT OR IGNORE INTO watchlist (ticker, added_at) VALUES (?,?)`, t, now,
		); err != nil {
			return fmt.Errorf("add %s: %w", t, err)
		}
	}
	return nil
}

// RemoveTicker deletes a ticker from the watchlist.
func (r *SQLiteRecorder) RemoveTicker(ticker string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM watchlist WHERE ticker = ?`, ticker)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
