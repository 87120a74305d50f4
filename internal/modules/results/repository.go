// Package results persists evaluation runs to SQLite so past runs can be
// compared without re-running the batch.
package results

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/modules/metrics"
)

// Repository handles evaluation result database operations.
// Tables: runs, episode_records.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new results repository and ensures the schema exists.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	r := &Repository{
		db:  db,
		log: log.With().Str("repo", "results").Logger(),
	}
	if err := r.initSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			run_id     TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			episodes   INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS episode_records (
			run_id              TEXT NOT NULL REFERENCES runs(run_id),
			episode             INTEGER NOT NULL,
			ticker              TEXT NOT NULL,
			normalized_return   REAL NOT NULL,
			final_pnl           REAL NOT NULL,
			option_payoff       REAL NOT NULL,
			hedging_pnl         REAL NOT NULL,
			premium_paid        REAL NOT NULL,
			initial_expiry_days INTEGER NOT NULL,
			optimal_max_return  REAL NOT NULL,
			optimal_min_return  REAL NOT NULL,
			PRIMARY KEY (run_id, episode)
		);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize results schema: %w", err)
	}
	return nil
}

// SaveRun stores a completed run and all its episode records in a single
// transaction.
func (r *Repository) SaveRun(runID string, rs *metrics.ResultSet) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (run_id, created_at, episodes) VALUES (?, ?, ?)",
		runID, time.Now().Unix(), rs.Len(),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO episode_records (
			run_id, episode, ticker, normalized_return, final_pnl,
			option_payoff, hedging_pnl, premium_paid, initial_expiry_days,
			optimal_max_return, optimal_min_return
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range rs.Records() {
		if _, err := stmt.Exec(
			runID, i, rec.Ticker, rec.NormalizedReturn, rec.FinalPnL,
			rec.OptionPayoff, rec.HedgingPnL, rec.PremiumPaid, rec.InitialExpiryDays,
			rec.OptimalMaxReturn, rec.OptimalMinReturn,
		); err != nil {
			return fmt.Errorf("failed to insert episode record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	r.log.Info().
		Str("run_id", runID).
		Int("episodes", rs.Len()).
		Msg("Run saved")

	return nil
}

// GetRun loads the episode records of a stored run, in episode order.
func (r *Repository) GetRun(runID string) (*metrics.ResultSet, error) {
	rows, err := r.db.Query(`
		SELECT ticker, normalized_return, final_pnl, option_payoff, hedging_pnl,
		       premium_paid, initial_expiry_days, optimal_max_return, optimal_min_return
		FROM episode_records
		WHERE run_id = ?
		ORDER BY episode
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query episode records: %w", err)
	}
	defer rows.Close()

	rs := metrics.NewResultSet()
	for rows.Next() {
		var rec metrics.EpisodeRecord
		if err := rows.Scan(
			&rec.Ticker, &rec.NormalizedReturn, &rec.FinalPnL, &rec.OptionPayoff,
			&rec.HedgingPnL, &rec.PremiumPaid, &rec.InitialExpiryDays,
			&rec.OptimalMaxReturn, &rec.OptimalMinReturn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan episode record: %w", err)
		}
		rs.Append(rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating episode records: %w", err)
	}

	if rs.Len() == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	return rs, nil
}

// RunInfo describes one stored run.
type RunInfo struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Episodes  int       `json:"episodes"`
}

// ListRuns returns stored runs, newest first.
func (r *Repository) ListRuns() ([]RunInfo, error) {
	rows, err := r.db.Query("SELECT run_id, created_at, episodes FROM runs ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAtUnix int64
		if err := rows.Scan(&info.RunID, &createdAtUnix, &info.Episodes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
		runs = append(runs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}
