// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Scar2201/RPCG/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			input TEXT NOT NULL,
			targets INTEGER NOT NULL,
			precision REAL NOT NULL,
			hold_ms INTEGER NOT NULL,
			transition_delay_ms INTEGER NOT NULL,
			reflex INTEGER NOT NULL,
			target_min REAL NOT NULL,
			target_max REAL NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			game_time_ms INTEGER NOT NULL,
			avg_reaction_ms REAL NOT NULL,
			min_reaction_ms REAL NOT NULL,
			max_reaction_ms REAL NOT NULL,
			avg_precision REAL NOT NULL,
			consistency INTEGER NOT NULL,
			overall INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS target_records (
			session_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			target_value REAL NOT NULL,
			reaction_ms REAL NOT NULL,
			completion_ms REAL NOT NULL,
			accuracy REAL NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_target_records_session ON target_records(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its target records.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, records []model.TargetRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	reflex := 0
	if rec.Config.Reflex {
		reflex = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (uuid, started_at, ended_at, mode, input, targets, precision, hold_ms, transition_delay_ms, reflex, target_min, target_max, elapsed_ms, game_time_ms, avg_reaction_ms, min_reaction_ms, max_reaction_ms, avg_precision, consistency, overall)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UUID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Config.Mode,
		rec.Config.Input,
		rec.Config.Targets,
		rec.Config.Precision,
		int64(rec.Config.Hold*1000),
		int64(rec.Config.TransitionDelay*1000),
		reflex,
		rec.Config.TargetMin,
		rec.Config.TargetMax,
		rec.Scores.ElapsedMs,
		rec.Scores.GameTimeMs,
		rec.Scores.AvgReactionMs,
		rec.Scores.MinReactionMs,
		rec.Scores.MaxReactionMs,
		rec.Scores.AvgPrecision,
		rec.Scores.Consistency,
		rec.Scores.Overall,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(records) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO target_records (session_id, seq, target_value, reaction_ms, completion_ms, accuracy)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, r := range records {
			if _, err := stmt.ExecContext(ctx, id, i, r.TargetValue, r.ReactionMs, r.CompletionMs, r.Accuracy); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, mode, targets, avg_reaction_ms, avg_precision, consistency, overall
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Mode, &agg.Targets, &agg.AvgReactionMs, &agg.AvgPrecision, &agg.Consistency, &agg.Overall); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListBandAggregates aggregates target records per 10% band across the
// given sessions.
func (s *Store) ListBandAggregates(ctx context.Context, sessionIDs []int64) ([]model.BandAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT CAST(MIN(target_value / 10, 9) AS INTEGER) AS band,
		COUNT(*) AS attempts, AVG(accuracy) AS avg_deviation, AVG(reaction_ms) AS avg_reaction_ms
		FROM target_records
		WHERE session_id IN (%s)
		GROUP BY band
		ORDER BY band`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.BandAggregate
	for rows.Next() {
		var agg model.BandAggregate
		if err := rows.Scan(&agg.Band, &agg.Attempts, &agg.AvgDeviation, &agg.AvgReactionMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetWeakBands aggregates band statistics over the most recent
// sessions, for focus-weak target generation.
func (s *Store) GetWeakBands(ctx context.Context, window int, mode string) ([]model.BandAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR mode = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT CAST(MIN(tr.target_value / 10, 9) AS INTEGER) AS band,
		COUNT(*) AS attempts, AVG(tr.accuracy) AS avg_deviation, AVG(tr.reaction_ms) AS avg_reaction_ms
	FROM target_records tr
	JOIN recent_sessions r ON r.id = tr.session_id
	GROUP BY band
	ORDER BY band`

	rows, err := s.db.QueryContext(ctx, query, mode, mode, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.BandAggregate
	for rows.Next() {
		var agg model.BandAggregate
		if err := rows.Scan(&agg.Band, &agg.Attempts, &agg.AvgDeviation, &agg.AvgReactionMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListRecordsForSessions returns stored target records keyed by
// session id, in sequence order.
func (s *Store) ListRecordsForSessions(ctx context.Context, sessionIDs []int64) (map[int64][]model.TargetRecord, error) {
	if len(sessionIDs) == 0 {
		return map[int64][]model.TargetRecord{}, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT session_id, target_value, reaction_ms, completion_ms, accuracy
		FROM target_records
		WHERE session_id IN (%s)
		ORDER BY session_id, seq`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[int64][]model.TargetRecord{}
	for rows.Next() {
		var sessionID int64
		var r model.TargetRecord
		if err := rows.Scan(&sessionID, &r.TargetValue, &r.ReactionMs, &r.CompletionMs, &r.Accuracy); err != nil {
			return nil, err
		}
		result[sessionID] = append(result[sessionID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
