// Package results persists session outcomes to SQLite for later analysis.
// Recording is an audit side effect: callers log failures and keep playing.
package results

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gaips/go-elmo/pkg/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	started_at     INTEGER NOT NULL,
	ended_at       INTEGER,
	equal_feedback INTEGER NOT NULL,
	points_p1      INTEGER,
	points_p2      INTEGER,
	winner         INTEGER
);
CREATE TABLE IF NOT EXISTS turns (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	move       INTEGER NOT NULL,
	player     INTEGER NOT NULL,
	emotion    TEXT NOT NULL,
	accuracy   INTEGER NOT NULL,
	PRIMARY KEY (session_id, move)
);
`

// Store persists game results in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) a results database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("results path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping results db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create results schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// StartSession inserts the session row.
func (s *Store) StartSession(id string, startedAt time.Time, equalFeedback bool) error {
	_, err := s.sqlDB.Exec(
		`INSERT INTO sessions (id, started_at, equal_feedback) VALUES (?, ?, ?)`,
		id, startedAt.UTC().UnixMilli(), equalFeedback,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordTurn inserts one turn row.
func (s *Store) RecordTurn(id string, move int, player game.Player, emotion string, accuracy int) error {
	_, err := s.sqlDB.Exec(
		`INSERT INTO turns (session_id, move, player, emotion, accuracy) VALUES (?, ?, ?, ?, ?)`,
		id, move, int(player), emotion, accuracy,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// FinishSession records the final totals and winner.
func (s *Store) FinishSession(id string, endedAt time.Time, points map[game.Player]int, winner game.Player) error {
	_, err := s.sqlDB.Exec(
		`UPDATE sessions SET ended_at = ?, points_p1 = ?, points_p2 = ?, winner = ? WHERE id = ?`,
		endedAt.UTC().UnixMilli(), points[game.Player1], points[game.Player2], int(winner), id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// SessionResult is one completed session's summary.
type SessionResult struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	EqualFeedback bool
	PointsP1      int
	PointsP2      int
	Winner        int
}

// Sessions lists completed sessions, newest first.
func (s *Store) Sessions(limit int) ([]SessionResult, error) {
	rows, err := s.sqlDB.Query(
		`SELECT id, started_at, ended_at, equal_feedback, points_p1, points_p2, winner
		 FROM sessions WHERE ended_at IS NOT NULL
		 ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionResult
	for rows.Next() {
		var r SessionResult
		var started, ended int64
		if err := rows.Scan(&r.ID, &started, &ended, &r.EqualFeedback, &r.PointsP1, &r.PointsP2, &r.Winner); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		r.StartedAt = time.UnixMilli(started).UTC()
		r.EndedAt = time.UnixMilli(ended).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ game.Recorder = (*Store)(nil)
