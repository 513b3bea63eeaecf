// Package history persists analyzed sessions in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/asana/internal/domain/scoring"
	"github.com/okian/asana/pkg/metrics"

	_ "modernc.org/sqlite"
)

// Record is one analyzed session. GlobalScore is nil for failed analyses.
type Record struct {
	SessionID         string             `json:"session_id"`
	UserID            string             `json:"user_id"`
	Pose              string             `json:"pose"`
	GlobalScore       *float64           `json:"global_score,omitempty"`
	SkillLevel        string             `json:"skill_level,omitempty"`
	PriorityIndicator string             `json:"priority_indicator,omitempty"`
	Indicators        map[string]float64 `json:"indicators,omitempty"`
	Error             string             `json:"error,omitempty"`
	CapturedAt        time.Time          `json:"captured_at"`
}

// Summary aggregates a user's scored sessions.
type Summary struct {
	UserID       string         `json:"user_id"`
	Sessions     int            `json:"sessions"`
	Scored       int            `json:"scored"`
	BestScore    float64        `json:"best_score"`
	AverageScore float64        `json:"average_score"`
	Poses        map[string]int `json:"poses"`
	LastSession  time.Time      `json:"last_session"`
}

// Store is a SQLite-backed session history.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and runs migrations.
// ":memory:" gives a private in-memory database.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: shared.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rec, replacing an earlier record with the same session ID.
func (s *Store) Save(ctx context.Context, rec Record) error { //nolint:gocritic // hugeParam: records are values
	if rec.SessionID == "" || rec.UserID == "" {
		metrics.RecordHistoryWrite("invalid")
		return ErrMissingID
	}
	indicators, err := json.Marshal(rec.Indicators)
	if err != nil {
		metrics.RecordHistoryWrite("error")
		return fmt.Errorf("encode indicators: %w", err)
	}
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = time.Now()
	}

	var score sql.NullFloat64
	if rec.GlobalScore != nil {
		score = sql.NullFloat64{Float64: *rec.GlobalScore, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions
			(session_id, user_id, pose, global_score, skill_level, priority_indicator, indicators, error, captured_at_ms, stored_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.UserID, rec.Pose, score, rec.SkillLevel, rec.PriorityIndicator,
		string(indicators), rec.Error, rec.CapturedAt.UnixMilli(), time.Now().UnixMilli(),
	)
	if err != nil {
		metrics.RecordHistoryWrite("error")
		return fmt.Errorf("insert session %s: %w", rec.SessionID, err)
	}
	metrics.RecordHistoryWrite("ok")
	return nil
}

// ListByUser returns up to limit sessions of a user, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	defer observe(time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, user_id, pose, global_score, skill_level, priority_indicator, indicators, error, captured_at_ms
		 FROM sessions
		 WHERE user_id = ?
		 ORDER BY captured_at_ms DESC, session_id
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			score      sql.NullFloat64
			indicators string
			captured   int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.UserID, &rec.Pose, &score, &rec.SkillLevel,
			&rec.PriorityIndicator, &indicators, &rec.Error, &captured); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			rec.GlobalScore = &v
		}
		if err := json.Unmarshal([]byte(indicators), &rec.Indicators); err != nil {
			return nil, fmt.Errorf("decode indicators of %s: %w", rec.SessionID, err)
		}
		rec.CapturedAt = time.UnixMilli(captured).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary aggregates every stored session of a user.
func (s *Store) Summary(ctx context.Context, userID string) (Summary, error) {
	defer observe(time.Now())

	sum := Summary{UserID: userID, Poses: map[string]int{}}
	var (
		best, avg sql.NullFloat64
		last      sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(global_score), MAX(global_score), AVG(global_score), MAX(captured_at_ms)
		 FROM sessions WHERE user_id = ?`,
		userID,
	).Scan(&sum.Sessions, &sum.Scored, &best, &avg, &last)
	if err != nil {
		return Summary{}, err
	}
	if sum.Sessions == 0 {
		return Summary{}, ErrNotFound
	}
	sum.BestScore = best.Float64
	sum.AverageScore = scoring.Round(avg.Float64)
	sum.LastSession = time.UnixMilli(last.Int64).UTC()

	rows, err := s.db.QueryContext(ctx,
		`SELECT pose, COUNT(*) FROM sessions WHERE user_id = ? GROUP BY pose`, userID)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pose string
			n    int
		)
		if err := rows.Scan(&pose, &n); err != nil {
			return Summary{}, err
		}
		sum.Poses[pose] = n
	}
	return sum, rows.Err()
}

// Delete removes every session of a user and returns how many were removed.
func (s *Store) Delete(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func observe(start time.Time) {
	metrics.RecordHistoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}
