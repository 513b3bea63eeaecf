package history

import "context"

// runMigrations executes all schema statements in order.
func (s *Store) runMigrations(ctx context.Context) error {
	migrations := []string{
		// One row per analyzed session
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			pose TEXT NOT NULL,
			global_score REAL,
			skill_level TEXT NOT NULL DEFAULT '',
			priority_indicator TEXT NOT NULL DEFAULT '',
			indicators TEXT NOT NULL DEFAULT '{}',
			error TEXT NOT NULL DEFAULT '',
			captured_at_ms INTEGER NOT NULL,
			stored_at_ms INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_user_captured ON sessions(user_id, captured_at_ms DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}
