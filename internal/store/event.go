package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequence numbers every stored event across tables, so audit rows and
// transcripts can be interleaved in the order they happened. Numbers come
// from an AUTOINCREMENT key, which SQLite never reuses.
type sequence struct {
	db *sql.DB
}

// Next allocates the next number. Only the newest row is kept; the counter
// itself lives in sqlite_sequence.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `INSERT INTO event_sequence DEFAULT VALUES RETURNING seq`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM event_sequence WHERE seq < ?`, n); err != nil {
		return 0, fmt.Errorf("prune sequence: %w", err)
	}
	return n, nil
}
