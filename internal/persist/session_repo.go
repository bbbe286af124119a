package persist

import (
	"context"
	"fmt"
	"time"
)

// SessionRow is one finished arena session.
type SessionRow struct {
	ID        int64
	Player    string
	Level     string
	Outcome   string
	Lives     int
	Covered   float64
	Frames    int64
	Claims    int
	Deaths    int
	Digest    []byte
	StartedAt time.Time
	EndedAt   time.Time
}

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save inserts row and returns its id. EndedAt defaults to now.
func (r *SessionRepo) Save(ctx context.Context, row *SessionRow) (int64, error) {
	if row.EndedAt.IsZero() {
		row.EndedAt = time.Now()
	}
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO arena_sessions
		    (player, level, outcome, lives, covered, frames, claims, deaths, digest, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		row.Player, row.Level, row.Outcome, row.Lives, row.Covered, row.Frames,
		row.Claims, row.Deaths, row.Digest, row.StartedAt, row.EndedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save session: %w", err)
	}
	row.ID = id
	return id, nil
}

// Best returns the highest-coverage sessions of a level, newest first among
// equal coverage.
func (r *SessionRepo) Best(ctx context.Context, level string, limit int) ([]SessionRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, player, level, outcome, lives, covered, frames, claims, deaths, digest, started_at, ended_at
		 FROM arena_sessions
		 WHERE level = $1
		 ORDER BY covered DESC, ended_at DESC
		 LIMIT $2`, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query best sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(
			&s.ID, &s.Player, &s.Level, &s.Outcome, &s.Lives, &s.Covered, &s.Frames,
			&s.Claims, &s.Deaths, &s.Digest, &s.StartedAt, &s.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
