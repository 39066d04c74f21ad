package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/db"
)

// PostgresSessionStore persists session tokens to PostgreSQL. It is an
// opt-in alternative to the in-memory store for deployments that want
// sessions to survive restarts.
type PostgresSessionStore struct {
	pool db.Pool
}

// NewPostgresSessionStore constructs a session store backed by PostgreSQL.
func NewPostgresSessionStore(pool db.Pool) *PostgresSessionStore {
	return &PostgresSessionStore{pool: pool}
}

// Save stores or updates a session record.
func (s *PostgresSessionStore) Save(ctx context.Context, session auth.Session) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO sessions (token, username, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (token)
        DO UPDATE SET username = EXCLUDED.username, expires_at = EXCLUDED.expires_at
    `, session.Token, session.Username, session.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// Find loads a session by its token.
func (s *PostgresSessionStore) Find(ctx context.Context, token string) (auth.Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return auth.Session{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT token, username, expires_at
        FROM sessions
        WHERE token = $1
    `, token)

	var session auth.Session
	var expiresAt time.Time
	if err := row.Scan(&session.Token, &session.Username, &expiresAt); err != nil {
		if err == pgx.ErrNoRows {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("select session: %w", err)
	}

	session.ExpiresAt = expiresAt.UTC()
	return session, nil
}

// Delete removes a session by its token.
func (s *PostgresSessionStore) Delete(ctx context.Context, token string) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM sessions
        WHERE token = $1
    `, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return auth.ErrSessionNotFound
	}

	return nil
}

var _ auth.SessionStore = (*PostgresSessionStore)(nil)
var _ auth.UserSource = (*PostgresUserRepository)(nil)
