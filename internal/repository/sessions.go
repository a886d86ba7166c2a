package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Sessions struct {
	db DB
}

func NewSessions(db DB) *Sessions {
	return &Sessions{db: db}
}

func (r *Sessions) Create(ctx context.Context, userID uuid.UUID, fingerprint []byte, expiresAt time.Time) (*domain.Session, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO sessions (user_id, fingerprint, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, fingerprint, created_at, expires_at, revoked`,
		userID, fingerprint, expiresAt)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.Fingerprint, &s.CreatedAt, &s.ExpiresAt, &s.Revoked); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &s, nil
}

func (r *Sessions) GetByFingerprint(ctx context.Context, fingerprint []byte) (*domain.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, fingerprint, created_at, expires_at, revoked
		 FROM sessions WHERE fingerprint = $1`,
		fingerprint)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.Fingerprint, &s.CreatedAt, &s.ExpiresAt, &s.Revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (r *Sessions) Revoke(ctx context.Context, fingerprint []byte) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sessions SET revoked = TRUE WHERE fingerprint = $1`, fingerprint)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Called periodically
// from main.
func (r *Sessions) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
