package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Memberships struct {
	db DB
}

func NewMemberships(db DB) *Memberships {
	return &Memberships{db: db}
}

func (r *Memberships) WithTx(tx pgx.Tx) *Memberships {
	return &Memberships{db: tx}
}

const membershipColumns = "user_id, store_id, points_balance, total_earned, total_redeemed, joined_at, updated_at"

func (r *Memberships) Create(ctx context.Context, userID, storeID uuid.UUID) (*domain.StoreMembership, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO store_memberships (user_id, store_id)
		 VALUES ($1, $2)
		 RETURNING `+membershipColumns,
		userID, storeID)
	m, err := scanMembership(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return m, nil
}

func (r *Memberships) Get(ctx context.Context, userID, storeID uuid.UUID) (*domain.StoreMembership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+membershipColumns+` FROM store_memberships WHERE user_id = $1 AND store_id = $2`,
		userID, storeID)
	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

// GetForUpdate locks the membership row for the duration of the
// surrounding transaction.
func (r *Memberships) GetForUpdate(ctx context.Context, userID, storeID uuid.UUID) (*domain.StoreMembership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+membershipColumns+` FROM store_memberships WHERE user_id = $1 AND store_id = $2 FOR UPDATE`,
		userID, storeID)
	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("lock membership: %w", err)
	}
	return m, nil
}

// AdjustBalance applies a signed point delta and keeps the earned and
// redeemed totals in step. Returns the new balance.
func (r *Memberships) AdjustBalance(ctx context.Context, userID, storeID uuid.UUID, delta int64) (int64, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE store_memberships
		 SET points_balance = points_balance + $3,
		     total_earned = total_earned + GREATEST($3, 0),
		     total_redeemed = total_redeemed + GREATEST(-$3, 0),
		     updated_at = now()
		 WHERE user_id = $1 AND store_id = $2
		 RETURNING points_balance`,
		userID, storeID, delta)
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrMembershipNotFound
		}
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	return balance, nil
}

func (r *Memberships) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StoreMembership, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+membershipColumns+` FROM store_memberships WHERE user_id = $1 ORDER BY joined_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}
	defer rows.Close()
	return collectMemberships(rows)
}

func (r *Memberships) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.StoreMembership, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+membershipColumns+` FROM store_memberships WHERE store_id = $1 ORDER BY joined_at LIMIT $2 OFFSET $3`,
		storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list memberships by store: %w", err)
	}
	defer rows.Close()
	return collectMemberships(rows)
}

func scanMembership(row pgx.Row) (*domain.StoreMembership, error) {
	var m domain.StoreMembership
	err := row.Scan(&m.UserID, &m.StoreID, &m.PointsBalance, &m.TotalEarned,
		&m.TotalRedeemed, &m.JoinedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMemberships(rows pgx.Rows) ([]*domain.StoreMembership, error) {
	var members []*domain.StoreMembership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
