package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Claims struct {
	db DB
}

func NewClaims(db DB) *Claims {
	return &Claims{db: db}
}

func (r *Claims) WithTx(tx pgx.Tx) *Claims {
	return &Claims{db: tx}
}

const claimColumns = "id, user_id, store_id, visited_at, amount_spent, status, reviewed_by, review_reason, created_at, reviewed_at"

func (r *Claims) Create(ctx context.Context, userID, storeID uuid.UUID, visitedAt time.Time, amountSpent decimal.Decimal) (*domain.RewardClaim, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO reward_claims (user_id, store_id, visited_at, amount_spent)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+claimColumns,
		userID, storeID, visitedAt, amountSpent)
	c, err := scanClaim(row)
	if err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}
	return c, nil
}

func (r *Claims) GetByID(ctx context.Context, id uuid.UUID) (*domain.RewardClaim, error) {
	row := r.db.QueryRow(ctx, `SELECT `+claimColumns+` FROM reward_claims WHERE id = $1`, id)
	c, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

// Review performs the conditional pending -> approved/rejected
// transition. Returns rows affected: 0 means the claim was missing,
// outside the store scope, or already reviewed.
func (r *Claims) Review(ctx context.Context, claimID, storeID, reviewerID uuid.UUID, status domain.ClaimStatus, reason string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE reward_claims
		 SET status = $4, reviewed_by = $3, review_reason = $5, reviewed_at = now()
		 WHERE id = $1 AND store_id = $2 AND status = 'pending'`,
		claimID, storeID, reviewerID, status, reason)
	if err != nil {
		return 0, fmt.Errorf("review claim: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Claims) ListByStore(ctx context.Context, storeID uuid.UUID, status domain.ClaimStatus, limit, offset int) ([]*domain.RewardClaim, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+claimColumns+` FROM reward_claims
		 WHERE store_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		storeID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list claims by store: %w", err)
	}
	defer rows.Close()
	return collectClaims(rows)
}

func (r *Claims) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.RewardClaim, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+claimColumns+` FROM reward_claims WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list claims by user: %w", err)
	}
	defer rows.Close()
	return collectClaims(rows)
}

func scanClaim(row pgx.Row) (*domain.RewardClaim, error) {
	var c domain.RewardClaim
	err := row.Scan(&c.ID, &c.UserID, &c.StoreID, &c.VisitedAt, &c.AmountSpent,
		&c.Status, &c.ReviewedBy, &c.ReviewReason, &c.CreatedAt, &c.ReviewedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectClaims(rows pgx.Rows) ([]*domain.RewardClaim, error) {
	var claims []*domain.RewardClaim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
