package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

// ErrDuplicateCode signals a per-store code collision on insert; the
// caller regenerates and retries.
var ErrDuplicateCode = errors.New("duplicate redemption code")

type Redemptions struct {
	db DB
}

func NewRedemptions(db DB) *Redemptions {
	return &Redemptions{db: db}
}

func (r *Redemptions) WithTx(tx pgx.Tx) *Redemptions {
	return &Redemptions{db: tx}
}

const redemptionColumns = "id, user_id, store_id, code, points_used, reward_value_gbp, status, created_at, used_at"

// Create inserts a pending code. ON CONFLICT DO NOTHING keeps a code
// collision from aborting the surrounding transaction, so the caller
// can regenerate and retry within the same tx.
func (r *Redemptions) Create(ctx context.Context, userID, storeID uuid.UUID, code string, pointsUsed, rewardValueGBP int64) (*domain.RedemptionCode, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO redemption_codes (user_id, store_id, code, points_used, reward_value_gbp)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (store_id, code) DO NOTHING
		 RETURNING `+redemptionColumns,
		userID, storeID, code, pointsUsed, rewardValueGBP)
	rc, err := scanRedemption(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("create redemption code: %w", err)
	}
	return rc, nil
}

// GetByCode looks a code up within a store scope. Codes issued at one
// store are invisible from another store's scope.
func (r *Redemptions) GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*domain.RedemptionCode, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+redemptionColumns+` FROM redemption_codes WHERE store_id = $1 AND code = $2`,
		storeID, code)
	rc, err := scanRedemption(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("get redemption code: %w", err)
	}
	return rc, nil
}

// GetDetails returns the staff-facing view of a code, joined with the
// owning customer's name and email.
func (r *Redemptions) GetDetails(ctx context.Context, storeID uuid.UUID, code string) (*domain.RedemptionDetails, error) {
	row := r.db.QueryRow(ctx,
		`SELECT r.id, r.user_id, r.store_id, r.code, r.points_used, r.reward_value_gbp,
		        r.status, r.created_at, r.used_at, u.name, u.email
		 FROM redemption_codes r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.store_id = $1 AND r.code = $2`,
		storeID, code)
	var d domain.RedemptionDetails
	err := row.Scan(&d.ID, &d.UserID, &d.StoreID, &d.Code, &d.PointsUsed, &d.RewardValueGBP,
		&d.Status, &d.CreatedAt, &d.UsedAt, &d.UserName, &d.UserEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("get redemption details: %w", err)
	}
	return &d, nil
}

// MarkUsed performs the conditional pending -> used transition. Returns
// the number of rows affected: 1 when this caller won the transition,
// 0 when the code was absent from the store scope or already used.
func (r *Redemptions) MarkUsed(ctx context.Context, storeID uuid.UUID, code string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE redemption_codes
		 SET status = 'used', used_at = now()
		 WHERE store_id = $1 AND code = $2 AND status = 'pending'`,
		storeID, code)
	if err != nil {
		return 0, fmt.Errorf("mark redemption used: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Redemptions) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.RedemptionCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+redemptionColumns+` FROM redemption_codes WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list redemptions by user: %w", err)
	}
	defer rows.Close()
	return collectRedemptions(rows)
}

func (r *Redemptions) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.RedemptionCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+redemptionColumns+` FROM redemption_codes WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list redemptions by store: %w", err)
	}
	defer rows.Close()
	return collectRedemptions(rows)
}

func scanRedemption(row pgx.Row) (*domain.RedemptionCode, error) {
	var rc domain.RedemptionCode
	err := row.Scan(&rc.ID, &rc.UserID, &rc.StoreID, &rc.Code, &rc.PointsUsed,
		&rc.RewardValueGBP, &rc.Status, &rc.CreatedAt, &rc.UsedAt)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func collectRedemptions(rows pgx.Rows) ([]*domain.RedemptionCode, error) {
	var codes []*domain.RedemptionCode
	for rows.Next() {
		rc, err := scanRedemption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		codes = append(codes, rc)
	}
	return codes, rows.Err()
}
