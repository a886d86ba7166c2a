package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Visits struct {
	db DB
}

func NewVisits(db DB) *Visits {
	return &Visits{db: db}
}

func (r *Visits) WithTx(tx pgx.Tx) *Visits {
	return &Visits{db: tx}
}

const visitColumns = "id, user_id, store_id, amount_spent, points_earned, claim_id, recorded_by, visited_at"

func (r *Visits) Create(ctx context.Context, userID, storeID uuid.UUID, amountSpent decimal.Decimal, pointsEarned int64, claimID *uuid.UUID, recordedBy uuid.UUID) (*domain.Visit, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO visits (user_id, store_id, amount_spent, points_earned, claim_id, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+visitColumns,
		userID, storeID, amountSpent, pointsEarned, claimID, recordedBy)
	v, err := scanVisit(row)
	if err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}
	return v, nil
}

func (r *Visits) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.Visit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+visitColumns+` FROM visits WHERE store_id = $1 ORDER BY visited_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visits by store: %w", err)
	}
	defer rows.Close()
	return collectVisits(rows)
}

func (r *Visits) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Visit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+visitColumns+` FROM visits WHERE user_id = $1 ORDER BY visited_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visits by user: %w", err)
	}
	defer rows.Close()
	return collectVisits(rows)
}

func scanVisit(row pgx.Row) (*domain.Visit, error) {
	var v domain.Visit
	err := row.Scan(&v.ID, &v.UserID, &v.StoreID, &v.AmountSpent, &v.PointsEarned,
		&v.ClaimID, &v.RecordedBy, &v.VisitedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVisits(rows pgx.Rows) ([]*domain.Visit, error) {
	var visits []*domain.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
