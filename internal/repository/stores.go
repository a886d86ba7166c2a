package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Stores struct {
	db DB
}

func NewStores(db DB) *Stores {
	return &Stores{db: db}
}

func (r *Stores) WithTx(tx pgx.Tx) *Stores {
	return &Stores{db: tx}
}

const storeColumns = "id, owner_id, name, website_url, conversion_rate, points_per_visit, active, created_at, updated_at"

func (r *Stores) Create(ctx context.Context, ownerID uuid.UUID, name, websiteURL string, conversionRate, pointsPerVisit int64) (*domain.Store, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO stores (owner_id, name, website_url, conversion_rate, points_per_visit)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+storeColumns,
		ownerID, name, websiteURL, conversionRate, pointsPerVisit)
	s, err := scanStore(row)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return s, nil
}

func (r *Stores) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	row := r.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	s, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

func (r *Stores) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Store, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get stores by owner: %w", err)
	}
	defer rows.Close()
	return collectStores(rows)
}

func (r *Stores) List(ctx context.Context, limit, offset int) ([]*domain.Store, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+storeColumns+` FROM stores ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	return collectStores(rows)
}

// UpdateSettings changes the per-store loyalty parameters and active flag.
func (r *Stores) UpdateSettings(ctx context.Context, id uuid.UUID, conversionRate, pointsPerVisit int64, active bool) (*domain.Store, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE stores
		 SET conversion_rate = $2, points_per_visit = $3, active = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+storeColumns,
		id, conversionRate, pointsPerVisit, active)
	s, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("update store settings: %w", err)
	}
	return s, nil
}

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.WebsiteURL, &s.ConversionRate,
		&s.PointsPerVisit, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectStores(rows pgx.Rows) ([]*domain.Store, error) {
	var stores []*domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
