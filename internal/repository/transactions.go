package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type Transactions struct {
	db DB
}

func NewTransactions(db DB) *Transactions {
	return &Transactions{db: db}
}

func (r *Transactions) WithTx(tx pgx.Tx) *Transactions {
	return &Transactions{db: tx}
}

const transactionColumns = "id, user_id, store_id, points, tx_type, description, created_at"

func (r *Transactions) Create(ctx context.Context, userID, storeID uuid.UUID, points int64, txType domain.TxType, description string) (*domain.PointTransaction, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO point_transactions (user_id, store_id, points, tx_type, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+transactionColumns,
		userID, storeID, points, txType, description)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (r *Transactions) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.PointTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM point_transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.PointTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.PointTransaction, error) {
	var t domain.PointTransaction
	err := row.Scan(&t.ID, &t.UserID, &t.StoreID, &t.Points, &t.TxType, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
