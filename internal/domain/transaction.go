package domain

import (
	"time"

	"github.com/google/uuid"
)

type TxType string

const (
	TxTypeEarn   TxType = "earn"
	TxTypeRedeem TxType = "redeem"
)

// PointTransaction is an append-only ledger entry for a store-scoped
// point balance. Points are negative for redemptions.
type PointTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	StoreID     uuid.UUID
	Points      int64
	TxType      TxType
	Description string
	CreatedAt   time.Time
}
