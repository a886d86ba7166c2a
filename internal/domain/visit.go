package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Visit struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoreID      uuid.UUID
	AmountSpent  decimal.Decimal
	PointsEarned int64
	ClaimID      *uuid.UUID // set when the visit came from an approved claim
	RecordedBy   uuid.UUID
	VisitedAt    time.Time
}
