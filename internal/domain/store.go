package domain

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	WebsiteURL     string
	ConversionRate int64 // points per £1 of reward
	PointsPerVisit int64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StoreMembership is a user's store-scoped loyalty account.
type StoreMembership struct {
	UserID        uuid.UUID
	StoreID       uuid.UUID
	PointsBalance int64
	TotalEarned   int64
	TotalRedeemed int64
	JoinedAt      time.Time
	UpdatedAt     time.Time
}
