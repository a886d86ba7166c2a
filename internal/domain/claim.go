package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// RewardClaim is a user's request to have an unrecorded store visit
// credited. Reviewed at most once by store staff.
type RewardClaim struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoreID      uuid.UUID
	VisitedAt    time.Time
	AmountSpent  decimal.Decimal
	Status       ClaimStatus
	ReviewedBy   *uuid.UUID
	ReviewReason string
	CreatedAt    time.Time
	ReviewedAt   *time.Time
}
