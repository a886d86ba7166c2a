package domain

import (
	"time"

	"github.com/google/uuid"
)

type RedemptionStatus string

const (
	RedemptionPending RedemptionStatus = "pending"
	RedemptionUsed    RedemptionStatus = "used"
)

// RedemptionCode is a one-time 8-digit token minted from a points
// conversion. Codes transition pending -> used exactly once and are never
// deleted.
type RedemptionCode struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	StoreID        uuid.UUID
	Code           string
	PointsUsed     int64
	RewardValueGBP int64
	Status         RedemptionStatus
	CreatedAt      time.Time
	UsedAt         *time.Time
}

// RedemptionDetails is the staff-facing view returned by Verify, joined
// with the owning customer's public fields.
type RedemptionDetails struct {
	RedemptionCode
	UserName  string
	UserEmail string
}

// ValidCodeFormat reports whether s is exactly 8 ASCII digits. Checked
// before any lookup so malformed input never reaches the database.
func ValidCodeFormat(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
