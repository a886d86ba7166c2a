package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

// ClaimService runs the visit-approval workflow: a user submits a claim
// for an unrecorded visit, store staff approve or reject it once.
type ClaimService struct {
	db           repository.DB
	claims       *repository.Claims
	stores       *repository.Stores
	memberships  *repository.Memberships
	visits       *repository.Visits
	transactions *repository.Transactions
}

func NewClaimService(db repository.DB) *ClaimService {
	return &ClaimService{
		db:           db,
		claims:       repository.NewClaims(db),
		stores:       repository.NewStores(db),
		memberships:  repository.NewMemberships(db),
		visits:       repository.NewVisits(db),
		transactions: repository.NewTransactions(db),
	}
}

func (s *ClaimService) Submit(ctx context.Context, userID, storeID uuid.UUID, visitedAt time.Time, amountSpent decimal.Decimal) (*domain.RewardClaim, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, domain.ErrStoreUnavailable
	}
	if !store.Active {
		return nil, domain.ErrStoreUnavailable
	}
	if _, err := s.memberships.Get(ctx, userID, storeID); err != nil {
		return nil, err
	}
	if amountSpent.IsNegative() {
		return nil, fmt.Errorf("amount spent must not be negative")
	}
	return s.claims.Create(ctx, userID, storeID, visitedAt, amountSpent)
}

// Approve transitions a pending claim to approved and, in the same
// transaction, records the visit and credits the member's points. The
// pending check is a conditional update, so a claim can only ever be
// reviewed once regardless of concurrent reviewers.
func (s *ClaimService) Approve(ctx context.Context, claimID, storeID, reviewerID uuid.UUID) (*domain.RewardClaim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.StoreID != storeID {
		return nil, domain.ErrClaimNotFound
	}
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	affected, err := s.claims.WithTx(tx).Review(ctx, claimID, storeID, reviewerID, domain.ClaimApproved, "")
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrClaimReviewed
	}

	points := store.PointsPerVisit
	if _, err := s.visits.WithTx(tx).Create(ctx, claim.UserID, storeID, claim.AmountSpent, points, &claimID, reviewerID); err != nil {
		return nil, err
	}
	if _, err := s.memberships.WithTx(tx).AdjustBalance(ctx, claim.UserID, storeID, points); err != nil {
		return nil, err
	}
	if _, err := s.transactions.WithTx(tx).Create(ctx, claim.UserID, storeID, points,
		domain.TxTypeEarn, "Approved visit claim"); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.claims.GetByID(ctx, claimID)
}

// Reject transitions a pending claim to rejected with a reason.
func (s *ClaimService) Reject(ctx context.Context, claimID, storeID, reviewerID uuid.UUID, reason string) (*domain.RewardClaim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.StoreID != storeID {
		return nil, domain.ErrClaimNotFound
	}

	affected, err := s.claims.Review(ctx, claimID, storeID, reviewerID, domain.ClaimRejected, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrClaimReviewed
	}
	return s.claims.GetByID(ctx, claimID)
}

func (s *ClaimService) ListByStore(ctx context.Context, storeID uuid.UUID, status domain.ClaimStatus, limit, offset int) ([]*domain.RewardClaim, error) {
	return s.claims.ListByStore(ctx, storeID, status, limit, offset)
}

func (s *ClaimService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.RewardClaim, error) {
	return s.claims.ListByUser(ctx, userID, limit, offset)
}
