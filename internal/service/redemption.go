package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

// RedemptionService owns the points-to-code lifecycle: Issue converts a
// member's balance into a pending one-time code, Verify is a staff-side
// read, Use consumes a code exactly once.
type RedemptionService struct {
	db           repository.DB
	stores       *repository.Stores
	memberships  *repository.Memberships
	redemptions  *repository.Redemptions
	transactions *repository.Transactions
}

func NewRedemptionService(db repository.DB) *RedemptionService {
	return &RedemptionService{
		db:           db,
		stores:       repository.NewStores(db),
		memberships:  repository.NewMemberships(db),
		redemptions:  repository.NewRedemptions(db),
		transactions: repository.NewTransactions(db),
	}
}

// IssueResult is what the redeeming user gets back.
type IssueResult struct {
	Code             string
	RewardValueGBP   int64
	PointsUsed       int64
	RemainingBalance int64
}

// Issue converts the caller's store-scoped balance into a pending
// redemption code. rewardValue = floor(balance / conversionRate);
// only rewardValue * conversionRate points are consumed, the remainder
// rolls over. The deduction, the code row and the ledger entry commit
// as one transaction with the membership row locked.
func (s *RedemptionService) Issue(ctx context.Context, userID, storeID uuid.UUID) (*IssueResult, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, domain.ErrStoreUnavailable
		}
		return nil, err
	}
	if !store.Active {
		return nil, domain.ErrStoreUnavailable
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	member, err := s.memberships.WithTx(tx).GetForUpdate(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	rewardValue := member.PointsBalance / store.ConversionRate
	if rewardValue < 1 {
		return nil, domain.ErrInsufficientBalance
	}
	pointsUsed := rewardValue * store.ConversionRate

	newBalance, err := s.memberships.WithTx(tx).AdjustBalance(ctx, userID, storeID, -pointsUsed)
	if err != nil {
		return nil, err
	}

	rc, err := s.createWithRetry(ctx, tx, userID, storeID, pointsUsed, rewardValue)
	if err != nil {
		return nil, err
	}

	_, err = s.transactions.WithTx(tx).Create(ctx, userID, storeID, -pointsUsed,
		domain.TxTypeRedeem, fmt.Sprintf("Redeemed %d points for £%d reward", pointsUsed, rewardValue))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &IssueResult{
		Code:             rc.Code,
		RewardValueGBP:   rewardValue,
		PointsUsed:       pointsUsed,
		RemainingBalance: newBalance,
	}, nil
}

// Verify is the staff-side lookup. Read-only and idempotent: repeated
// calls return the same result until a Use occurs. Lookups are scoped
// by store, so a code issued elsewhere is simply not found.
func (s *RedemptionService) Verify(ctx context.Context, storeID uuid.UUID, code string) (*domain.RedemptionDetails, error) {
	if !domain.ValidCodeFormat(code) {
		return nil, domain.ErrInvalidCodeFormat
	}
	return s.redemptions.GetDetails(ctx, storeID, code)
}

// Use consumes a pending code. The pending -> used transition is a
// single conditional update, never a read-then-write pair, so two staff
// terminals scanning the same code cannot both succeed.
func (s *RedemptionService) Use(ctx context.Context, storeID uuid.UUID, code string) error {
	if !domain.ValidCodeFormat(code) {
		return domain.ErrInvalidCodeFormat
	}

	affected, err := s.redemptions.MarkUsed(ctx, storeID, code)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Nothing transitioned: distinguish a missing code from a consumed
	// one for the caller. GetByCode returning a row here means another
	// terminal won the transition.
	if _, err := s.redemptions.GetByCode(ctx, storeID, code); err != nil {
		return err
	}
	return domain.ErrCodeAlreadyUsed
}

// ListByUser returns the caller's own redemption history.
func (s *RedemptionService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.RedemptionCode, error) {
	return s.redemptions.ListByUser(ctx, userID, limit, offset)
}

// ListByStore returns a store's redemption audit trail.
func (s *RedemptionService) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.RedemptionCode, error) {
	return s.redemptions.ListByStore(ctx, storeID, limit, offset)
}

func (s *RedemptionService) createWithRetry(ctx context.Context, tx repository.DB, userID, storeID uuid.UUID, pointsUsed, rewardValue int64) (*domain.RedemptionCode, error) {
	redemptions := repository.NewRedemptions(tx)
	for i := 0; i < config.RedemptionCodeMaxRetries; i++ {
		code, err := generateRedemptionCode()
		if err != nil {
			return nil, fmt.Errorf("generate redemption code: %w", err)
		}
		rc, err := redemptions.Create(ctx, userID, storeID, code, pointsUsed, rewardValue)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateCode) {
				continue
			}
			return nil, err
		}
		return rc, nil
	}
	return nil, fmt.Errorf("exhausted %d attempts generating a unique code", config.RedemptionCodeMaxRetries)
}

const redemptionCodeCharset = "0123456789"

func generateRedemptionCode() (string, error) {
	code := make([]byte, config.RedemptionCodeLen)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(redemptionCodeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = redemptionCodeCharset[n.Int64()]
	}
	return string(code), nil
}
