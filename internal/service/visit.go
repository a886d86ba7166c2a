package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

type VisitService struct {
	db           repository.DB
	stores       *repository.Stores
	memberships  *repository.Memberships
	visits       *repository.Visits
	transactions *repository.Transactions
}

func NewVisitService(db repository.DB) *VisitService {
	return &VisitService{
		db:           db,
		stores:       repository.NewStores(db),
		memberships:  repository.NewMemberships(db),
		visits:       repository.NewVisits(db),
		transactions: repository.NewTransactions(db),
	}
}

// Record logs a member's visit at the counter and credits the store's
// per-visit points in one transaction.
func (s *VisitService) Record(ctx context.Context, userID, storeID uuid.UUID, amountSpent decimal.Decimal, recordedBy uuid.UUID) (*domain.Visit, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, domain.ErrStoreUnavailable
	}
	if !store.Active {
		return nil, domain.ErrStoreUnavailable
	}
	if amountSpent.IsNegative() {
		return nil, fmt.Errorf("amount spent must not be negative")
	}
	if _, err := s.memberships.Get(ctx, userID, storeID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	points := store.PointsPerVisit
	visit, err := s.visits.WithTx(tx).Create(ctx, userID, storeID, amountSpent, points, nil, recordedBy)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberships.WithTx(tx).AdjustBalance(ctx, userID, storeID, points); err != nil {
		return nil, err
	}
	if _, err := s.transactions.WithTx(tx).Create(ctx, userID, storeID, points,
		domain.TxTypeEarn, "Store visit"); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return visit, nil
}

func (s *VisitService) ListByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.Visit, error) {
	return s.visits.ListByStore(ctx, storeID, limit, offset)
}

func (s *VisitService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Visit, error) {
	return s.visits.ListByUser(ctx, userID, limit, offset)
}

// Transactions returns the member's point ledger.
func (s *VisitService) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.PointTransaction, error) {
	return s.transactions.ListByUser(ctx, userID, limit, offset)
}
