package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

type StoreService struct {
	db          repository.DB
	stores      *repository.Stores
	memberships *repository.Memberships
	users       *repository.Users
}

func NewStoreService(db repository.DB) *StoreService {
	return &StoreService{
		db:          db,
		stores:      repository.NewStores(db),
		memberships: repository.NewMemberships(db),
		users:       repository.NewUsers(db),
	}
}

// Create registers a new tenant store. The owner is promoted to
// store_admin unless they already hold a higher role.
func (s *StoreService) Create(ctx context.Context, ownerID uuid.UUID, name, websiteURL string, conversionRate, pointsPerVisit int64) (*domain.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	if conversionRate <= 0 {
		conversionRate = config.DefaultConversionRate
	}
	if pointsPerVisit < 0 {
		pointsPerVisit = config.DefaultPointsPerVisit
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	store, err := s.stores.WithTx(tx).Create(ctx, ownerID, name, websiteURL, conversionRate, pointsPerVisit)
	if err != nil {
		return nil, err
	}
	if owner.Role == domain.RoleUser {
		if err := s.users.WithTx(tx).UpdateRole(ctx, ownerID, domain.RoleStoreAdmin); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return store, nil
}

func (s *StoreService) Get(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	return s.stores.GetByID(ctx, id)
}

func (s *StoreService) List(ctx context.Context, limit, offset int) ([]*domain.Store, error) {
	return s.stores.List(ctx, limit, offset)
}

func (s *StoreService) UpdateSettings(ctx context.Context, id uuid.UUID, conversionRate, pointsPerVisit int64, active bool) (*domain.Store, error) {
	if conversionRate <= 0 {
		return nil, fmt.Errorf("conversion rate must be positive")
	}
	if pointsPerVisit < 0 {
		return nil, fmt.Errorf("points per visit must not be negative")
	}
	return s.stores.UpdateSettings(ctx, id, conversionRate, pointsPerVisit, active)
}

// Authorize reports whether actor may manage the given store: the owner
// may, and so may a super admin.
func (s *StoreService) Authorize(ctx context.Context, actor *domain.User, storeID uuid.UUID) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleSuperAdmin || store.OwnerID == actor.ID {
		return store, nil
	}
	return nil, domain.ErrUnauthorized
}

/// Owned lists the stores the actor manages: their own stores, or every
// store for a super admin.
func (s *StoreService) Owned(ctx context.Context, actor *domain.User) ([]*domain.Store, error) {
	if actor.Role == domain.RoleSuperAdmin {
		return s.stores.List(ctx, config.MaxPageSize, 0)
	}
	return s.stores.GetByOwner(ctx, actor.ID)
}

// Join enrolls a user as a member of an active store.
func (s *StoreService) Join(ctx context.Context, userID, storeID uuid.UUID) (*domain.StoreMembership, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, domain.ErrStoreUnavailable
	}
	if !store.Active {
		return nil, domain.ErrStoreUnavailable
	}
	return s.memberships.Create(ctx, userID, storeID)
}

func (s *StoreService) Memberships(ctx context.Context, userID uuid.UUID) ([]*domain.StoreMembership, error) {
	return s.memberships.ListByUser(ctx, userID)
}

func (s *StoreService) Members(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.StoreMembership, error) {
	return s.memberships.ListByStore(ctx, storeID, limit, offset)
}
