package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/service"
)

const (
	storeCols      = "id, owner_id, name, website_url, conversion_rate, points_per_visit, active, created_at, updated_at"
	membershipCols = "user_id, store_id, points_balance, total_earned, total_redeemed, joined_at, updated_at"
	redemptionCols = "id, user_id, store_id, code, points_used, reward_value_gbp, status, created_at, used_at"
)

func storeRow(mock pgxmock.PgxPoolIface, storeID, ownerID uuid.UUID, rate int64, active bool) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows(splitCols(storeCols)).
		AddRow(storeID, ownerID, "Corner Cafe", "https://corner.example", rate, int64(10), active, now, now)
}

func membershipRow(mock pgxmock.PgxPoolIface, userID, storeID uuid.UUID, balance int64) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows(splitCols(membershipCols)).
		AddRow(userID, storeID, balance, balance, int64(0), now, now)
}

func splitCols(cols string) []string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func TestRedemptionService_Issue(t *testing.T) {
	t.Run("Should convert 250 points at rate 100 into a £2 code leaving 50 points", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		userID := uuid.New()
		storeID := uuid.New()
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM stores WHERE id = \\$1").
			WithArgs(storeID).
			WillReturnRows(storeRow(mock, storeID, uuid.New(), 100, true))

		mock.ExpectBegin()
		mock.ExpectQuery("FROM store_memberships WHERE user_id = \\$1 AND store_id = \\$2 FOR UPDATE").
			WithArgs(userID, storeID).
			WillReturnRows(membershipRow(mock, userID, storeID, 250))
		mock.ExpectQuery("UPDATE store_memberships").
			WithArgs(userID, storeID, int64(-200)).
			WillReturnRows(mock.NewRows([]string{"points_balance"}).AddRow(int64(50)))
		mock.ExpectQuery("INSERT INTO redemption_codes").
			WithArgs(userID, storeID, pgxmock.AnyArg(), int64(200), int64(2)).
			WillReturnRows(mock.NewRows(splitCols(redemptionCols)).
				AddRow(uuid.New(), userID, storeID, "31415926", int64(200), int64(2), domain.RedemptionPending, now, nil))
		mock.ExpectQuery("INSERT INTO point_transactions").
			WithArgs(userID, storeID, int64(-200), domain.TxTypeRedeem, pgxmock.AnyArg()).
			WillReturnRows(mock.NewRows([]string{"id", "user_id", "store_id", "points", "tx_type", "description", "created_at"}).
				AddRow(uuid.New(), userID, storeID, int64(-200), domain.TxTypeRedeem, "Redeemed 200 points for £2 reward", now))
		mock.ExpectCommit()

		svc := service.NewRedemptionService(mock)
		result, err := svc.Issue(context.Background(), userID, storeID)
		require.NoError(t, err)

		assert.Equal(t, "31415926", result.Code)
		assert.Equal(t, int64(2), result.RewardValueGBP)
		assert.Equal(t, int64(200), result.PointsUsed)
		assert.Equal(t, int64(50), result.RemainingBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reject 50 points at rate 100 with InsufficientBalance", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		userID := uuid.New()
		storeID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM stores WHERE id = \\$1").
			WithArgs(storeID).
			WillReturnRows(storeRow(mock, storeID, uuid.New(), 100, true))
		mock.ExpectBegin()
		mock.ExpectQuery("FROM store_memberships WHERE user_id = \\$1 AND store_id = \\$2 FOR UPDATE").
			WithArgs(userID, storeID).
			WillReturnRows(membershipRow(mock, userID, storeID, 50))
		mock.ExpectRollback()

		svc := service.NewRedemptionService(mock)
		_, err = svc.Issue(context.Background(), userID, storeID)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reject an inactive store before touching the balance", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		userID := uuid.New()
		storeID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM stores WHERE id = \\$1").
			WithArgs(storeID).
			WillReturnRows(storeRow(mock, storeID, uuid.New(), 100, false))

		svc := service.NewRedemptionService(mock)
		_, err = svc.Issue(context.Background(), userID, storeID)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should map a missing store to StoreUnavailable", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		storeID := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM stores WHERE id = \\$1").
			WithArgs(storeID).
			WillReturnError(pgx.ErrNoRows)

		svc := service.NewRedemptionService(mock)
		_, err = svc.Issue(context.Background(), uuid.New(), storeID)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestRedemptionService_Verify(t *testing.T) {
	t.Run("Should reject malformed codes before any lookup", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		svc := service.NewRedemptionService(mock)
		for _, code := range []string{"", "1234", "123456789", "abcdefgh"} {
			_, err := svc.Verify(context.Background(), uuid.New(), code)
			assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)
		}
		// No queries expected at all.
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should be idempotent across repeated lookups", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		storeID := uuid.New()
		userID := uuid.New()
		codeID := uuid.New()
		created := time.Now().Add(-time.Hour)

		detailCols := []string{"id", "user_id", "store_id", "code", "points_used", "reward_value_gbp",
			"status", "created_at", "used_at", "name", "email"}
		for i := 0; i < 2; i++ {
			mock.ExpectQuery("FROM redemption_codes r").
				WithArgs(storeID, "87654321").
				WillReturnRows(mock.NewRows(detailCols).
					AddRow(codeID, userID, storeID, "87654321", int64(300), int64(3),
						domain.RedemptionPending, created, nil, "Ada Lovelace", "ada@example.com"))
		}

		svc := service.NewRedemptionService(mock)
		first, err := svc.Verify(context.Background(), storeID, "87654321")
		require.NoError(t, err)
		second, err := svc.Verify(context.Background(), storeID, "87654321")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "Ada Lovelace", first.UserName)
		assert.Equal(t, int64(3), first.RewardValueGBP)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should not find a code under another store's scope", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		otherStore := uuid.New()
		mock.ExpectQuery("FROM redemption_codes r").
			WithArgs(otherStore, "87654321").
			WillReturnError(pgx.ErrNoRows)

		svc := service.NewRedemptionService(mock)
		_, err = svc.Verify(context.Background(), otherStore, "87654321")
		assert.ErrorIs(t, err, domain.ErrCodeNotFound)
	})
}

func TestRedemptionService_Use(t *testing.T) {
	t.Run("Should consume a pending code once", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		storeID := uuid.New()
		mock.ExpectExec("UPDATE redemption_codes").
			WithArgs(storeID, "11112222").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		svc := service.NewRedemptionService(mock)
		assert.NoError(t, svc.Use(context.Background(), storeID, "11112222"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report AlreadyUsed when the conditional update matches nothing but the code exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		storeID := uuid.New()
		usedAt := time.Now()

		mock.ExpectExec("UPDATE redemption_codes").
			WithArgs(storeID, "11112222").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("FROM redemption_codes WHERE store_id = \\$1 AND code = \\$2").
			WithArgs(storeID, "11112222").
			WillReturnRows(mock.NewRows(splitCols(redemptionCols)).
				AddRow(uuid.New(), uuid.New(), storeID, "11112222", int64(100), int64(1),
					domain.RedemptionUsed, time.Now().Add(-time.Hour), &usedAt))

		svc := service.NewRedemptionService(mock)
		err = svc.Use(context.Background(), storeID, "11112222")
		assert.ErrorIs(t, err, domain.ErrCodeAlreadyUsed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report NotFound for a code issued at another store", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		otherStore := uuid.New()
		mock.ExpectExec("UPDATE redemption_codes").
			WithArgs(otherStore, "11112222").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("FROM redemption_codes WHERE store_id = \\$1 AND code = \\$2").
			WithArgs(otherStore, "11112222").
			WillReturnError(pgx.ErrNoRows)

		svc := service.NewRedemptionService(mock)
		err = svc.Use(context.Background(), otherStore, "11112222")
		assert.ErrorIs(t, err, domain.ErrCodeNotFound)
	})

	t.Run("Should reject malformed codes locally", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		svc := service.NewRedemptionService(mock)
		err = svc.Use(context.Background(), uuid.New(), "not-a-code")
		assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
