package clickhouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

func TestFeatureRowStore_Integration(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewFeatureRowStore(conn)
	ctx := context.Background()

	anchor := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []*domain.FeatureRow{
		{
			RowID:         "r2",
			RunID:         "run-a",
			Cohort:        domain.CohortHistorical,
			InstallmentID: "i2",
			OrderID:       "o1",
			UserID:        "u1",
			MerchantID:    "m1",
			AnchorDate:    anchor,
			IsLate:        ptr(0),
		},
		{
			RowID:              "r1",
			RunID:              "run-a",
			Cohort:             domain.CohortHistorical,
			InstallmentID:      "i1",
			OrderID:            "o1",
			UserID:             "u1",
			MerchantID:         "m1",
			InstallmentNumber:  1,
			AnchorDate:         anchor,
			AccountAgeDays:     ptr(40.0),
			KYCLevelNum:        2,
			UserTrustScore:     2.5,
			UserCity:           "berlin",
			LatePaymentRate90d: ptr(1.0),
			AvgLateDays90d:     ptr(5.0),
			MaxLateDays90d:     ptr(5.0),
			NumActivePlans:     1,
			SumOrderAmount30d:  120.5,
			Currency:           "EUR",
			Category:           "electronics",
			MerchantCity:       "berlin",
			IsLate:             ptr(1),
		},
	}

	require.NoError(t, store.InsertBulk(ctx, rows))

	t.Run("GetByRunID ordered with nullables", func(t *testing.T) {
		result, err := store.GetByRunID(ctx, "run-a")
		require.NoError(t, err)
		require.Len(t, result, 2)

		r := result[0]
		require.Equal(t, "i1", r.InstallmentID)
		require.Equal(t, domain.CohortHistorical, r.Cohort)
		require.NotNil(t, r.AccountAgeDays)
		require.Equal(t, 40.0, *r.AccountAgeDays)
		require.NotNil(t, r.LatePaymentRate90d)
		require.Equal(t, 1.0, *r.LatePaymentRate90d)
		require.Nil(t, r.AvgOrderAmount30d, "empty order window should round-trip as nil")
		require.Equal(t, 120.5, r.SumOrderAmount30d)
		require.NotNil(t, r.IsLate)
		require.Equal(t, 1, *r.IsLate)

		require.Nil(t, result[1].AccountAgeDays)
		require.NotNil(t, result[1].IsLate)
		require.Equal(t, 0, *result[1].IsLate)
	})

	t.Run("GetByCohort", func(t *testing.T) {
		result, err := store.GetByCohort(ctx, domain.CohortHistorical)
		require.NoError(t, err)
		require.Len(t, result, 2)

		result, err = store.GetByCohort(ctx, domain.CohortLive)
		require.NoError(t, err)
		require.Empty(t, result)
	})

	t.Run("duplicate row_id", func(t *testing.T) {
		err := store.InsertBulk(ctx, rows[:1])
		require.True(t, errors.Is(err, storage.ErrDuplicateKey), "expected ErrDuplicateKey, got %v", err)
	})

	t.Run("intra-batch duplicate", func(t *testing.T) {
		batch := []*domain.FeatureRow{
			{RowID: "r9", RunID: "run-b", Cohort: domain.CohortLive, InstallmentID: "i9", AnchorDate: anchor},
			{RowID: "r9", RunID: "run-b", Cohort: domain.CohortLive, InstallmentID: "i9", AnchorDate: anchor},
		}
		err := store.InsertBulk(ctx, batch)
		require.True(t, errors.Is(err, storage.ErrDuplicateKey))
	})

	t.Run("invalid input", func(t *testing.T) {
		err := store.InsertBulk(ctx, []*domain.FeatureRow{{RowID: ""}})
		require.True(t, errors.Is(err, storage.ErrInvalidInput))
	})
}
