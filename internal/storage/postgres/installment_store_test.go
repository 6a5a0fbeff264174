package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

func TestInstallmentStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewInstallmentStore(pool)
	ctx := context.Background()

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	installments := []*domain.Installment{
		{
			InstallmentID:     "i2",
			OrderID:           "o1",
			UserID:            "u1",
			MerchantID:        "m1",
			InstallmentNumber: 2,
			DueDate:           &due,
			Status:            domain.InstallmentStatusDue,
		},
		{
			InstallmentID:     "i1",
			OrderID:           "o1",
			UserID:            "u1",
			MerchantID:        "m1",
			InstallmentNumber: 1,
			DueDate:           &due,
			PaidDate:          &paid,
			Status:            domain.InstallmentStatusLate,
			LateDays:          ptr(5),
		},
	}

	require.NoError(t, store.InsertBulk(ctx, installments))

	t.Run("GetByUserID ordered with nullables", func(t *testing.T) {
		result, err := store.GetByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, result, 2)

		require.Equal(t, "i1", result[0].InstallmentID)
		require.NotNil(t, result[0].LateDays)
		require.Equal(t, 5, *result[0].LateDays)
		require.NotNil(t, result[0].PaidDate)

		require.Equal(t, "i2", result[1].InstallmentID)
		require.Nil(t, result[1].LateDays)
		require.Nil(t, result[1].PaidDate)
	})

	t.Run("duplicate key", func(t *testing.T) {
		err := store.InsertBulk(ctx, installments[:1])
		require.True(t, errors.Is(err, storage.ErrDuplicateKey), "expected ErrDuplicateKey, got %v", err)
	})

	t.Run("bulk rollback on duplicate", func(t *testing.T) {
		batch := []*domain.Installment{
			{InstallmentID: "i9", OrderID: "o9", UserID: "u9", InstallmentNumber: 1},
			{InstallmentID: "i1", OrderID: "o1", UserID: "u1", InstallmentNumber: 1}, // exists
		}
		err := store.InsertBulk(ctx, batch)
		require.True(t, errors.Is(err, storage.ErrDuplicateKey))

		result, err := store.GetByUserID(ctx, "u9")
		require.NoError(t, err)
		require.Empty(t, result, "i9 should have been rolled back")
	})
}
