package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

func TestInstallmentStore_InsertBulkAndGetByUserID(t *testing.T) {
	store := NewInstallmentStore()
	ctx := context.Background()

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	installments := []*domain.Installment{
		{InstallmentID: "i2", OrderID: "o1", UserID: "u1", InstallmentNumber: 2, DueDate: &due},
		{InstallmentID: "i1", OrderID: "o1", UserID: "u1", InstallmentNumber: 1, DueDate: &due},
		{InstallmentID: "i3", OrderID: "o2", UserID: "u2", InstallmentNumber: 1, DueDate: &due},
	}

	if err := store.InsertBulk(ctx, installments); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 installments for u1, got %d", len(result))
	}

	if result[0].InstallmentID != "i1" || result[1].InstallmentID != "i2" {
		t.Errorf("Results not ordered by installment_id: %s, %s", result[0].InstallmentID, result[1].InstallmentID)
	}
}

func TestInstallmentStore_DuplicateKey(t *testing.T) {
	store := NewInstallmentStore()
	ctx := context.Background()

	installments := []*domain.Installment{
		{InstallmentID: "i1", OrderID: "o1", UserID: "u1", InstallmentNumber: 1},
	}

	if err := store.InsertBulk(ctx, installments); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.InsertBulk(ctx, installments)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestInstallmentStore_CopyOnRead(t *testing.T) {
	store := NewInstallmentStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.Installment{
		{InstallmentID: "i1", OrderID: "o1", UserID: "u1", InstallmentNumber: 1, Status: domain.InstallmentStatusDue},
	}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	first, _ := store.GetAll(ctx)
	first[0].Status = domain.InstallmentStatusPaid

	second, _ := store.GetAll(ctx)
	if second[0].Status != domain.InstallmentStatusDue {
		t.Error("Mutating a returned installment should not affect the store")
	}
}
