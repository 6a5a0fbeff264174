package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testPaths(t *testing.T, dir string) Paths {
	t.Helper()
	return Paths{
		Users:          writeFile(t, dir, "users.csv", "user_id,signup_date,kyc_level,city,account_status\nu1,2023-06-15,full,berlin,active\nu2,not-a-date,none,riga,blocked\n"),
		Merchants:      writeFile(t, dir, "merchants.csv", "merchant_id,merchant_name,category,city,merchant_status\nm1,Shop,electronics,berlin,active\n"),
		Orders:         writeFile(t, dir, "orders.csv", "order_id,user_id,merchant_id,amount,currency,order_date,status\no1,u1,m1,120.5,EUR,2024-02-20,completed\n"),
		Installments:   writeFile(t, dir, "installments.csv", "installment_id,order_id,user_id,merchant_id,installment_number,due_date,paid_date,status,late_days\ni1,o1,u1,m1,1,2024-03-01,2024-03-06,late,5\ni2,o1,u1,m1,2,2024-04-01,,due,\n"),
		Payments:       writeFile(t, dir, "payments.csv", "payment_id,installment_id,user_id,amount,payment_date\np1,i1,u1,60.25,2024-03-06\n"),
		Disputes:       writeFile(t, dir, "disputes.csv", "dispute_id,user_id,merchant_id,order_id,amount,dispute_date\nd1,u1,m1,o1,10,2024-02-25\n"),
		Refunds:        writeFile(t, dir, "refunds.csv", "refund_id,user_id,merchant_id,order_id,amount,refund_date\n"),
		CheckoutEvents: writeFile(t, dir, "checkout_events.csv", "event_id,user_id,order_id,event_type,event_date\ne1,u1,o1,checkout_start,2024-02-20 10:30:00\n"),
	}
}

func TestLoadCSV(t *testing.T) {
	snap, err := LoadCSV(testPaths(t, t.TempDir()))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if len(snap.Users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(snap.Users))
	}
	if snap.Users[0].SignupDate == nil {
		t.Error("u1 signup date should parse")
	}
	if snap.Users[1].SignupDate != nil {
		t.Error("unparseable signup date should coerce to nil")
	}

	if len(snap.Installments) != 2 {
		t.Fatalf("Expected 2 installments, got %d", len(snap.Installments))
	}
	i1 := snap.Installments[0]
	if i1.LateDays == nil || *i1.LateDays != 5 {
		t.Error("i1 late_days should be 5")
	}
	i2 := snap.Installments[1]
	if i2.PaidDate != nil {
		t.Error("i2 paid_date should be nil while unpaid")
	}
	if i2.LateDays != nil {
		t.Error("i2 late_days should be nil when blank")
	}

	if len(snap.Refunds) != 0 {
		t.Errorf("Expected 0 refunds from header-only file, got %d", len(snap.Refunds))
	}

	if snap.Orders[0].Amount != 120.5 {
		t.Errorf("Expected order amount 120.5, got %v", snap.Orders[0].Amount)
	}
	if snap.CheckoutEvents[0].EventDate == nil {
		t.Error("datetime event_date should parse")
	}
}

func TestLoadCSV_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(t, dir)
	paths.Installments = writeFile(t, dir, "bad_installments.csv", "installment_id,order_id,user_id\ni1,o1,u1\n")

	_, err := LoadCSV(paths)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected SchemaError, got %v", err)
	}
	if schemaErr.Table != TableInstallments {
		t.Errorf("Expected table %s, got %s", TableInstallments, schemaErr.Table)
	}
	if schemaErr.Column == "" {
		t.Error("SchemaError should name the missing column")
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	paths := testPaths(t, t.TempDir())
	paths.Users = "/nonexistent/users.csv"

	if _, err := LoadCSV(paths); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
