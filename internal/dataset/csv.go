package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"bnpl-risk-lab/internal/domain"
)

// Paths locates the flat-file form of each raw table.
type Paths struct {
	Users          string `yaml:"users"`
	Merchants      string `yaml:"merchants"`
	Orders         string `yaml:"orders"`
	Installments   string `yaml:"installments"`
	Payments       string `yaml:"payments"`
	Disputes       string `yaml:"disputes"`
	Refunds        string `yaml:"refunds"`
	CheckoutEvents string `yaml:"checkout_events"`
}

// LoadCSV reads every raw table from CSV files into one snapshot.
// Date columns are coerced in this single place; a missing required column
// aborts the load with a SchemaError naming it.
func LoadCSV(paths Paths) (*Snapshot, error) {
	snap := &Snapshot{}

	users, err := readTable(TableUsers, paths.Users, []string{"user_id", "signup_date", "kyc_level", "city", "account_status"})
	if err != nil {
		return nil, err
	}
	for _, row := range users.rows {
		snap.Users = append(snap.Users, &domain.User{
			UserID:        users.get(row, "user_id"),
			SignupDate:    parseDate(users.get(row, "signup_date")),
			KYCLevel:      users.get(row, "kyc_level"),
			City:          users.get(row, "city"),
			AccountStatus: users.get(row, "account_status"),
		})
	}

	merchants, err := readTable(TableMerchants, paths.Merchants, []string{"merchant_id", "category", "city", "merchant_status"})
	if err != nil {
		return nil, err
	}
	for _, row := range merchants.rows {
		snap.Merchants = append(snap.Merchants, &domain.Merchant{
			MerchantID:   merchants.get(row, "merchant_id"),
			MerchantName: merchants.get(row, "merchant_name"),
			Category:     merchants.get(row, "category"),
			City:         merchants.get(row, "city"),
			Status:       merchants.get(row, "merchant_status"),
		})
	}

	orders, err := readTable(TableOrders, paths.Orders, []string{"order_id", "user_id", "merchant_id", "amount", "currency", "order_date"})
	if err != nil {
		return nil, err
	}
	for _, row := range orders.rows {
		snap.Orders = append(snap.Orders, &domain.Order{
			OrderID:    orders.get(row, "order_id"),
			UserID:     orders.get(row, "user_id"),
			MerchantID: orders.get(row, "merchant_id"),
			Amount:     parseFloat(orders.get(row, "amount")),
			Currency:   orders.get(row, "currency"),
			OrderDate:  parseDate(orders.get(row, "order_date")),
			Status:     orders.get(row, "status"),
		})
	}

	installments, err := readTable(TableInstallments, paths.Installments,
		[]string{"installment_id", "order_id", "user_id", "merchant_id", "installment_number", "due_date", "paid_date", "status"})
	if err != nil {
		return nil, err
	}
	for _, row := range installments.rows {
		snap.Installments = append(snap.Installments, &domain.Installment{
			InstallmentID:     installments.get(row, "installment_id"),
			OrderID:           installments.get(row, "order_id"),
			UserID:            installments.get(row, "user_id"),
			MerchantID:        installments.get(row, "merchant_id"),
			InstallmentNumber: parseInt(installments.get(row, "installment_number")),
			DueDate:           parseDate(installments.get(row, "due_date")),
			PaidDate:          parseDate(installments.get(row, "paid_date")),
			Status:            installments.get(row, "status"),
			LateDays:          parseIntPtr(installments.get(row, "late_days")),
		})
	}

	payments, err := readTable(TablePayments, paths.Payments, []string{"installment_id", "user_id", "amount", "payment_date"})
	if err != nil {
		return nil, err
	}
	for _, row := range payments.rows {
		snap.Payments = append(snap.Payments, &domain.Payment{
			PaymentID:     payments.get(row, "payment_id"),
			InstallmentID: payments.get(row, "installment_id"),
			UserID:        payments.get(row, "user_id"),
			Amount:        parseFloat(payments.get(row, "amount")),
			PaymentDate:   parseDate(payments.get(row, "payment_date")),
		})
	}

	disputes, err := readTable(TableDisputes, paths.Disputes, []string{"user_id", "merchant_id", "dispute_date"})
	if err != nil {
		return nil, err
	}
	for _, row := range disputes.rows {
		snap.Disputes = append(snap.Disputes, &domain.Dispute{
			DisputeID:   disputes.get(row, "dispute_id"),
			UserID:      disputes.get(row, "user_id"),
			MerchantID:  disputes.get(row, "merchant_id"),
			OrderID:     disputes.get(row, "order_id"),
			Amount:      parseFloat(disputes.get(row, "amount")),
			DisputeDate: parseDate(disputes.get(row, "dispute_date")),
		})
	}

	refunds, err := readTable(TableRefunds, paths.Refunds, []string{"user_id", "merchant_id", "refund_date"})
	if err != nil {
		return nil, err
	}
	for _, row := range refunds.rows {
		snap.Refunds = append(snap.Refunds, &domain.Refund{
			RefundID:   refunds.get(row, "refund_id"),
			UserID:     refunds.get(row, "user_id"),
			MerchantID: refunds.get(row, "merchant_id"),
			OrderID:    refunds.get(row, "order_id"),
			Amount:     parseFloat(refunds.get(row, "amount")),
			RefundDate: parseDate(refunds.get(row, "refund_date")),
		})
	}

	checkout, err := readTable(TableCheckoutEvents, paths.CheckoutEvents, []string{"user_id", "event_type", "event_date"})
	if err != nil {
		return nil, err
	}
	for _, row := range checkout.rows {
		snap.CheckoutEvents = append(snap.CheckoutEvents, &domain.CheckoutEvent{
			EventID:   checkout.get(row, "event_id"),
			UserID:    checkout.get(row, "user_id"),
			OrderID:   checkout.get(row, "order_id"),
			EventType: checkout.get(row, "event_type"),
			EventDate: parseDate(checkout.get(row, "event_date")),
		})
	}

	return snap, nil
}

// table is one parsed CSV file with a header index.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

// readTable parses a CSV file and verifies the required columns exist.
func readTable(name, path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled cell by cell

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read table %s: file has no header row", name)
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[h] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, &SchemaError{Table: name, Column: col}
		}
	}

	return &table{name: name, cols: cols, rows: records[1:]}, nil
}

// get returns the cell for a column, or "" when the column is absent or
// the row is short.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func parseIntPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	i := int(v)
	return &i
}
