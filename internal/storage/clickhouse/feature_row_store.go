package clickhouse

import (
	"context"
	"fmt"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/storage"
)

// FeatureRowStore implements storage.FeatureRowStore using ClickHouse.
// MergeTree does not enforce uniqueness at insert time, so duplicate row
// ids are rejected with explicit checks before the batch is sent.
type FeatureRowStore struct {
	conn *Conn
}

// NewFeatureRowStore creates a new FeatureRowStore.
func NewFeatureRowStore(conn *Conn) *FeatureRowStore {
	return &FeatureRowStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureRowStore = (*FeatureRowStore)(nil)

const featureRowColumns = `
	row_id, run_id, cohort,
	installment_id, order_id, user_id, merchant_id, installment_number, anchor_date,
	account_age_days, kyc_level_num, account_status_num, user_trust_score, user_city,
	late_payment_rate_90d, avg_late_days_90d, max_late_days_90d, on_time_payment_rate_90d,
	num_active_plans, repayment_severity_score, load_pressure_score,
	total_orders_30d, avg_order_amount_30d, max_order_amount_30d, sum_order_amount_30d,
	spend_pressure_score, currency,
	dispute_count_90d, refund_count_90d, context_friction_score,
	checkout_start_30d, checkout_success_30d, checkout_abandon_30d,
	checkout_abandon_rate_30d, checkout_friction_score,
	merchant_status_num, merchant_dispute_rate_90d, merchant_refund_rate_90d,
	merchant_risk_score, category, city_merchant,
	is_late
`

// InsertBulk adds multiple feature rows. Fails entire batch on duplicate row_id.
func (s *FeatureRowStore) InsertBulk(ctx context.Context, rows []*domain.FeatureRow) (err error) {
	defer observeQuery("feature_rows.insert_bulk", time.Now(), &err)

	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.RowID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[r.RowID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[r.RowID] = struct{}{}
	}

	for _, r := range rows {
		exists, err := s.exists(ctx, r.RowID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO feature_rows ("+featureRowColumns+")")
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		// Pass nil values directly for Nullable columns
		err = batch.Append(
			r.RowID, r.RunID, string(r.Cohort),
			r.InstallmentID, r.OrderID, r.UserID, r.MerchantID, int64(r.InstallmentNumber), r.AnchorDate,
			r.AccountAgeDays, int64(r.KYCLevelNum), int64(r.AccountStatusNum), r.UserTrustScore, r.UserCity,
			r.LatePaymentRate90d, r.AvgLateDays90d, r.MaxLateDays90d, r.OnTimePaymentRate90d,
			int64(r.NumActivePlans), r.RepaymentSeverityScore, r.LoadPressureScore,
			int64(r.TotalOrders30d), r.AvgOrderAmount30d, r.MaxOrderAmount30d, r.SumOrderAmount30d,
			r.SpendPressureScore, r.Currency,
			int64(r.DisputeCount90d), int64(r.RefundCount90d), r.ContextFrictionScore,
			int64(r.CheckoutStart30d), int64(r.CheckoutSuccess30d), int64(r.CheckoutAbandon30d),
			r.CheckoutAbandonRate30d, r.CheckoutFrictionScore,
			int64(r.MerchantStatusNum), r.MerchantDisputeRate90d, r.MerchantRefundRate90d,
			r.MerchantRiskScore, r.Category, r.MerchantCity,
			toNullableInt64(r.IsLate),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all rows produced by one build, ordered by installment_id ASC.
func (s *FeatureRowStore) GetByRunID(ctx context.Context, runID string) (_ []*domain.FeatureRow, err error) {
	defer observeQuery("feature_rows.get_by_run_id", time.Now(), &err)

	query := "SELECT " + featureRowColumns + `
		FROM feature_rows
		WHERE run_id = ?
		ORDER BY installment_id ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// GetByCohort retrieves all rows of one cohort, ordered by installment_id ASC.
func (s *FeatureRowStore) GetByCohort(ctx context.Context, c domain.Cohort) (_ []*domain.FeatureRow, err error) {
	defer observeQuery("feature_rows.get_by_cohort", time.Now(), &err)

	query := "SELECT " + featureRowColumns + `
		FROM feature_rows
		WHERE cohort = ?
		ORDER BY installment_id ASC
	`

	rows, err := s.conn.Query(ctx, query, string(c))
	if err != nil {
		return nil, fmt.Errorf("query by cohort: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// exists checks if a row with the given row_id exists.
func (s *FeatureRowStore) exists(ctx context.Context, rowID string) (bool, error) {
	query := `SELECT count(*) FROM feature_rows WHERE row_id = ?`

	var count uint64
	err := s.conn.QueryRow(ctx, query, rowID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// toNullableInt64 converts *int to *int64 for ClickHouse Nullable(Int64).
func toNullableInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanFeatureRows scans multiple rows into a slice of FeatureRow.
func scanFeatureRows(rows chRows) ([]*domain.FeatureRow, error) {
	var result []*domain.FeatureRow

	for rows.Next() {
		var r domain.FeatureRow
		var cohort string
		var installmentNumber, kycLevelNum, accountStatusNum, numActivePlans int64
		var totalOrders, disputeCount, refundCount int64
		var checkoutStart, checkoutSuccess, checkoutAbandon, merchantStatusNum int64
		var isLate *int64

		err := rows.Scan(
			&r.RowID, &r.RunID, &cohort,
			&r.InstallmentID, &r.OrderID, &r.UserID, &r.MerchantID, &installmentNumber, &r.AnchorDate,
			&r.AccountAgeDays, &kycLevelNum, &accountStatusNum, &r.UserTrustScore, &r.UserCity,
			&r.LatePaymentRate90d, &r.AvgLateDays90d, &r.MaxLateDays90d, &r.OnTimePaymentRate90d,
			&numActivePlans, &r.RepaymentSeverityScore, &r.LoadPressureScore,
			&totalOrders, &r.AvgOrderAmount30d, &r.MaxOrderAmount30d, &r.SumOrderAmount30d,
			&r.SpendPressureScore, &r.Currency,
			&disputeCount, &refundCount, &r.ContextFrictionScore,
			&checkoutStart, &checkoutSuccess, &checkoutAbandon,
			&r.CheckoutAbandonRate30d, &r.CheckoutFrictionScore,
			&merchantStatusNum, &r.MerchantDisputeRate90d, &r.MerchantRefundRate90d,
			&r.MerchantRiskScore, &r.Category, &r.MerchantCity,
			&isLate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}

		r.Cohort = domain.Cohort(cohort)
		r.InstallmentNumber = int(installmentNumber)
		r.KYCLevelNum = int(kycLevelNum)
		r.AccountStatusNum = int(accountStatusNum)
		r.NumActivePlans = int(numActivePlans)
		r.TotalOrders30d = int(totalOrders)
		r.DisputeCount90d = int(disputeCount)
		r.RefundCount90d = int(refundCount)
		r.CheckoutStart30d = int(checkoutStart)
		r.CheckoutSuccess30d = int(checkoutSuccess)
		r.CheckoutAbandon30d = int(checkoutAbandon)
		r.MerchantStatusNum = int(merchantStatusNum)
		if isLate != nil {
			v := int(*isLate)
			r.IsLate = &v
		}

		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}

	return result, nil
}
