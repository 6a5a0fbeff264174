package clickhouse

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a ClickHouse container and returns a connection.
// Returns a cleanup function that must be called when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60 * time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	runMigrations(t, conn)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// runMigrations applies all SQL migrations from sql/clickhouse/
func runMigrations(t *testing.T, conn *Conn) {
	t.Helper()
	ctx := context.Background()

	migrations := []string{
		"001_feature_rows.sql",
	}

	basePath := findSQLDir()

	for _, m := range migrations {
		path := basePath + "/" + m
		content, err := os.ReadFile(path)
		if err != nil {
			t.Logf("Could not read migration %s: %v, trying inline migrations", m, err)
			runInlineMigrations(t, conn)
			return
		}

		err = conn.Exec(ctx, string(content))
		require.NoError(t, err, "failed to apply migration %s", m)
	}
}

// findSQLDir attempts to locate the sql/clickhouse directory
func findSQLDir() string {
	paths := []string{
		"../../../sql/clickhouse",
		"../../sql/clickhouse",
		"sql/clickhouse",
		"./sql/clickhouse",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return "../../../sql/clickhouse"
}

// runInlineMigrations applies migrations directly without reading files
func runInlineMigrations(t *testing.T, conn *Conn) {
	t.Helper()
	ctx := context.Background()

	err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS feature_rows (
			row_id                      String,
			run_id                      String,
			cohort                      String,
			installment_id              String,
			order_id                    String,
			user_id                     String,
			merchant_id                 String,
			installment_number          Int64,
			anchor_date                 DateTime,
			account_age_days            Nullable(Float64),
			kyc_level_num               Int64,
			account_status_num          Int64,
			user_trust_score            Float64,
			user_city                   String,
			late_payment_rate_90d       Nullable(Float64),
			avg_late_days_90d           Nullable(Float64),
			max_late_days_90d           Nullable(Float64),
			on_time_payment_rate_90d    Nullable(Float64),
			num_active_plans            Int64,
			repayment_severity_score    Float64,
			load_pressure_score         Float64,
			total_orders_30d            Int64,
			avg_order_amount_30d        Nullable(Float64),
			max_order_amount_30d        Nullable(Float64),
			sum_order_amount_30d        Float64,
			spend_pressure_score        Float64,
			currency                    String,
			dispute_count_90d           Int64,
			refund_count_90d            Int64,
			context_friction_score      Float64,
			checkout_start_30d          Int64,
			checkout_success_30d        Int64,
			checkout_abandon_30d        Int64,
			checkout_abandon_rate_30d   Nullable(Float64),
			checkout_friction_score     Float64,
			merchant_status_num         Int64,
			merchant_dispute_rate_90d   Float64,
			merchant_refund_rate_90d    Float64,
			merchant_risk_score         Float64,
			category                    String,
			city_merchant               String,
			is_late                     Nullable(Int64)
		) ENGINE = MergeTree()
		ORDER BY (cohort, run_id, installment_id)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)
}

// ptr is a helper to create pointers for test values
func ptr[T any](v T) *T {
	return &v
}
