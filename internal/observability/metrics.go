// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Build metrics
	BuildRunsTotal   *prometheus.CounterVec
	BuildDuration    *prometheus.HistogramVec
	RowsBuilt        *prometheus.CounterVec
	CohortSize       *prometheus.GaugeVec
	MissingFeatures  *prometheus.GaugeVec
	ContractFailures *prometheus.CounterVec

	// Snapshot metrics
	SnapshotLoadDuration *prometheus.HistogramVec
	SnapshotTableRows    *prometheus.GaugeVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulBuild *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "bnpl_risk_lab"
	}

	return &Metrics{
		// Build metrics
		BuildRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "runs_total",
			Help:      "Total number of feature build runs by cohort and status",
		}, []string{"cohort", "status"}),
		BuildDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "duration_seconds",
			Help:      "Feature build duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}, []string{"cohort"}),
		RowsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "rows_built_total",
			Help:      "Total number of feature rows built by cohort",
		}, []string{"cohort"}),
		CohortSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "cohort_size",
			Help:      "Number of rows in the most recent build by cohort",
		}, []string{"cohort"}),
		MissingFeatures: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "missing_feature_ratio",
			Help:      "Share of rows missing a feature in the most recent build",
		}, []string{"cohort", "feature"}),
		ContractFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "contract_failures_total",
			Help:      "Total number of output contract validation failures by cohort",
		}, []string{"cohort"}),

		// Snapshot metrics
		SnapshotLoadDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "load_duration_seconds",
			Help:      "Snapshot load duration in seconds by source",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		SnapshotTableRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "table_rows",
			Help:      "Number of rows loaded per raw table in the most recent snapshot",
		}, []string{"table"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulBuild: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_build_timestamp",
			Help:      "Unix timestamp of the last successful build by cohort",
		}, []string{"cohort"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordBuildRun records one feature build run.
func RecordBuildRun(cohort, status string, durationSeconds float64) {
	DefaultMetrics.BuildRunsTotal.WithLabelValues(cohort, status).Inc()
	DefaultMetrics.BuildDuration.WithLabelValues(cohort).Observe(durationSeconds)
}

// RecordRowsBuilt records the row count of a completed build.
func RecordRowsBuilt(cohort string, rows int) {
	DefaultMetrics.RowsBuilt.WithLabelValues(cohort).Add(float64(rows))
	DefaultMetrics.CohortSize.WithLabelValues(cohort).Set(float64(rows))
}

// RecordMissingFeature records the missing ratio of one feature column.
func RecordMissingFeature(cohort, feature string, ratio float64) {
	DefaultMetrics.MissingFeatures.WithLabelValues(cohort, feature).Set(ratio)
}

// RecordContractFailure records an output contract validation failure.
func RecordContractFailure(cohort string) {
	DefaultMetrics.ContractFailures.WithLabelValues(cohort).Inc()
}

// RecordSnapshotLoad records a snapshot load.
func RecordSnapshotLoad(source string, seconds float64) {
	DefaultMetrics.SnapshotLoadDuration.WithLabelValues(source).Observe(seconds)
}

// RecordSnapshotTable records the row count of one loaded raw table.
func RecordSnapshotTable(table string, rows int) {
	DefaultMetrics.SnapshotTableRows.WithLabelValues(table).Set(float64(rows))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordSuccessfulBuild updates the last successful build timestamp.
func RecordSuccessfulBuild(cohort string, unixSeconds float64) {
	DefaultMetrics.LastSuccessfulBuild.WithLabelValues(cohort).Set(unixSeconds)
}
