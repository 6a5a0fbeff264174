package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bnpl-risk-lab/internal/config"
	"bnpl-risk-lab/internal/dataset"
	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/features"
	"bnpl-risk-lab/internal/idhash"
	"bnpl-risk-lab/internal/observability"
	"bnpl-risk-lab/internal/reporting"
	chstore "bnpl-risk-lab/internal/storage/clickhouse"
	pgstore "bnpl-risk-lab/internal/storage/postgres"
)

var (
	scoringDateFlag string
	outputDirFlag   string
)

var buildFeaturesCmd = &cobra.Command{
	Use:   "build-features",
	Short: "Build the labeled historical feature table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), domain.CohortHistorical, time.Now().UTC())
	},
}

var buildScoringCmd = &cobra.Command{
	Use:   "build-scoring",
	Short: "Build the unlabeled live feature table for one scoring date",
	RunE: func(cmd *cobra.Command, args []string) error {
		scoringDate, err := resolveScoringDate(scoringDateFlag)
		if err != nil {
			return err
		}
		return runBuild(cmd.Context(), domain.CohortLive, scoringDate)
	},
}

func init() {
	buildScoringCmd.Flags().StringVar(&scoringDateFlag, "date", "", "Scoring date (YYYY-MM-DD, default today)")
	buildFeaturesCmd.Flags().StringVar(&outputDirFlag, "output", "", "Output directory (overrides config)")
	buildScoringCmd.Flags().StringVar(&outputDirFlag, "output", "", "Output directory (overrides config)")
}

// resolveOutputDir picks the output directory, flag over config.
func resolveOutputDir(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

// resolveScoringDate parses the --date flag, defaulting to today UTC.
func resolveScoringDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(domain.AnchorDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --date: %w", err)
	}
	return d, nil
}

// runBuild executes one feature build end to end: snapshot, cohort, rows,
// outputs. Any failure aborts the run; a partial feature file is worse
// than none.
func runBuild(ctx context.Context, c domain.Cohort, scoringDate time.Time) error {
	startedAt := time.Now().UTC()

	snap, cleanup, err := loadSnapshot(ctx, cfg)
	if err != nil {
		observability.RecordBuildRun(string(c), "error", time.Since(startedAt).Seconds())
		return err
	}
	defer cleanup()

	var rows []*domain.FeatureRow
	switch c {
	case domain.CohortHistorical:
		rows, err = features.BuildTraining(snap)
	case domain.CohortLive:
		rows, err = features.BuildScoring(snap, scoringDate)
	default:
		err = fmt.Errorf("unknown cohort %q", c)
	}
	if err != nil {
		observability.RecordBuildRun(string(c), "error", time.Since(startedAt).Seconds())
		observability.RecordContractFailure(string(c))
		return err
	}

	runID := idhash.ComputeRunID(string(c), scoringDate, startedAt)
	for _, r := range rows {
		r.RunID = runID
	}

	outDir := resolveOutputDir(outputDirFlag, cfg.OutputDir)
	if err := writeOutputs(c, runID, startedAt, outDir, rows); err != nil {
		observability.RecordBuildRun(string(c), "error", time.Since(startedAt).Seconds())
		return err
	}

	if cfg.ClickHouseDSN != "" {
		if err := persistRows(ctx, cfg.ClickHouseDSN, rows); err != nil {
			observability.RecordBuildRun(string(c), "error", time.Since(startedAt).Seconds())
			return err
		}
	}

	duration := time.Since(startedAt)
	observability.RecordBuildRun(string(c), "success", duration.Seconds())
	observability.RecordRowsBuilt(string(c), len(rows))
	observability.RecordSuccessfulBuild(string(c), float64(time.Now().Unix()))
	for _, m := range reporting.MissingnessTop(rows, 10) {
		observability.RecordMissingFeature(string(c), m.Feature, m.MissingRatio)
	}

	log.Info().
		Str("run_id", runID).
		Str("cohort", string(c)).
		Int("rows", len(rows)).
		Dur("duration", duration).
		Str("output_dir", outDir).
		Msg("feature build complete")

	return nil
}

// loadSnapshot reads the raw tables, from Postgres when a DSN is
// configured and from flat files otherwise.
func loadSnapshot(ctx context.Context, cfg config.Config) (*dataset.Snapshot, func(), error) {
	start := time.Now()

	if cfg.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		snap, err := dataset.FromStores(ctx, dataset.Stores{
			Users:          pgstore.NewUserStore(pool),
			Merchants:      pgstore.NewMerchantStore(pool),
			Orders:         pgstore.NewOrderStore(pool),
			Installments:   pgstore.NewInstallmentStore(pool),
			Payments:       pgstore.NewPaymentStore(pool),
			Disputes:       pgstore.NewDisputeStore(pool),
			Refunds:        pgstore.NewRefundStore(pool),
			CheckoutEvents: pgstore.NewCheckoutEventStore(pool),
		})
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		observability.RecordSnapshotLoad("postgres", time.Since(start).Seconds())
		recordSnapshotTables(snap)
		return snap, pool.Close, nil
	}

	snap, err := dataset.LoadCSV(cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}

	observability.RecordSnapshotLoad("csv", time.Since(start).Seconds())
	recordSnapshotTables(snap)
	return snap, func() {}, nil
}

func recordSnapshotTables(snap *dataset.Snapshot) {
	observability.RecordSnapshotTable(dataset.TableUsers, len(snap.Users))
	observability.RecordSnapshotTable(dataset.TableMerchants, len(snap.Merchants))
	observability.RecordSnapshotTable(dataset.TableOrders, len(snap.Orders))
	observability.RecordSnapshotTable(dataset.TableInstallments, len(snap.Installments))
	observability.RecordSnapshotTable(dataset.TablePayments, len(snap.Payments))
	observability.RecordSnapshotTable(dataset.TableDisputes, len(snap.Disputes))
	observability.RecordSnapshotTable(dataset.TableRefunds, len(snap.Refunds))
	observability.RecordSnapshotTable(dataset.TableCheckoutEvents, len(snap.CheckoutEvents))
}

// writeOutputs writes the feature CSV, the data contract, the missingness
// summary and the run report for one build.
func writeOutputs(c domain.Cohort, runID string, startedAt time.Time, dir string, rows []*domain.FeatureRow) error {
	var csvName string
	var write func(string, []*domain.FeatureRow) error
	switch c {
	case domain.CohortHistorical:
		csvName = "training_features.csv"
		write = reporting.WriteTrainingCSV
	default:
		csvName = "scoring_features.csv"
		write = reporting.WriteScoringCSV
	}

	if err := write(filepath.Join(dir, csvName), rows); err != nil {
		return err
	}

	contract := reporting.NewDataContract(startedAt)
	if err := reporting.WriteDataContract(filepath.Join(dir, "data_contract.json"), contract); err != nil {
		return err
	}

	if err := reporting.WriteMissingness(filepath.Join(dir, "missingness_top10.json"), reporting.MissingnessTop(rows, 10)); err != nil {
		return err
	}

	report := reporting.NewRunReport(runID, c, startedAt, time.Since(startedAt), rows)
	reportName := fmt.Sprintf("run_report_%s.json", c)
	return reporting.WriteRunReport(filepath.Join(dir, reportName), report)
}

// persistRows writes the build to the gold feature_rows table.
func persistRows(ctx context.Context, dsn string, rows []*domain.FeatureRow) error {
	conn, err := chstore.NewConn(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := chstore.NewFeatureRowStore(conn)
	if err := store.InsertBulk(ctx, rows); err != nil {
		return fmt.Errorf("persist feature rows: %w", err)
	}
	return nil
}
