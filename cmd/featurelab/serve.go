package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Rebuild the live scoring table on a schedule and expose metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go startHTTPServer(cfg.MetricsAddr)

	interval := cfg.ScoringInterval.Std()
	log.Info().Dur("interval", interval).Str("addr", cfg.MetricsAddr).Msg("starting scoring scheduler")

	// Run immediately on start
	runScheduledScoring(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return nil
		case <-ticker.C:
			runScheduledScoring(ctx)
		}
	}
}

// runScheduledScoring builds the live cohort anchored at today. A failed
// build is logged and the scheduler keeps going; transient data problems
// should not kill the service.
func runScheduledScoring(ctx context.Context) {
	now := time.Now().UTC()
	scoringDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := runBuild(ctx, domain.CohortLive, scoringDate); err != nil {
		log.Error().Err(err).Msg("scheduled scoring build failed")
	}
}

// startHTTPServer serves health and Prometheus metrics.
func startHTTPServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", observability.Handler())

	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("http server error")
	}
}
