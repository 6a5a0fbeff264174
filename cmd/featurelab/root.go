package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bnpl-risk-lab/internal/config"
)

var (
	cfgPath string
	verbose bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "featurelab",
	Short:         "Late-payment risk feature builds over the BNPL event tables",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(buildFeaturesCmd)
	rootCmd.AddCommand(buildScoringCmd)
	rootCmd.AddCommand(serveCmd)
}
