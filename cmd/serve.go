package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/aisummary"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/api"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/config"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

var (
	flagServeAddr string
	flagServeDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend Scoring API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagServeAddr != "" {
			cfg.Server.Addr = flagServeAddr
		}
		if flagServeDB != "" {
			cfg.Server.DBPath = flagServeDB
		}

		st, err := store.Open(cfg.Server.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		// Schema creation is idempotent; serve provisions on startup so
		// a fresh database works without a separate bootstrap run.
		if err := st.Bootstrap(); err != nil {
			return err
		}

		summarizer := aisummary.New(config.OpenAIKey(), cfg.AI.Model)
		server := api.New(st, log, summarizer, cfg.Server.DefaultWindow)

		log.WithField("addr", cfg.Server.Addr).Info("scoring API listening")
		return http.ListenAndServe(cfg.Server.Addr, server.Handler())
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagServeDB, "db", "", "Database path (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
