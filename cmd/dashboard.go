package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/dashboard"
)

var (
	flagDashAddr    string
	flagDashBackend string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the web dashboard in front of the Scoring API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagDashAddr != "" {
			cfg.Dashboard.Addr = flagDashAddr
		}
		if flagDashBackend != "" {
			cfg.Dashboard.BackendURL = flagDashBackend
		}

		server, err := dashboard.NewServer(
			cfg.Dashboard.BackendURL,
			cfg.Server.DefaultWindow,
			cfg.Dashboard.Timeout.Duration,
			log,
		)
		if err != nil {
			return err
		}

		log.WithField("addr", cfg.Dashboard.Addr).
			WithField("backend", cfg.Dashboard.BackendURL).
			Info("dashboard listening")
		return http.ListenAndServe(cfg.Dashboard.Addr, server.Handler())
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&flagDashAddr, "addr", "", "Listen address (overrides config)")
	dashboardCmd.Flags().StringVar(&flagDashBackend, "backend", "", "Backend base URL (overrides config)")
	rootCmd.AddCommand(dashboardCmd)
}
