// Package cmd wires the systemboam subcommands.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/config"
)

var flagConfig string

var log = logrus.New()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "systemboam",
	Short: "CVE monitoring dashboard: scoring API, web dashboard, and data tooling",
	Long: `systemboam runs the CVE monitoring service.

Subcommands:
  serve      Run the backend Scoring API over the local database
  dashboard  Run the web dashboard, proxying /api/v1/* to the backend
  bootstrap  Provision the database schema and optional seed data
  import     Bulk-import CVE JSON documents into the database

Configuration is read from an optional TOML file (--config), with
environment variables taking precedence. A .env file in the working
directory is loaded automatically when present.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Debug(".env file not found, relying on process environment")
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to TOML config file")
}

// loadConfig builds the effective configuration and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return cfg, nil
}
