package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

var (
	flagBootstrapDB        string
	flagBootstrapInventory string
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Provision the database schema and optional seed data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagBootstrapDB != "" {
			cfg.Server.DBPath = flagBootstrapDB
		}

		st, err := store.Open(cfg.Server.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		if err := st.Bootstrap(); err != nil {
			return err
		}
		log.WithField("db", cfg.Server.DBPath).Info("schema provisioned")

		if flagBootstrapInventory == "" {
			return nil
		}

		assets, err := loadInventoryFile(flagBootstrapInventory)
		if err != nil {
			return err
		}
		if err := st.SeedInventory(cmd.Context(), assets); err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
		log.WithField("assets", len(assets)).Info("inventory seeded")
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().StringVar(&flagBootstrapDB, "db", "", "Database path (overrides config)")
	bootstrapCmd.Flags().StringVar(&flagBootstrapInventory, "inventory", "", "YAML inventory file to seed assets from")
	rootCmd.AddCommand(bootstrapCmd)
}

// loadInventoryFile reads a YAML document of the form:
//
//	assets:
//	  - asset_id: srv-001
//	    hostname: web-prod-01
//	    ...
func loadInventoryFile(path string) ([]models.Asset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var doc struct {
		Assets []models.Asset `yaml:"assets"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inventory YAML: %w", err)
	}
	if len(doc.Assets) == 0 {
		return nil, fmt.Errorf("inventory file %s contains no assets", path)
	}
	return doc.Assets, nil
}
