package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

var (
	flagImportDB  string
	flagImportDir string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import CVE JSON documents into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagImportDB != "" {
			cfg.Server.DBPath = flagImportDB
		}
		if flagImportDir == "" {
			return fmt.Errorf("--dir is required")
		}

		st, err := store.Open(cfg.Server.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		if err := st.Bootstrap(); err != nil {
			return err
		}

		paths, err := filepath.Glob(filepath.Join(flagImportDir, "*.json"))
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no *.json documents under %s", flagImportDir)
		}

		imported := 0
		for _, path := range paths {
			if err := importDocument(cmd.Context(), st, path); err != nil {
				log.WithField("file", filepath.Base(path)).WithError(err).Warn("skipping document")
				continue
			}
			imported++
		}

		log.WithField("imported", imported).WithField("total", len(paths)).Info("import complete")
		if imported == 0 {
			return fmt.Errorf("no documents imported")
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagImportDB, "db", "", "Database path (overrides config)")
	importCmd.Flags().StringVar(&flagImportDir, "dir", "", "Directory of CVE JSON documents")
	rootCmd.AddCommand(importCmd)
}

// cveDocument is the on-disk import shape. Facets are optional; score
// fields appear either nested or as flat fallbacks depending on the
// exporter version that produced the document.
type cveDocument struct {
	CVEID        string   `json:"cve_id"`
	Summary      string   `json:"summary"`
	State        string   `json:"state"`
	Published    string   `json:"published"`
	LastModified string   `json:"last_modified"`
	CVSSScore    *float64 `json:"cvss_score"`
	CVSS         *struct {
		Base float64 `json:"base"`
	} `json:"cvss"`
	EPSS *struct {
		EPSS       float64 `json:"epss"`
		Percentile float64 `json:"percentile"`
		Date       string  `json:"date"`
	} `json:"epss"`
	KVE *float64 `json:"kve"`
	KEV *struct {
		DateAdded string `json:"date_added"`
	} `json:"kev"`
	Activity []struct {
		Window string  `json:"window"`
		Score  float64 `json:"score"`
	} `json:"activity"`
}

func importDocument(ctx context.Context, st *store.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc cveDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if doc.CVEID == "" {
		return fmt.Errorf("document has no cve_id")
	}

	cvss := doc.CVSSScore
	if doc.CVSS != nil {
		cvss = &doc.CVSS.Base
	}

	rec := models.CVERecord{
		ID:           strings.ToUpper(doc.CVEID),
		Summary:      doc.Summary,
		State:        doc.State,
		Published:    parseDocTime(doc.Published),
		LastModified: parseDocTime(doc.LastModified),
		CVSSScore:    cvss,
	}
	if doc.EPSS != nil {
		rec.EPSSScore = &doc.EPSS.EPSS
	}
	if err := st.UpsertCVE(ctx, rec); err != nil {
		return err
	}

	if doc.EPSS != nil {
		err := st.UpsertEPSS(ctx, models.EPSSFacet{
			CVE:        rec.ID,
			Score:      doc.EPSS.EPSS,
			Percentile: doc.EPSS.Percentile,
			AsOf:       parseDocTime(doc.EPSS.Date),
		})
		if err != nil {
			return err
		}
	}
	if doc.KVE != nil {
		if err := st.UpsertKVE(ctx, rec.ID, *doc.KVE); err != nil {
			return err
		}
	}
	if doc.KEV != nil {
		if err := st.UpsertKEV(ctx, rec.ID, parseDocTime(doc.KEV.DateAdded)); err != nil {
			return err
		}
	}
	for _, a := range doc.Activity {
		err := st.UpsertActivity(ctx, models.ActivityFacet{
			CVE:    rec.ID,
			Window: a.Window,
			Score:  a.Score,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// parseDocTime accepts RFC 3339 timestamps and bare dates.
func parseDocTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
