package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// NormalizeCVE trims and uppercases a CVE-like query string.
func NormalizeCVE(q string) string {
	return strings.ToUpper(strings.TrimSpace(q))
}

// DetectSearchMode picks the search mode for a query when the caller did
// not specify one: anything shaped like a CVE id searches by id.
func DetectSearchMode(q string) models.SearchMode {
	if strings.HasPrefix(NormalizeCVE(q), "CVE-") {
		return models.SearchModeCVE
	}
	return models.SearchModeKeyword
}

// Search queries CVEs by id substring (mode cve) or by case-insensitive
// substring over id and summary (mode keyword), newest modifications
// first. Empty summaries are substituted with a placeholder.
func (s *Store) Search(ctx context.Context, q string, mode models.SearchMode, limit int) ([]models.SearchItem, error) {
	var rows *sql.Rows
	var err error

	switch mode {
	case models.SearchModeCVE:
		pattern := "%" + NormalizeCVE(q) + "%"
		rows, err = s.db.QueryContext(ctx, `
			SELECT cve_id, COALESCE(NULLIF(summary, ''), '(no summary)')
			FROM cves
			WHERE cve_id LIKE ?
			ORDER BY last_modified DESC
			LIMIT ?`, pattern, limit)
	default:
		pattern := "%" + strings.TrimSpace(q) + "%"
		rows, err = s.db.QueryContext(ctx, `
			SELECT cve_id, COALESCE(NULLIF(summary, ''), '(no summary)')
			FROM cves
			WHERE cve_id LIKE ? OR summary LIKE ?
			ORDER BY last_modified DESC
			LIMIT ?`, pattern, pattern, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var items []models.SearchItem
	for rows.Next() {
		var item models.SearchItem
		if err := rows.Scan(&item.CVE, &item.Summary); err != nil {
			return nil, err
		}
		item.Link = "/cve/" + item.CVE
		items = append(items, item)
	}
	return items, rows.Err()
}
