package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// UpsertCVE inserts or replaces a CVE record.
func (s *Store) UpsertCVE(ctx context.Context, rec models.CVERecord) error {
	state := rec.State
	if state == "" {
		state = models.StatePublished
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cves
		(cve_id, summary, state, published, last_modified, cvss_score, epss_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Summary, state, utcOrNil(rec.Published), utcOrNil(rec.LastModified),
		rec.CVSSScore, rec.EPSSScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert CVE %s: %w", rec.ID, err)
	}
	return nil
}

// DeleteCVE removes a CVE record; facet rows cascade.
func (s *Store) DeleteCVE(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cves WHERE cve_id = ?`, id)
	return err
}

// UpsertEPSS records an EPSS observation for a CVE.
func (s *Store) UpsertEPSS(ctx context.Context, f models.EPSSFacet) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO epss (cve_id, epss, percentile, as_of)
		VALUES (?, ?, ?, ?)`,
		f.CVE, f.Score, f.Percentile, utcOrNil(f.AsOf),
	)
	return err
}

// UpsertKVE records a KVE score for a CVE.
func (s *Store) UpsertKVE(ctx context.Context, cve string, score float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kve (cve_id, kve_score) VALUES (?, ?)`,
		cve, score,
	)
	return err
}

// UpsertKEV marks a CVE as known-exploited.
func (s *Store) UpsertKEV(ctx context.Context, cve string, dateAdded *time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kev (cve_id, kev_flag, date_added) VALUES (?, 1, ?)`,
		cve, utcOrNil(dateAdded),
	)
	return err
}

// UpsertActivity records a windowed activity score for a CVE.
func (s *Store) UpsertActivity(ctx context.Context, f models.ActivityFacet) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO activity (cve_id, time_window, activity_score, last_seen)
		VALUES (?, ?, ?, ?)`,
		f.CVE, f.Window, f.Score, utcOrNil(f.LastSeen),
	)
	return err
}

// GetBasic returns the identifier and summary of one CVE, or ErrNotFound.
func (s *Store) GetBasic(ctx context.Context, id string) (models.CVERecord, error) {
	var rec models.CVERecord
	var summary sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT cve_id, summary FROM cves WHERE cve_id = ?`, id,
	).Scan(&rec.ID, &summary)
	if err == sql.ErrNoRows {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("failed to load CVE %s: %w", id, err)
	}

	rec.Summary = summary.String
	return rec, nil
}

// GetScores joins all score facets for one CVE, with the activity facet
// filtered by window. Table EPSS wins over the fallback column on the CVE
// row. Absent facets stay nil.
func (s *Store) GetScores(ctx context.Context, id, window string) (models.ScoreBundle, error) {
	var b models.ScoreBundle
	var cvss, epss, kve, activity sql.NullFloat64
	var inKEV int

	err := s.db.QueryRowContext(ctx, `
		SELECT
		  c.cve_id,
		  c.cvss_score,
		  COALESCE(e.epss, c.epss_score),
		  k.kve_score,
		  CASE WHEN kv.cve_id IS NULL THEN 0 ELSE 1 END,
		  a.activity_score
		FROM cves c
		LEFT JOIN epss e ON e.cve_id = c.cve_id
		LEFT JOIN kve k ON k.cve_id = c.cve_id
		LEFT JOIN kev kv ON kv.cve_id = c.cve_id
		LEFT JOIN activity a ON a.cve_id = c.cve_id AND a.time_window = ?
		WHERE c.cve_id = ?
		LIMIT 1`, window, id,
	).Scan(&b.CVE, &cvss, &epss, &kve, &inKEV, &activity)
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	if err != nil {
		return b, fmt.Errorf("failed to load scores for %s: %w", id, err)
	}

	b.CVSS = nullFloat(cvss)
	b.EPSS = nullFloat(epss)
	b.KVE = nullFloat(kve)
	b.InKEV = inKEV == 1
	b.Activity = nullFloat(activity)
	return b, nil
}

// Timeline returns the dated lifecycle events recorded for a CVE, or
// ErrNotFound when the CVE does not exist.
func (s *Store) Timeline(ctx context.Context, id string) ([]models.TimelineEvent, error) {
	var published, modified sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT published, last_modified FROM cves WHERE cve_id = ?`, id,
	).Scan(&published, &modified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline for %s: %w", id, err)
	}

	var events []models.TimelineEvent
	if published.Valid {
		events = append(events, models.TimelineEvent{
			Name: "Published",
			Date: published.Time.UTC().Format(time.RFC3339),
		})
	}
	if modified.Valid {
		events = append(events, models.TimelineEvent{
			Name: "Last Modified",
			Date: modified.Time.UTC().Format(time.RFC3339),
		})
	}
	return events, nil
}

// Related ranks other CVEs by the related-score heuristic. When the
// subject id carries a parseable year, candidates are restricted to that
// year; otherwise the ranking is global. The caller maps raw scores to
// risk levels.
func (s *Store) Related(ctx context.Context, id, window string, limit int) ([]models.RelatedCVE, error) {
	yearFilter := ""
	args := []any{window, id}
	if year := cveYear(id); year != "" {
		yearFilter = "AND c.cve_id LIKE ?"
		args = append(args, "CVE-"+year+"-%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		WITH base AS (
			SELECT
			  c.cve_id,
			  COALESCE(c.cvss_score, 0) AS cvss,
			  COALESCE(e.epss, c.epss_score, 0) AS epss,
			  COALESCE(k.kve_score,
			           CASE WHEN kv.cve_id IS NOT NULL THEN 10.0 ELSE 0.0 END) AS kve,
			  COALESCE(a.activity_score, 0) AS activity
			FROM cves c
			LEFT JOIN epss e ON e.cve_id = c.cve_id
			LEFT JOIN kve k ON k.cve_id = c.cve_id
			LEFT JOIN kev kv ON kv.cve_id = c.cve_id
			LEFT JOIN activity a ON a.cve_id = c.cve_id AND a.time_window = ?
			WHERE c.cve_id <> ?
			%s
		)
		SELECT
		  cve_id,
		  100.0*(0.30*(cvss/10.0) + 0.40*epss + 0.20*(kve/10.0) + 0.10*(activity/10.0)) AS score
		FROM base
		ORDER BY score DESC, cve_id ASC
		LIMIT ?`, yearFilter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load related CVEs: %w", err)
	}
	defer rows.Close()

	var items []models.RelatedCVE
	for rows.Next() {
		var item models.RelatedCVE
		if err := rows.Scan(&item.CVE, &item.Score); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// cveYear extracts the year segment of a CVE identifier, empty when the
// id does not carry one.
func cveYear(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return ""
	}
	year := parts[1]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	if year == "" {
		return ""
	}
	return year
}

// utcOrNil normalizes an optional timestamp to UTC for storage.
func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
