package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// UpsertNews inserts or replaces a news article keyed by URL.
func (s *Store) UpsertNews(ctx context.Context, a models.NewsArticle) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO news_articles (title, url, cve_ids, score, published_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Title, a.URL, strings.Join(a.CVEIDs, ","), a.Score, utcOrNil(a.PublishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert article %s: %w", a.URL, err)
	}
	return nil
}

// TodayNews returns the articles published on now's calendar day, ranked
// by relevance score then recency. Only the first referenced CVE id is
// surfaced per item.
func (s *Store) TodayNews(ctx context.Context, now time.Time, limit int) ([]models.NewsItem, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, COALESCE(cve_ids, '')
		FROM news_articles
		WHERE published_at >= ? AND published_at < ?
		ORDER BY score DESC, published_at DESC
		LIMIT ?`, dayStart.UTC(), dayEnd.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("today-news query failed: %w", err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		var title, url, cveIDs string
		if err := rows.Scan(&title, &url, &cveIDs); err != nil {
			return nil, err
		}
		item := models.NewsItem{
			Rank:  len(items) + 1,
			Title: title,
			Link:  url,
		}
		if ids := strings.Split(cveIDs, ","); len(ids) > 0 && ids[0] != "" {
			item.CVE = ids[0]
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LatestUpdates returns the most recently modified PUBLISHED CVEs.
func (s *Store) LatestUpdates(ctx context.Context, limit int) ([]models.LatestUpdate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cve_id, COALESCE(NULLIF(summary, ''), '(no summary)')
		FROM cves
		WHERE COALESCE(state, 'PUBLISHED') = 'PUBLISHED'
		ORDER BY last_modified DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("latest-updates query failed: %w", err)
	}
	defer rows.Close()

	var items []models.LatestUpdate
	for rows.Next() {
		var item models.LatestUpdate
		if err := rows.Scan(&item.CVE, &item.Summary); err != nil {
			return nil, err
		}
		item.Link = "/cve/" + item.CVE
		items = append(items, item)
	}
	return items, rows.Err()
}

// Rankings returns CVEs ordered by the weighted total of their score
// facets for the given activity window. The per-facet columns come back
// zero-defaulted; ranks are assigned in result order.
func (s *Store) Rankings(ctx context.Context, window string, limit int) ([]models.RankingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
		  c.cve_id,
		  c.cvss_score,
		  COALESCE(e.epss, c.epss_score),
		  k.kve_score,
		  a.activity_score,
		  (
		    0.60*COALESCE(c.cvss_score, 0) +
		    0.25*COALESCE(COALESCE(e.epss, c.epss_score, 0)*10.0, 0) +
		    0.10*COALESCE(k.kve_score, 0) +
		    0.05*COALESCE(a.activity_score, 0)
		  ) AS total
		FROM cves c
		LEFT JOIN epss e ON e.cve_id = c.cve_id
		LEFT JOIN kve k ON k.cve_id = c.cve_id
		LEFT JOIN activity a ON a.cve_id = c.cve_id AND a.time_window = ?
		ORDER BY total DESC, c.last_modified DESC
		LIMIT ?`, window, limit)
	if err != nil {
		return nil, fmt.Errorf("rankings query failed: %w", err)
	}
	defer rows.Close()

	var items []models.RankingItem
	for rows.Next() {
		var cvss, epss, kve, activity sql.NullFloat64
		var item models.RankingItem
		if err := rows.Scan(&item.CVE, &cvss, &epss, &kve, &activity, &item.Score); err != nil {
			return nil, err
		}
		item.Rank = len(items) + 1
		item.CVSS = cvss.Float64
		item.EPSS = epss.Float64
		item.KVE = kve.Float64
		item.Activity = activity.Float64
		item.Link = "/cve/" + item.CVE
		items = append(items, item)
	}
	return items, rows.Err()
}
