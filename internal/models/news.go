package models

import "time"

// NewsArticle is a stored news item. CVEIDs is a soft reference: the ids
// are not foreign-key enforced against the cves table.
type NewsArticle struct {
	ID          int64
	Title       string
	URL         string
	CVEIDs      []string
	Score       float64
	PublishedAt *time.Time
}

// NewsItem is the ranked projection served by the today-news feed.
type NewsItem struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	CVE   string `json:"cve,omitempty"`
	Link  string `json:"link"`
}

// LatestUpdate is one entry of the latest-updates feed.
type LatestUpdate struct {
	CVE     string `json:"cve"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// RankingItem is one entry of the weighted home ranking.
type RankingItem struct {
	Rank     int     `json:"rank"`
	CVE      string  `json:"cve"`
	CVSS     float64 `json:"cvss"`
	EPSS     float64 `json:"epss"`
	KVE      float64 `json:"kve"`
	Activity float64 `json:"activity"`
	Score    float64 `json:"score"`
	Link     string  `json:"link"`
}
