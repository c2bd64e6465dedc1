package models

import "time"

// LifecycleState values for a CVE record. Records default to published;
// rejected/reserved entries are kept but excluded from home feeds.
const (
	StatePublished = "PUBLISHED"
	StateRejected  = "REJECTED"
	StateReserved  = "RESERVED"
)

// CVERecord is one row of the cves table. Score facets live in their own
// tables; EPSSScore here is only the ingestion-time fallback used when the
// epss table has no row for the CVE yet.
type CVERecord struct {
	ID           string
	Summary      string
	State        string
	Published    *time.Time
	LastModified *time.Time
	CVSSScore    *float64
	EPSSScore    *float64
}

// ScoreBundle carries the raw per-facet signals joined for one CVE and one
// activity window. A nil facet means "not yet computed", which is distinct
// from zero; defaulting happens at the presentation boundary, not here.
type ScoreBundle struct {
	CVE      string
	CVSS     *float64 // base score, 0..10
	EPSS     *float64 // probability, 0..1
	KVE      *float64 // 0..10
	InKEV    bool     // known-exploited flag
	Activity *float64 // 0..10 for the requested window
}

// EPSSFacet is a per-CVE EPSS observation.
type EPSSFacet struct {
	CVE        string
	Score      float64
	Percentile float64
	AsOf       *time.Time
}

// ActivityFacet is a time-windowed activity observation for a CVE.
type ActivityFacet struct {
	CVE      string
	Window   string
	Score    float64
	LastSeen *time.Time
}

// TimelineEvent is one dated lifecycle event for a CVE.
type TimelineEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// RelatedCVE is one entry of the related-CVEs heuristic ranking.
type RelatedCVE struct {
	CVE       string  `json:"cve"`
	RiskLevel string  `json:"risk_level"`
	Score     float64 `json:"score"`
}
