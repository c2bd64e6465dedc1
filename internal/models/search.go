package models

// SearchMode selects how a search query is interpreted.
type SearchMode string

const (
	SearchModeCVE     SearchMode = "cve"
	SearchModeKeyword SearchMode = "keyword"
)

// Valid reports whether the mode is one of the two supported values.
func (m SearchMode) Valid() bool {
	return m == SearchModeCVE || m == SearchModeKeyword
}

// SearchItem is one search result projection. Link is a frontend route,
// not a backend URL.
type SearchItem struct {
	CVE     string `json:"cve"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}
