package scoring

// Recommendation is one rule-derived action for a CVE.
type Recommendation struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

// Recommend derives actions from a CVE's score signals. A review entry is
// returned when no rule fires so callers always have something to show.
func Recommend(cvss, epss, kve, overall float64) []Recommendation {
	var recs []Recommendation

	if cvss >= 9.0 || overall >= 90.0 {
		recs = append(recs, Recommendation{
			Type:   "urgent_patch",
			Action: "Apply vendor patch immediately (if available).",
		})
	}
	if epss >= 0.5 {
		recs = append(recs, Recommendation{
			Type:   "monitoring",
			Action: "Deploy IDS/WAF signatures and block known IoCs/PoCs.",
		})
	}
	if kve >= 8.0 {
		recs = append(recs, Recommendation{
			Type:   "mitigation",
			Action: "Disable vulnerable features and restrict exposure surface.",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Type:   "review",
			Action: "Track vendor advisories and schedule regular updates.",
		})
	}
	return recs
}
