// Package scoring implements the weighted aggregation of CVE score
// facets and the labels derived from them.
package scoring

import (
	"math"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// Facet weights for the overall score. CVSS dominates; EPSS is rescaled
// from its 0..1 probability onto the 0..10 scale before weighting.
const (
	weightCVSS     = 0.60
	weightEPSS     = 0.25
	weightKVE      = 0.10
	weightActivity = 0.05
)

// Overall computes the weighted combined score for a bundle. Absent
// facets count as zero. The result lives roughly on a 0..10 scale and is
// rounded to two decimals.
func Overall(b models.ScoreBundle) float64 {
	total := weightCVSS*Deref(b.CVSS) +
		weightEPSS*(Deref(b.EPSS)*10.0) +
		weightKVE*Deref(b.KVE) +
		weightActivity*Deref(b.Activity)
	return Round(total, 2)
}

// RelatedScore maps one candidate's facets onto the 0..100 ranking scale
// used by the related-CVEs heuristic.
func RelatedScore(cvss, epss, kve, activity float64) float64 {
	return 100.0 * (0.30*(cvss/10.0) + 0.40*epss + 0.20*(kve/10.0) + 0.10*(activity/10.0))
}

// RiskLevel buckets a 0..100 related score.
func RiskLevel(score float64) string {
	switch {
	case score >= 85:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}

// SeverityBand buckets a CVSS base score into the standard bands.
func SeverityBand(cvss float64) string {
	switch {
	case cvss >= 9.0:
		return "critical"
	case cvss >= 7.0:
		return "high"
	case cvss >= 4.0:
		return "medium"
	default:
		return "low"
	}
}

// Deref returns the facet value, zero when absent.
func Deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
