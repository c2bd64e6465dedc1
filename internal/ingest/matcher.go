package ingest

import (
	"context"
	"sort"

	version "github.com/hashicorp/go-version"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

// Matcher cross-references parsed dependencies against the store's
// affected-products table.
type Matcher struct {
	store *store.Store
}

// NewMatcher creates a Matcher over the given store.
func NewMatcher(s *store.Store) *Matcher {
	return &Matcher{store: s}
}

// Match returns one entry per CVE/product pair hit by the dependencies,
// deduplicated and sorted for stable output. Dependencies without a
// version only match unbounded product rows.
func (m *Matcher) Match(ctx context.Context, deps []models.Dependency) ([]models.ScanMatch, error) {
	seen := make(map[models.ScanMatch]bool)
	var matches []models.ScanMatch

	for _, dep := range deps {
		products, err := m.store.AffectedProducts(ctx, dep.Ecosystem, dep.Name)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			hit, err := inRange(dep.Version, p)
			if err != nil || !hit {
				// Unparseable versions are treated as no-match rather
				// than failing the whole upload.
				continue
			}
			match := models.ScanMatch{CVE: p.CVE, Product: dep.Name}
			if !seen[match] {
				seen[match] = true
				matches = append(matches, match)
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CVE != matches[j].CVE {
			return matches[i].CVE < matches[j].CVE
		}
		return matches[i].Product < matches[j].Product
	})
	return matches, nil
}

// inRange checks a dependency version against one product row's bounds.
// A row with no bounds matches every version.
func inRange(depVersion string, p models.AffectedProduct) (bool, error) {
	unbounded := p.VersionStartIncluding == "" && p.VersionEndIncluding == "" &&
		p.VersionStartExcluding == "" && p.VersionEndExcluding == ""
	if unbounded {
		return true, nil
	}
	if depVersion == "" {
		return false, nil
	}

	v, err := version.NewVersion(depVersion)
	if err != nil {
		return false, err
	}

	check := func(bound string, ok func(cmp int) bool) (bool, error) {
		if bound == "" {
			return true, nil
		}
		b, err := version.NewVersion(bound)
		if err != nil {
			return false, err
		}
		return ok(v.Compare(b)), nil
	}

	for _, c := range []struct {
		bound string
		ok    func(int) bool
	}{
		{p.VersionStartIncluding, func(cmp int) bool { return cmp >= 0 }},
		{p.VersionEndIncluding, func(cmp int) bool { return cmp <= 0 }},
		{p.VersionStartExcluding, func(cmp int) bool { return cmp > 0 }},
		{p.VersionEndExcluding, func(cmp int) bool { return cmp < 0 }},
	} {
		ok, err := check(c.bound, c.ok)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
