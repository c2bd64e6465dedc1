// Package ingest turns uploaded scan-feed manifests into dependencies and
// matches them against the affected-products table.
package ingest

import "github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"

// FeedParser extracts dependencies from one manifest format.
type FeedParser interface {
	// CanParse reports whether this parser handles the given filename.
	CanParse(filename string) bool

	// Parse extracts dependencies from the manifest content.
	Parse(filename string, content []byte) ([]models.Dependency, error)
}

// Parsers returns every supported manifest parser.
func Parsers() []FeedParser {
	return []FeedParser{
		&GoModParser{},
		&RequirementsParser{},
		&PyProjectParser{},
		&PackageJSONParser{},
		&PackageLockParser{},
	}
}

// ParseFeed runs the first parser claiming the filename. A nil slice with
// nil error means no parser recognized the file.
func ParseFeed(filename string, content []byte) ([]models.Dependency, error) {
	for _, p := range Parsers() {
		if p.CanParse(filename) {
			return p.Parse(filename, content)
		}
	}
	return nil, nil
}
