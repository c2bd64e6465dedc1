package ingest

import (
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// GoModParser parses go.mod manifests. Indirect requirements are skipped:
// a scan feed describes what the project declares, not its full closure.
type GoModParser struct{}

// CanParse returns true for go.mod files.
func (p *GoModParser) CanParse(filename string) bool {
	return filename == "go.mod"
}

// Parse extracts direct module requirements.
func (p *GoModParser) Parse(filename string, content []byte) ([]models.Dependency, error) {
	mod, err := modfile.Parse(filename, content, nil)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, req := range mod.Require {
		if req.Indirect {
			continue
		}
		deps = append(deps, models.Dependency{
			Name:       req.Mod.Path,
			Version:    strings.TrimPrefix(req.Mod.Version, "v"),
			Ecosystem:  models.EcosystemGo,
			SourceFile: filename,
		})
	}
	return deps, nil
}
