package ingest

import (
	"encoding/json"
	"strings"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// PackageJSONParser parses package.json manifests (declared dependencies
// only).
type PackageJSONParser struct{}

// CanParse returns true for package.json files.
func (p *PackageJSONParser) CanParse(filename string) bool {
	return filename == "package.json"
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Parse extracts production and dev dependencies.
func (p *PackageJSONParser) Parse(filename string, content []byte) ([]models.Dependency, error) {
	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, table := range []map[string]string{pkg.Dependencies, pkg.DevDependencies} {
		for name, version := range table {
			deps = append(deps, models.Dependency{
				Name:       name,
				Version:    cleanNpmVersion(version),
				Ecosystem:  models.EcosystemNpm,
				SourceFile: filename,
			})
		}
	}
	return deps, nil
}

// PackageLockParser parses package-lock.json (v2/v3 packages map) for the
// resolved dependency closure.
type PackageLockParser struct{}

// CanParse returns true for package-lock.json files.
func (p *PackageLockParser) CanParse(filename string) bool {
	return filename == "package-lock.json"
}

type packageLock struct {
	Packages map[string]struct {
		Version string `json:"version"`
	} `json:"packages"`
}

// Parse extracts resolved packages, deduplicated by name@version.
func (p *PackageLockParser) Parse(filename string, content []byte) ([]models.Dependency, error) {
	var lock packageLock
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, err
	}

	var deps []models.Dependency
	seen := make(map[string]bool)
	for path, pkg := range lock.Packages {
		if path == "" {
			continue
		}
		name := path
		if idx := strings.LastIndex(path, "node_modules/"); idx >= 0 {
			name = path[idx+len("node_modules/"):]
		}
		key := name + "@" + pkg.Version
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		deps = append(deps, models.Dependency{
			Name:       name,
			Version:    pkg.Version,
			Ecosystem:  models.EcosystemNpm,
			SourceFile: filename,
		})
	}
	return deps, nil
}

func cleanNpmVersion(version string) string {
	for _, prefix := range []string{"^", "~", ">=", ">", "<=", "<", "="} {
		version = strings.TrimPrefix(version, prefix)
	}
	return version
}
