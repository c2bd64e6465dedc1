package ingest

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// specPattern matches "name<op>version" requirement lines.
var specPattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*[<>=!~]+\s*([\d.]+\S*)$`)

// namePattern matches a bare package name.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// RequirementsParser parses pip requirements files.
type RequirementsParser struct{}

// CanParse returns true for requirements.txt variants.
func (p *RequirementsParser) CanParse(filename string) bool {
	return filename == "requirements.txt" ||
		strings.HasSuffix(filename, "-requirements.txt") ||
		strings.HasSuffix(filename, "_requirements.txt")
}

// Parse extracts pinned and unpinned requirements. PyPI names are
// case-insensitive, so they are lowercased for matching.
func (p *RequirementsParser) Parse(filename string, content []byte) ([]models.Dependency, error) {
	var deps []models.Dependency
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if idx := strings.Index(line, "#"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}
		line = stripExtras(line)

		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		deps = append(deps, models.Dependency{
			Name:       strings.ToLower(name),
			Version:    version,
			Ecosystem:  models.EcosystemPyPI,
			SourceFile: filename,
		})
	}
	return deps, nil
}

// stripExtras drops bracketed extras like "[security]".
func stripExtras(spec string) string {
	open := strings.Index(spec, "[")
	if open < 0 {
		return spec
	}
	close := strings.Index(spec, "]")
	if close < open {
		return spec
	}
	return strings.TrimSpace(spec[:open] + spec[close+1:])
}

func splitRequirement(line string) (name, version string) {
	if m := specPattern.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	if namePattern.MatchString(line) {
		return line, ""
	}
	return "", ""
}

// PyProjectParser parses pyproject.toml manifests, covering both PEP 621
// and Poetry dependency tables.
type PyProjectParser struct{}

// CanParse returns true for pyproject.toml files.
func (p *PyProjectParser) CanParse(filename string) bool {
	return filename == "pyproject.toml"
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Parse extracts dependencies from pyproject.toml content.
func (p *PyProjectParser) Parse(filename string, content []byte) ([]models.Dependency, error) {
	var proj pyproject
	if err := toml.Unmarshal(content, &proj); err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, spec := range proj.Project.Dependencies {
		if idx := strings.Index(spec, ";"); idx > 0 {
			spec = spec[:idx]
		}
		name, version := splitRequirement(strings.TrimSpace(stripExtras(spec)))
		if name == "" {
			continue
		}
		deps = append(deps, models.Dependency{
			Name:       strings.ToLower(name),
			Version:    version,
			Ecosystem:  models.EcosystemPyPI,
			SourceFile: filename,
		})
	}

	for name, val := range proj.Tool.Poetry.Dependencies {
		if name == "python" {
			continue
		}
		deps = append(deps, models.Dependency{
			Name:       strings.ToLower(name),
			Version:    poetryVersion(val),
			Ecosystem:  models.EcosystemPyPI,
			SourceFile: filename,
		})
	}
	return deps, nil
}

func poetryVersion(val any) string {
	switch v := val.(type) {
	case string:
		return strings.TrimLeft(v, "^~")
	case map[string]any:
		if ver, ok := v["version"].(string); ok {
			return strings.TrimLeft(ver, "^~")
		}
	}
	return ""
}
