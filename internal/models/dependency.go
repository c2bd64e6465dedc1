package models

// Ecosystem identifies the package ecosystem a dependency belongs to.
type Ecosystem string

const (
	EcosystemPyPI Ecosystem = "PyPI"
	EcosystemNpm  Ecosystem = "npm"
	EcosystemGo   Ecosystem = "Go"
)

// Dependency is a single package pulled out of an uploaded scan feed.
type Dependency struct {
	Name       string
	Version    string
	Ecosystem  Ecosystem
	SourceFile string
}

// String returns name@version.
func (d Dependency) String() string {
	return d.Name + "@" + d.Version
}

// AffectedProduct is a per-CVE vulnerable product row with an optional
// version range. Empty range fields mean unbounded on that side.
type AffectedProduct struct {
	CVE                   string
	Ecosystem             Ecosystem
	Product               string
	VersionStartIncluding string
	VersionEndIncluding   string
	VersionStartExcluding string
	VersionEndExcluding   string
}

// ScanMatch is one matched CVE/product pair returned for an uploaded feed.
type ScanMatch struct {
	CVE     string `json:"cve"`
	Product string `json:"product"`
}
