// Package sbom extracts the component inventory from an SPDX JSON
// manifest uploaded by the environment-scan endpoint.
package sbom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the subset of an SPDX manifest this service reads.
type Document struct {
	Name              string    `json:"name"`
	SPDXID            string    `json:"SPDXID"`
	DocumentNamespace string    `json:"documentNamespace"`
	Packages          []Package `json:"packages"`
}

// Package is one SPDX package entry.
type Package struct {
	SPDXID           string        `json:"SPDXID"`
	Name             string        `json:"name"`
	VersionInfo      string        `json:"versionInfo"`
	LicenseDeclared  string        `json:"licenseDeclared"`
	LicenseConcluded string        `json:"licenseConcluded"`
	ExternalRefs     []ExternalRef `json:"externalRefs"`
}

// ExternalRef is one package external reference (purl, CPE).
type ExternalRef struct {
	ReferenceType    string `json:"referenceType"`
	ReferenceLocator string `json:"referenceLocator"`
}

// Component is the minimal per-package view used for CVE matching.
type Component struct {
	SPDXID   string   `json:"spdx_id"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	PURL     string   `json:"purl,omitempty"`
	CPE23    string   `json:"cpe23,omitempty"`
	Licenses Licenses `json:"licenses"`
}

// Licenses carries declared and concluded license expressions.
type Licenses struct {
	Declared  string `json:"declared,omitempty"`
	Concluded string `json:"concluded,omitempty"`
}

// Parse decodes an SPDX JSON manifest.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse SPDX manifest: %w", err)
	}
	if doc.SPDXID == "" && len(doc.Packages) == 0 {
		return nil, fmt.Errorf("not an SPDX manifest")
	}
	return &doc, nil
}

// Components flattens the manifest's packages into components.
func (d *Document) Components() []Component {
	components := make([]Component, 0, len(d.Packages))
	for _, pkg := range d.Packages {
		c := Component{
			SPDXID:  pkg.SPDXID,
			Name:    pkg.Name,
			Version: pkg.VersionInfo,
			Licenses: Licenses{
				Declared:  pkg.LicenseDeclared,
				Concluded: pkg.LicenseConcluded,
			},
		}
		for _, ref := range pkg.ExternalRefs {
			switch ref.ReferenceType {
			case "purl":
				c.PURL = ref.ReferenceLocator
			case "cpe23Type":
				c.CPE23 = ref.ReferenceLocator
			}
		}
		components = append(components, c)
	}
	return components
}

// Ecosystem guesses a component's package ecosystem from its purl, empty
// when unknown.
func (c Component) Ecosystem() string {
	if !strings.HasPrefix(c.PURL, "pkg:") {
		return ""
	}
	rest := strings.TrimPrefix(c.PURL, "pkg:")
	if idx := strings.Index(rest, "/"); idx > 0 {
		return rest[:idx]
	}
	return ""
}
