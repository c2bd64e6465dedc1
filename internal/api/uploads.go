package api

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/ingest"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/sbom"
)

// maxUploadBytes bounds multipart uploads.
const maxUploadBytes = 32 << 20

type scanFeedResponse struct {
	Results []models.ScanMatch `json:"results"`
}

// handleScanFeed accepts a dependency manifest (go.mod, requirements.txt,
// package.json, package-lock.json, pyproject.toml) and returns the
// CVE/product pairs it matches.
func (s *Server) handleScanFeed(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	deps, err := ingest.ParseFeed(filename, content)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to parse scan feed: "+err.Error())
		return
	}
	if deps == nil {
		writeDetail(w, http.StatusBadRequest, "unsupported scan feed format: "+filename)
		return
	}

	matches, err := s.matcher.Match(r.Context(), deps)
	if err != nil {
		s.log.WithError(err).Error("scan-feed matching failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if matches == nil {
		matches = []models.ScanMatch{}
	}
	writeJSON(w, http.StatusOK, scanFeedResponse{Results: matches})
}

type environmentScanResponse struct {
	ScanID  string `json:"scan_id"`
	Project struct {
		Name              string `json:"name"`
		SPDXID            string `json:"spdx_id"`
		DocumentNamespace string `json:"document_namespace"`
	} `json:"project"`
	Summary struct {
		ComponentCount int `json:"component_count"`
	} `json:"summary"`
	Components []sbom.Component   `json:"components"`
	Matches    []models.ScanMatch `json:"matches"`
}

// handleEnvironmentScan accepts an SPDX JSON manifest, extracts its
// component inventory, and matches components with purl-derived
// ecosystems against the store.
func (s *Server) handleEnvironmentScan(w http.ResponseWriter, r *http.Request) {
	_, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, err := sbom.Parse(content)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	components := doc.Components()
	deps := componentDependencies(components)

	matches, err := s.matcher.Match(r.Context(), deps)
	if err != nil {
		s.log.WithError(err).Error("environment-scan matching failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if matches == nil {
		matches = []models.ScanMatch{}
	}

	resp := environmentScanResponse{
		ScanID:     uuid.NewString(),
		Components: components,
		Matches:    matches,
	}
	resp.Project.Name = doc.Name
	resp.Project.SPDXID = doc.SPDXID
	resp.Project.DocumentNamespace = doc.DocumentNamespace
	resp.Summary.ComponentCount = len(components)
	writeJSON(w, http.StatusOK, resp)
}

// componentDependencies converts matchable SBOM components into
// dependencies; components without a recognized purl ecosystem are kept
// in the response but skipped for matching.
func componentDependencies(components []sbom.Component) []models.Dependency {
	var deps []models.Dependency
	for _, c := range components {
		var eco models.Ecosystem
		switch c.Ecosystem() {
		case "golang":
			eco = models.EcosystemGo
		case "pypi":
			eco = models.EcosystemPyPI
		case "npm":
			eco = models.EcosystemNpm
		default:
			continue
		}
		deps = append(deps, models.Dependency{
			Name:      c.Name,
			Version:   c.Version,
			Ecosystem: eco,
		})
	}
	return deps
}

// readUpload pulls the single multipart file out of the request. It
// writes the error response itself when the upload is unusable.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "expected multipart file upload")
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "missing 'file' form field")
		return "", nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read upload")
		return "", nil, false
	}

	return filepath.Base(header.Filename), content, true
}
