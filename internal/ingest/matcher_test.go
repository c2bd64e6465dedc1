package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return st
}

func seedProduct(t *testing.T, st *store.Store, p models.AffectedProduct) {
	t.Helper()
	ctx := context.Background()
	if err := st.UpsertCVE(ctx, models.CVERecord{ID: p.CVE}); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertAffectedProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
}

func TestMatcherVersionBounds(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, models.AffectedProduct{
		CVE:                   "CVE-2025-0001",
		Ecosystem:             models.EcosystemPyPI,
		Product:               "vulnlib",
		VersionStartIncluding: "1.0.0",
		VersionEndExcluding:   "2.0.0",
	})
	m := NewMatcher(st)

	tests := []struct {
		version string
		hit     bool
	}{
		{"1.0.0", true},
		{"1.5.3", true},
		{"1.9.9", true},
		{"0.9.9", false},
		{"2.0.0", false},
		{"2.1.0", false},
		{"", false},
		{"not-a-version", false},
	}

	for _, tt := range tests {
		matches, err := m.Match(context.Background(), []models.Dependency{{
			Name:      "vulnlib",
			Version:   tt.version,
			Ecosystem: models.EcosystemPyPI,
		}})
		if err != nil {
			t.Fatalf("Match(%q): %v", tt.version, err)
		}
		if got := len(matches) == 1; got != tt.hit {
			t.Errorf("version %q: hit = %v, want %v", tt.version, got, tt.hit)
		}
	}
}

func TestMatcherUnboundedRow(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, models.AffectedProduct{
		CVE:       "CVE-2025-0002",
		Ecosystem: models.EcosystemNpm,
		Product:   "anyversion",
	})
	m := NewMatcher(st)

	for _, version := range []string{"0.0.1", "99.0.0", ""} {
		matches, err := m.Match(context.Background(), []models.Dependency{{
			Name:      "anyversion",
			Version:   version,
			Ecosystem: models.EcosystemNpm,
		}})
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("version %q should match an unbounded row", version)
		}
	}
}

func TestMatcherExcludingStartBound(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, models.AffectedProduct{
		CVE:                   "CVE-2025-0003",
		Ecosystem:             models.EcosystemGo,
		Product:               "github.com/example/lib",
		VersionStartExcluding: "1.0.0",
		VersionEndIncluding:   "1.4.0",
	})
	m := NewMatcher(st)

	tests := []struct {
		version string
		hit     bool
	}{
		{"1.0.0", false},
		{"1.0.1", true},
		{"1.4.0", true},
		{"1.4.1", false},
	}
	for _, tt := range tests {
		matches, err := m.Match(context.Background(), []models.Dependency{{
			Name:      "github.com/example/lib",
			Version:   tt.version,
			Ecosystem: models.EcosystemGo,
		}})
		if err != nil {
			t.Fatal(err)
		}
		if got := len(matches) == 1; got != tt.hit {
			t.Errorf("version %q: hit = %v, want %v", tt.version, got, tt.hit)
		}
	}
}

func TestMatcherDeduplicatesAndSorts(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, models.AffectedProduct{
		CVE:       "CVE-2025-0002",
		Ecosystem: models.EcosystemPyPI,
		Product:   "bbb",
	})
	seedProduct(t, st, models.AffectedProduct{
		CVE:       "CVE-2025-0001",
		Ecosystem: models.EcosystemPyPI,
		Product:   "aaa",
	})
	m := NewMatcher(st)

	// The same dependency appears twice (e.g. from two manifests).
	deps := []models.Dependency{
		{Name: "bbb", Version: "1.0.0", Ecosystem: models.EcosystemPyPI},
		{Name: "aaa", Version: "1.0.0", Ecosystem: models.EcosystemPyPI},
		{Name: "bbb", Version: "1.0.0", Ecosystem: models.EcosystemPyPI},
	}

	matches, err := m.Match(context.Background(), deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %+v", matches)
	}
	if matches[0].CVE != "CVE-2025-0001" || matches[1].CVE != "CVE-2025-0002" {
		t.Errorf("not sorted: %+v", matches)
	}
}

func TestMatcherEcosystemIsolation(t *testing.T) {
	st := newTestStore(t)
	seedProduct(t, st, models.AffectedProduct{
		CVE:       "CVE-2025-0001",
		Ecosystem: models.EcosystemPyPI,
		Product:   "shared-name",
	})
	m := NewMatcher(st)

	matches, err := m.Match(context.Background(), []models.Dependency{{
		Name:      "shared-name",
		Version:   "1.0.0",
		Ecosystem: models.EcosystemNpm,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("npm dependency matched a PyPI product: %+v", matches)
	}
}
