package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fullBackend adds the home feeds and search on top of the CVE endpoints
// so page rendering can be exercised end to end.
func fullBackendHandler(backend *fakeBackend) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/cve/", backend.handler())

	mux.HandleFunc("GET /api/v1/home/today-news", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"date": "2025-06-15",
			"items": []models.NewsItem{
				{Rank: 1, Title: "exploit campaign observed", CVE: "CVE-2025-0001", Link: "https://news.example/a"},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/home/latest-updates", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []models.LatestUpdate{
				{CVE: "CVE-2025-0001", Summary: "heap overflow", Link: "/cve/CVE-2025-0001"},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/home/rankings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []models.RankingItem{
				{Rank: 1, CVE: "CVE-2025-0001", CVSS: 9.8, Score: 9.41, Link: "/cve/CVE-2025-0001"},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		results := []models.SearchItem{}
		if r.URL.Query().Get("q") == "log4j" {
			results = append(results, models.SearchItem{
				CVE: "CVE-2021-44228", Summary: "Log4j RCE", Link: "/cve/CVE-2021-44228",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})

	return mux
}

func newDashboardServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend()
	backendSrv := httptest.NewServer(fullBackendHandler(backend))
	t.Cleanup(backendSrv.Close)

	srv, err := NewServer(backendSrv.URL, "7d", 5*time.Second, discardLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, backend
}

func TestHomePage(t *testing.T) {
	srv, _ := newDashboardServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"exploit campaign observed",
		"heap overflow",
		"CVE-2025-0001",
		"9.41",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestDetailPage(t *testing.T) {
	srv, backend := newDashboardServer(t)
	backend.addCVE("CVE-2025-0001", "heap overflow in widget parser", 9.41, 9.8)
	backend.setSummary("CVE-2025-0001", "generated risk summary")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cve/CVE-2025-0001", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"CVE-2025-0001",
		"heap overflow in widget parser",
		"generated risk summary",
		"9.41",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("detail page missing %q", want)
		}
	}
}

func TestDetailPageLoadFailure(t *testing.T) {
	srv, _ := newDashboardServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cve/CVE-0000-0000", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ErrLoadFailed.Error()) {
		t.Errorf("error page missing the generic load failure message")
	}
}

func TestSearchResultsPage(t *testing.T) {
	srv, _ := newDashboardServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=log4j&type=keyword", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "CVE-2021-44228") || !strings.Contains(body, "Log4j RCE") {
		t.Errorf("search page missing results: %s", body)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=zzz", nil))
	if !strings.Contains(rec.Body.String(), "No matches") {
		t.Error("empty result page missing the no-matches notice")
	}
}

func TestProxyForwardsAPI(t *testing.T) {
	srv, backend := newDashboardServer(t)
	backend.addCVE("CVE-2025-0001", "proxied", 1.0, 1.0)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cve/CVE-2025-0001/basic", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		CVE     string  `json:"cve"`
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.CVE != "CVE-2025-0001" || body.Summary == nil || *body.Summary != "proxied" {
		t.Errorf("proxied body = %+v", body)
	}
}
