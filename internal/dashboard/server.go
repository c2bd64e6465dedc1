package dashboard

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// Server is the dashboard HTTP process: it renders the frontend pages and
// forwards every /api/v1/* request to the backend loopback address.
type Server struct {
	client    *Client
	assembler *Assembler
	proxy     *httputil.ReverseProxy
	log       *logrus.Logger
	window    string
}

// NewServer creates a dashboard server talking to the backend at
// backendURL.
func NewServer(backendURL, window string, timeout time.Duration, log *logrus.Logger) (*Server, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, err
	}

	client := NewClient(backendURL, timeout)
	if window == "" {
		window = "7d"
	}
	return &Server{
		client:    client,
		assembler: NewAssembler(client, window),
		proxy:     httputil.NewSingleHostReverseProxy(target),
		log:       log,
		window:    window,
	}, nil
}

// Handler returns the routed dashboard handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/v1/", s.proxy)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /cve/{id}", s.handleDetail)
	mux.HandleFunc("GET /search", s.handleSearchPage)

	return mux
}

type homePage struct {
	News     []models.NewsItem
	Latest   []models.LatestUpdate
	Rankings []models.RankingItem
}

// handleHome renders the landing page. Each section is independently
// best-effort: a failed feed renders as an empty section.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var page homePage
	var err error

	if page.News, err = s.client.TodayNews(ctx, 10); err != nil {
		s.log.WithError(err).Warn("today-news fetch failed")
	}
	if page.Latest, err = s.client.LatestUpdates(ctx, 20); err != nil {
		s.log.WithError(err).Warn("latest-updates fetch failed")
	}
	if page.Rankings, err = s.client.Rankings(ctx, 10, s.window); err != nil {
		s.log.WithError(err).Warn("rankings fetch failed")
	}

	s.render(w, homeTemplate, page)
}

type detailPage struct {
	ID     string
	VM     *ViewModel
	ErrMsg string
}

// handleDetail renders the per-CVE view model, or the single generic
// error message when required data cannot be loaded.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	vm, err := s.assembler.Assemble(r.Context(), id)
	page := detailPage{ID: id, VM: vm}
	if err != nil {
		page.ErrMsg = err.Error()
	}
	s.render(w, detailTemplate, page)
}

type searchPage struct {
	Query   string
	Mode    models.SearchMode
	Results []models.SearchItem
}

// handleSearchPage renders the results view for a submitted keyword
// query. Failures collapse to the empty-result state.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	mode := models.SearchMode(r.URL.Query().Get("type"))
	if !mode.Valid() {
		mode = models.SearchModeKeyword
	}

	var results []models.SearchItem
	if q != "" {
		var err error
		if results, err = s.client.Search(r.Context(), q, mode); err != nil {
			s.log.WithError(err).Warn("search fetch failed")
			results = nil
		}
	}

	s.render(w, searchTemplate, searchPage{Query: q, Mode: mode, Results: results})
}

func (s *Server) render(w http.ResponseWriter, tmpl pageTemplate, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.log.WithError(err).Error("template render failed")
	}
}
