// Package api implements the backend Scoring API: CVE metadata, score
// aggregation, search, home feeds, AI summaries, and upload matching.
package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/aisummary"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/ingest"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

// Server holds the handler dependencies for the Scoring API.
type Server struct {
	store         *store.Store
	log           *logrus.Logger
	summarizer    *aisummary.Generator
	matcher       *ingest.Matcher
	defaultWindow string
}

// New creates a Server over the given store.
func New(st *store.Store, log *logrus.Logger, summarizer *aisummary.Generator, defaultWindow string) *Server {
	if defaultWindow == "" {
		defaultWindow = "7d"
	}
	return &Server{
		store:         st,
		log:           log,
		summarizer:    summarizer,
		matcher:       ingest.NewMatcher(st),
		defaultWindow: defaultWindow,
	}
}

// Handler returns the routed HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /api/v1/cve/{id}/basic", s.handleBasic)
	mux.HandleFunc("GET /api/v1/cve/{id}/scores", s.handleScores)
	mux.HandleFunc("GET /api/v1/cve/{id}/stats", s.handleStats)
	mux.HandleFunc("POST /api/v1/cve/{id}/ai-summary", s.handleAISummary)
	mux.HandleFunc("GET /api/v1/cve/{id}/related", s.handleRelated)
	mux.HandleFunc("GET /api/v1/cve/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("POST /api/v1/cve/{id}/evidence/search", s.handleEvidenceSearch)
	mux.HandleFunc("GET /api/v1/cve/{id}/advisories", s.handleAdvisories)
	mux.HandleFunc("POST /api/v1/cve/{id}/ai-recommendations", s.handleAIRecommendations)

	mux.HandleFunc("GET /api/v1/search", s.handleSearch)

	mux.HandleFunc("GET /api/v1/home/today-news", s.handleTodayNews)
	mux.HandleFunc("GET /api/v1/home/latest-updates", s.handleLatestUpdates)
	mux.HandleFunc("GET /api/v1/home/rankings", s.handleRankings)

	mux.HandleFunc("POST /api/v1/uploads/scan-feed", s.handleScanFeed)
	mux.HandleFunc("POST /api/v1/environment/scan", s.handleEnvironmentScan)

	return s.logRequests(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
