package api

import (
	"errors"
	"net/http"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/aisummary"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/scoring"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

type basicResponse struct {
	CVE     string  `json:"cve"`
	Summary *string `json:"summary"`
}

func (s *Server) handleBasic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.store.GetBasic(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "CVE not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("basic lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := basicResponse{CVE: rec.ID}
	if rec.Summary != "" {
		resp.Summary = &rec.Summary
	}
	writeJSON(w, http.StatusOK, resp)
}

type cvssBlock struct {
	Base float64 `json:"base"`
}

type scoresResponse struct {
	CVE          string    `json:"cve"`
	OverallScore float64   `json:"overall_score"`
	CVSS         cvssBlock `json:"cvss"`
	EPSS         float64   `json:"epss"`
	KVE          float64   `json:"kve"`
	Activity     float64   `json:"activity"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	window := s.windowParam(r)

	bundle, err := s.store.GetScores(r.Context(), id, window)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "CVE not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("scores lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, scoresResponse{
		CVE:          bundle.CVE,
		OverallScore: scoring.Overall(bundle),
		CVSS:         cvssBlock{Base: scoring.Round(scoring.Deref(bundle.CVSS), 2)},
		EPSS:         scoring.Round(scoring.Deref(bundle.EPSS), 4),
		KVE:          scoring.Round(scoring.Deref(bundle.KVE), 2),
		Activity:     scoring.Round(scoring.Deref(bundle.Activity), 2),
	})
}

type statsResponse struct {
	CVE         string  `json:"cve"`
	Views       int     `json:"views"`
	UseCases    int     `json:"use_cases"`
	Interest    float64 `json:"interest"`
	PublishedAt *string `json:"published_at"`
}

// handleStats returns placeholder stats after an existence check; view
// and interest counters are not tracked in the current schema.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.store.GetBasic(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "CVE not found")
			return
		}
		s.log.WithError(err).Error("stats lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{CVE: id})
}

type aiSummaryResponse struct {
	AISummary string `json:"ai_summary"`
}

func (s *Server) handleAISummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	window := s.windowParam(r)

	rec, err := s.store.GetBasic(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "CVE not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("ai-summary lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	bundle, err := s.store.GetScores(r.Context(), id, window)
	if err != nil {
		s.log.WithError(err).Error("ai-summary scores lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	summary := s.summarizer.Summarize(r.Context(), aisummary.Input{
		CVE:     rec.ID,
		Summary: rec.Summary,
		Scores:  bundle,
		Overall: scoring.Overall(bundle),
		Window:  window,
	})
	writeJSON(w, http.StatusOK, aiSummaryResponse{AISummary: summary})
}

type relatedResponse struct {
	Related []models.RelatedCVE `json:"related"`
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit := limitParam(r, 5, 1, 50)

	items, err := s.store.Related(r.Context(), id, s.defaultWindow, limit)
	if err != nil {
		s.log.WithError(err).Error("related lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	for i := range items {
		items[i].RiskLevel = scoring.RiskLevel(items[i].Score)
		items[i].Score = scoring.Round(items[i].Score, 1)
	}
	if items == nil {
		items = []models.RelatedCVE{}
	}
	writeJSON(w, http.StatusOK, relatedResponse{Related: items})
}

type timelineResponse struct {
	Timeline []models.TimelineEvent `json:"timeline"`
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	events, err := s.store.Timeline(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "CVE not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("timeline lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if events == nil {
		events = []models.TimelineEvent{}
	}
	writeJSON(w, http.StatusOK, timelineResponse{Timeline: events})
}

type evidenceHit struct {
	Title   string `json:"title"`
	Product string `json:"product,omitempty"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

// handleEvidenceSearch is a placeholder: no evidence index exists in the
// current schema, so the hit list is always empty.
func (s *Server) handleEvidenceSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]evidenceHit{"hits": {}})
}

type advisoryItem struct {
	Type string `json:"type"`
	Link string `json:"link"`
}

// handleAdvisories is a placeholder: no advisories table exists yet.
func (s *Server) handleAdvisories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]advisoryItem{"items": {}})
}

type aiRecsResponse struct {
	CVE             string                   `json:"cve"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
}

func (s *Server) handleAIRecommendations(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	window := s.windowParam(r)

	bundle, err := s.store.GetScores(r.Context(), id, window)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "CVE not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("ai-recommendations lookup failed")
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	recs := scoring.Recommend(
		scoring.Deref(bundle.CVSS),
		scoring.Deref(bundle.EPSS),
		scoring.Deref(bundle.KVE),
		scoring.Overall(bundle),
	)
	writeJSON(w, http.StatusOK, aiRecsResponse{CVE: id, Recommendations: recs})
}
