package api

import (
	"net/http"
	"time"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/scoring"
)

type todayNewsResponse struct {
	Date  string            `json:"date"`
	Items []models.NewsItem `json:"items"`
}

// Home feed handlers swallow store errors into empty lists: the landing
// page renders with whatever sections are available.

func (s *Server) handleTodayNews(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, 10, 1, 50)
	now := time.Now()

	items, err := s.store.TodayNews(r.Context(), now, limit)
	if err != nil {
		s.log.WithError(err).Warn("today-news failed, returning empty list")
		items = nil
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	writeJSON(w, http.StatusOK, todayNewsResponse{
		Date:  now.Format("2006-01-02"),
		Items: items,
	})
}

type latestUpdatesResponse struct {
	Items []models.LatestUpdate `json:"items"`
}

func (s *Server) handleLatestUpdates(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, 20, 1, 100)

	items, err := s.store.LatestUpdates(r.Context(), limit)
	if err != nil {
		s.log.WithError(err).Warn("latest-updates failed, returning empty list")
		items = nil
	}
	if items == nil {
		items = []models.LatestUpdate{}
	}
	writeJSON(w, http.StatusOK, latestUpdatesResponse{Items: items})
}

type rankingsResponse struct {
	Items []models.RankingItem `json:"items"`
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, 10, 1, 100)
	window := s.windowParam(r)

	items, err := s.store.Rankings(r.Context(), window, limit)
	if err != nil {
		s.log.WithError(err).Warn("rankings failed, returning empty list")
		items = nil
	}
	for i := range items {
		items[i].Score = scoring.Round(items[i].Score, 2)
	}
	if items == nil {
		items = []models.RankingItem{}
	}
	writeJSON(w, http.StatusOK, rankingsResponse{Items: items})
}
