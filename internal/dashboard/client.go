// Package dashboard implements the frontend side of the service: a typed
// client for the Scoring API, the view-model and search assemblers, and
// the dashboard HTTP server that proxies /api/v1/* to the backend.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// Client is a typed HTTP client for the backend Scoring API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. A zero timeout
// defaults to 15 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BasicInfo mirrors GET /api/v1/cve/{id}/basic.
type BasicInfo struct {
	CVE     string  `json:"cve"`
	Summary *string `json:"summary"`
}

// Scores mirrors GET /api/v1/cve/{id}/scores. Facets are pointers so a
// null in the payload stays distinguishable from zero.
type Scores struct {
	CVE          string  `json:"cve"`
	OverallScore float64 `json:"overall_score"`
	CVSS         struct {
		Base *float64 `json:"base"`
	} `json:"cvss"`
	EPSS     *float64 `json:"epss"`
	KVE      *float64 `json:"kve"`
	Activity *float64 `json:"activity"`
}

// Basic fetches basic CVE info.
func (c *Client) Basic(ctx context.Context, id string) (BasicInfo, error) {
	var info BasicInfo
	err := c.getJSON(ctx, "/api/v1/cve/"+url.PathEscape(id)+"/basic", &info)
	return info, err
}

// Scores fetches the score bundle for one CVE and window.
func (c *Client) Scores(ctx context.Context, id, window string) (Scores, error) {
	var scores Scores
	path := fmt.Sprintf("/api/v1/cve/%s/scores?window=%s", url.PathEscape(id), url.QueryEscape(window))
	err := c.getJSON(ctx, path, &scores)
	return scores, err
}

// AISummary requests the AI summary for one CVE and window. Callers treat
// any error as an empty summary.
func (c *Client) AISummary(ctx context.Context, id, window string) (string, error) {
	path := fmt.Sprintf("/api/v1/cve/%s/ai-summary?window=%s", url.PathEscape(id), url.QueryEscape(window))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body struct {
		AISummary string `json:"ai_summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.AISummary, nil
}

// Search queries the backend search endpoint.
func (c *Client) Search(ctx context.Context, q string, mode models.SearchMode) ([]models.SearchItem, error) {
	path := fmt.Sprintf("/api/v1/search?q=%s&type=%s", url.QueryEscape(q), url.QueryEscape(string(mode)))

	var body struct {
		Results []models.SearchItem `json:"results"`
	}
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// TodayNews fetches the home news feed.
func (c *Client) TodayNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	var body struct {
		Items []models.NewsItem `json:"items"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/home/today-news?limit=%d", limit), &body)
	return body.Items, err
}

// LatestUpdates fetches the latest-updates feed.
func (c *Client) LatestUpdates(ctx context.Context, limit int) ([]models.LatestUpdate, error) {
	var body struct {
		Items []models.LatestUpdate `json:"items"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/home/latest-updates?limit=%d", limit), &body)
	return body.Items, err
}

// Rankings fetches the weighted home ranking.
func (c *Client) Rankings(ctx context.Context, limit int, window string) ([]models.RankingItem, error) {
	var body struct {
		Items []models.RankingItem `json:"items"`
	}
	path := fmt.Sprintf("/api/v1/home/rankings?limit=%d&window=%s", limit, url.QueryEscape(window))
	err := c.getJSON(ctx, path, &body)
	return body.Items, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
