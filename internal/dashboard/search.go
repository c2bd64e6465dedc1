package dashboard

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// SearchState is the search panel lifecycle.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchQuerying
	SearchResultsShown
	SearchNoResults
)

// SearchController owns the live-search state: current mode, query
// results, and per-mode result caches. Every query carries a generation
// stamp; a completion whose generation is stale is discarded and its
// request context cancelled, so a slow early response can never overwrite
// a faster later one.
type SearchController struct {
	client *Client

	mu      sync.Mutex
	mode    models.SearchMode
	state   SearchState
	results []models.SearchItem
	gen     uint64
	cancel  context.CancelFunc
	cache   map[models.SearchMode]map[string][]models.SearchItem
}

// NewSearchController creates a controller starting in cve mode.
func NewSearchController(client *Client) *SearchController {
	return &SearchController{
		client: client,
		mode:   models.SearchModeCVE,
		cache:  make(map[models.SearchMode]map[string][]models.SearchItem),
	}
}

// SetMode switches the search mode. Cached result sets are kept per mode,
// so switching back and forth never bleeds results across modes.
func (c *SearchController) SetMode(mode models.SearchMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// Mode returns the current search mode.
func (c *SearchController) Mode() models.SearchMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetQuery reacts to an input change. Empty or whitespace-only input
// clears results and returns to Idle without any network call. Otherwise
// the backend is queried with the literal text and current mode; request
// or decode failures are swallowed into the NoResults state.
func (c *SearchController) SetQuery(ctx context.Context, q string) {
	c.mu.Lock()

	if strings.TrimSpace(q) == "" {
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.gen++
		c.state = SearchIdle
		c.results = nil
		c.mu.Unlock()
		return
	}

	mode := c.mode
	if cached, ok := c.cache[mode][q]; ok {
		c.gen++
		c.applyLocked(cached)
		c.mu.Unlock()
		return
	}

	if c.cancel != nil {
		c.cancel()
	}
	queryCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.gen++
	gen := c.gen
	c.state = SearchQuerying
	c.mu.Unlock()

	results, err := c.client.Search(queryCtx, q, mode)
	if err != nil {
		results = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if err == nil {
		if c.cache[mode] == nil {
			c.cache[mode] = make(map[string][]models.SearchItem)
		}
		c.cache[mode][q] = results
	}
	c.applyLocked(results)
}

// applyLocked installs a result set and derives the state from it.
func (c *SearchController) applyLocked(results []models.SearchItem) {
	c.results = results
	if len(results) > 0 {
		c.state = SearchResultsShown
	} else {
		c.state = SearchNoResults
	}
}

// Snapshot returns the current state and result list.
func (c *SearchController) Snapshot() (SearchState, []models.SearchItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.results
}

// Submit resolves the navigation target for an explicit submission. In
// cve mode the raw literal text routes straight to a detail view, with no
// validation of its shape; in keyword mode it routes to the results view.
func (c *SearchController) Submit(q string) string {
	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()

	if mode == models.SearchModeCVE {
		return "/cve/" + q
	}
	return "/search?q=" + url.QueryEscape(q)
}

// Select resolves the navigation target for a chosen suggestion.
func (c *SearchController) Select(item models.SearchItem) string {
	return item.Link
}
