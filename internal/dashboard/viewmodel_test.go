package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeBackend serves the subset of the Scoring API the dashboard reads,
// with per-endpoint overrides for failure injection.
type fakeBackend struct {
	mu        sync.Mutex
	basics    map[string]map[string]any
	scores    map[string]map[string]any
	summaries map[string]string
	failAI    bool
	blockAI   chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		basics:    make(map[string]map[string]any),
		scores:    make(map[string]map[string]any),
		summaries: make(map[string]string),
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/cve/{id}/basic", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		body, ok := b.basics[r.PathValue("id")]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "CVE not found"})
			return
		}
		json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("GET /api/v1/cve/{id}/scores", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		body, ok := b.scores[r.PathValue("id")]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "CVE not found"})
			return
		}
		json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("POST /api/v1/cve/{id}/ai-summary", func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so net/http starts its background read; without
		// it the server never notices a client disconnect and
		// r.Context() is not cancelled.
		io.Copy(io.Discard, r.Body)
		b.mu.Lock()
		fail := b.failAI
		block := b.blockAI
		summary := b.summaries[r.PathValue("id")]
		b.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ai_summary": summary})
	})

	return mux
}

func (b *fakeBackend) setSummary(id, summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summaries[id] = summary
}

func (b *fakeBackend) setFailAI(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAI = fail
}

func (b *fakeBackend) setBlockAI(ch chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blockAI = ch
}

func (b *fakeBackend) addCVE(id, summary string, overall, cvss float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	basic := map[string]any{"cve": id}
	if summary != "" {
		basic["summary"] = summary
	} else {
		basic["summary"] = nil
	}
	b.basics[id] = basic
	b.scores[id] = map[string]any{
		"cve":           id,
		"overall_score": overall,
		"cvss":          map[string]any{"base": cvss},
		"epss":          0.97,
		"kve":           8.0,
		"activity":      6.0,
	}
}

func newTestAssembler(t *testing.T, backend *fakeBackend) (*Assembler, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewAssembler(NewClient(srv.URL, 5*time.Second), "7d"), srv
}

func TestAssemble(t *testing.T) {
	backend := newFakeBackend()
	backend.addCVE("CVE-2025-0001", "heap overflow", 9.41, 9.8)
	backend.setSummary("CVE-2025-0001", "a generated summary")
	assembler, _ := newTestAssembler(t, backend)

	vm, err := assembler.Assemble(context.Background(), "CVE-2025-0001")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if vm.CVE != "CVE-2025-0001" || vm.Summary != "heap overflow" {
		t.Errorf("vm = %+v", vm)
	}
	if vm.OverallScore != 9.41 || vm.CVSSScore != 9.8 || vm.EPSSScore != 0.97 {
		t.Errorf("scores: %+v", vm)
	}
	if vm.AISummary != "a generated summary" {
		t.Errorf("AISummary = %q", vm.AISummary)
	}
}

func TestAssembleMissingCVE(t *testing.T) {
	backend := newFakeBackend()
	assembler, _ := newTestAssembler(t, backend)

	vm, err := assembler.Assemble(context.Background(), "CVE-0000-0000")
	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("err = %v, want ErrLoadFailed", err)
	}
	if vm != nil {
		t.Errorf("vm = %+v, want nil", vm)
	}
}

func TestAssembleScoresFailureIsFatal(t *testing.T) {
	backend := newFakeBackend()
	backend.addCVE("CVE-2025-0001", "text", 1, 1)
	backend.mu.Lock()
	delete(backend.scores, "CVE-2025-0001")
	backend.mu.Unlock()
	assembler, _ := newTestAssembler(t, backend)

	if _, err := assembler.Assemble(context.Background(), "CVE-2025-0001"); !errors.Is(err, ErrLoadFailed) {
		t.Errorf("err = %v, want ErrLoadFailed", err)
	}
}

func TestAssembleAIFailureIsBestEffort(t *testing.T) {
	backend := newFakeBackend()
	backend.addCVE("CVE-2025-0001", "text", 9.41, 9.8)
	backend.setFailAI(true)
	assembler, _ := newTestAssembler(t, backend)

	vm, err := assembler.Assemble(context.Background(), "CVE-2025-0001")
	if err != nil {
		t.Fatalf("AI failure must not fail the assembly: %v", err)
	}
	if vm.AISummary != "" {
		t.Errorf("AISummary = %q, want empty on failure", vm.AISummary)
	}
}

func TestAssembleNullFacetsDefaultToZero(t *testing.T) {
	backend := newFakeBackend()
	backend.mu.Lock()
	backend.basics["CVE-2025-0002"] = map[string]any{"cve": "CVE-2025-0002", "summary": nil}
	backend.scores["CVE-2025-0002"] = map[string]any{
		"cve":           "CVE-2025-0002",
		"overall_score": 0.0,
		"cvss":          map[string]any{"base": nil},
		"epss":          nil,
		"kve":           nil,
		"activity":      nil,
	}
	backend.mu.Unlock()
	assembler, _ := newTestAssembler(t, backend)

	vm, err := assembler.Assemble(context.Background(), "CVE-2025-0002")
	if err != nil {
		t.Fatal(err)
	}
	if vm.CVSSScore != 0 || vm.EPSSScore != 0 || vm.KVEScore != 0 || vm.ActivityScore != 0 {
		t.Errorf("null facets leaked: %+v", vm)
	}
	if vm.Summary != NoSummaryPlaceholder {
		t.Errorf("Summary = %q, want placeholder", vm.Summary)
	}
}

func TestDetailViewLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.addCVE("CVE-2025-0001", "text", 9.41, 9.8)
	assembler, _ := newTestAssembler(t, backend)
	view := NewDetailView(assembler)

	if state, _, _ := view.Snapshot(); state != DetailIdle {
		t.Fatalf("initial state = %v", state)
	}

	view.Load(context.Background(), "CVE-2025-0001")
	state, vm, errMsg := view.Snapshot()
	if state != DetailLoaded || vm == nil || vm.CVE != "CVE-2025-0001" || errMsg != "" {
		t.Errorf("snapshot = %v, %+v, %q", state, vm, errMsg)
	}

	view.Load(context.Background(), "CVE-0000-0000")
	state, vm, errMsg = view.Snapshot()
	if state != DetailErrored || vm != nil || errMsg == "" {
		t.Errorf("snapshot after failed load = %v, %+v, %q", state, vm, errMsg)
	}
}

func TestDetailViewSupersededLoadIsDiscarded(t *testing.T) {
	backend := newFakeBackend()
	backend.addCVE("CVE-2025-0001", "slow target", 1, 1)
	backend.addCVE("CVE-2025-0002", "fast target", 2, 2)
	backend.setBlockAI(make(chan struct{}))
	assembler, _ := newTestAssembler(t, backend)
	view := NewDetailView(assembler)

	// The first load hangs on its AI request until released; the second
	// load cancels it and must own the final state.
	firstDone := make(chan struct{})
	go func() {
		view.Load(context.Background(), "CVE-2025-0001")
		close(firstDone)
	}()

	// Wait until the first load is past its state transition.
	deadline := time.After(2 * time.Second)
	for {
		state, _, _ := view.Snapshot()
		if state == DetailLoading {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first load never reached the loading state")
		case <-time.After(5 * time.Millisecond):
		}
	}

	backend.setBlockAI(nil)

	view.Load(context.Background(), "CVE-2025-0002")

	<-firstDone
	state, vm, _ := view.Snapshot()
	if state != DetailLoaded || vm == nil || vm.CVE != "CVE-2025-0002" {
		t.Errorf("superseded load overwrote the state: %v, %+v", state, vm)
	}
}
