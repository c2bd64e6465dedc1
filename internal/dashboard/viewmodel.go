package dashboard

import (
	"context"
	"errors"
	"sync"
)

// NoSummaryPlaceholder is rendered when a CVE carries no summary text.
const NoSummaryPlaceholder = "(no summary)"

// ErrLoadFailed is the single user-facing failure for a detail view; a
// missing CVE and a transient fetch error are deliberately
// indistinguishable at this boundary.
var ErrLoadFailed = errors.New("failed to load CVE information")

// ViewModel is the display-ready aggregate for one CVE. Every numeric
// facet is defaulted to 0 and every text slot to a placeholder or empty
// string, so rendering never sees an absent value.
type ViewModel struct {
	CVE           string
	Summary       string
	AISummary     string
	OverallScore  float64
	CVSSScore     float64
	EPSSScore     float64
	KVEScore      float64
	ActivityScore float64
}

// Assembler builds view models from the backend API.
type Assembler struct {
	client *Client
	window string
}

// NewAssembler creates an Assembler using the given scoring window
// ("7d" when empty).
func NewAssembler(client *Client, window string) *Assembler {
	if window == "" {
		window = "7d"
	}
	return &Assembler{client: client, window: window}
}

// Assemble fetches basic info and scores concurrently and joins both;
// either failing yields ErrLoadFailed and no view model. The AI summary
// is requested concurrently and is strictly best-effort: any failure
// leaves its slot empty without affecting the result. Cancelling ctx
// aborts all in-flight requests.
func (a *Assembler) Assemble(ctx context.Context, id string) (*ViewModel, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type basicResult struct {
		info BasicInfo
		err  error
	}
	type scoresResult struct {
		scores Scores
		err    error
	}

	basicCh := make(chan basicResult, 1)
	scoresCh := make(chan scoresResult, 1)
	aiCh := make(chan string, 1)

	go func() {
		info, err := a.client.Basic(ctx, id)
		basicCh <- basicResult{info, err}
	}()
	go func() {
		scores, err := a.client.Scores(ctx, id, a.window)
		scoresCh <- scoresResult{scores, err}
	}()
	go func() {
		summary, err := a.client.AISummary(ctx, id, a.window)
		if err != nil {
			summary = ""
		}
		aiCh <- summary
	}()

	basic := <-basicCh
	scores := <-scoresCh
	if basic.err != nil || scores.err != nil {
		// cancel (deferred) aborts the AI request; its goroutine still
		// drains into the buffered channel.
		return nil, ErrLoadFailed
	}

	vm := &ViewModel{
		CVE:           basic.info.CVE,
		Summary:       NoSummaryPlaceholder,
		OverallScore:  scores.scores.OverallScore,
		CVSSScore:     derefOrZero(scores.scores.CVSS.Base),
		EPSSScore:     derefOrZero(scores.scores.EPSS),
		KVEScore:      derefOrZero(scores.scores.KVE),
		ActivityScore: derefOrZero(scores.scores.Activity),
	}
	if basic.info.Summary != nil && *basic.info.Summary != "" {
		vm.Summary = *basic.info.Summary
	}

	select {
	case vm.AISummary = <-aiCh:
	case <-ctx.Done():
	}
	return vm, nil
}

func derefOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// DetailState is the request lifecycle of a detail view.
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailLoaded
	DetailErrored
)

// DetailView owns the display state for one CVE detail page. Loading a
// new identifier cancels the in-flight assembly and guarantees its
// result is never applied.
type DetailView struct {
	assembler *Assembler

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  DetailState
	id     string
	vm     *ViewModel
	errMsg string
}

// NewDetailView creates an idle detail view.
func NewDetailView(assembler *Assembler) *DetailView {
	return &DetailView{assembler: assembler}
}

// Load assembles the view model for id, superseding any in-flight load.
// It blocks until its own assembly finishes; a load superseded meanwhile
// leaves the state to its successor.
func (v *DetailView) Load(ctx context.Context, id string) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.gen++
	gen := v.gen
	v.state = DetailLoading
	v.id = id
	v.mu.Unlock()

	vm, err := v.assembler.Assemble(loadCtx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		// A newer Load superseded this one; drop the result.
		return
	}
	if err != nil {
		v.state = DetailErrored
		v.vm = nil
		v.errMsg = err.Error()
		return
	}
	v.state = DetailLoaded
	v.vm = vm
	v.errMsg = ""
}

// Snapshot returns the current state, view model (nil unless loaded), and
// error message (empty unless errored).
func (v *DetailView) Snapshot() (DetailState, *ViewModel, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.vm, v.errMsg
}
