// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchui runs a search against the TubeLytics API and renders the
// result into a results container.
//
// A search reads the query from an Input, issues one GET request through a
// Fetcher, and on success clears the Container and appends the rendered
// results. On failure it reports once to the FailureReporter and leaves the
// Container untouched. There is no validation, retry or timeout; a caller
// that wants a deadline passes one in the context.
//
// Searches may overlap. The OverlapPolicy decides what happens then:
//
//	last-resolved    every response renders; the one settling last wins
//	last-invoked     responses from superseded searches are discarded
//	ignore-pending   a search started while another is in flight is skipped
//	cancel-previous  starting a search cancels the one in flight
package searchui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pdiddy/tubelytics/internal/render"
	"github.com/pdiddy/tubelytics/pkg/types"
)

// Outcome is how a search settled.
type Outcome int

const (
	// Rendered means the container now shows this search's results.
	Rendered Outcome = iota
	// Failed means the failure was reported and the container kept its content.
	Failed
	// Discarded means a newer search superseded this one.
	Discarded
	// Skipped means the search never started because another was in flight.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "rendered"
	case Failed:
		return "failed"
	case Discarded:
		return "discarded"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Config wires a SearchUI. Input, Container and Fetcher are required.
type Config struct {
	Input     Input
	Container Container
	Fetcher   Fetcher

	// Renderer defaults to render.MustNew(render.Options{}).
	Renderer *render.Renderer

	// Reporter defaults to LogReporter with the global zap logger.
	Reporter FailureReporter

	// Policy defaults to last-resolved.
	Policy types.OverlapPolicy
}

// SearchUI is safe for concurrent use.
type SearchUI struct {
	input     Input
	container Container
	fetcher   Fetcher
	renderer  *render.Renderer
	reporter  FailureReporter
	policy    types.OverlapPolicy

	// mu guards the fields below and serializes container writes.
	mu         sync.Mutex
	generation uint64
	inFlight   int
	cancelLast context.CancelFunc
}

// New validates cfg and returns a SearchUI.
func New(cfg Config) (*SearchUI, error) {
	if cfg.Input == nil || cfg.Container == nil || cfg.Fetcher == nil {
		return nil, errors.New("searchui: input, container and fetcher are required")
	}
	policy := cfg.Policy
	if policy == "" {
		policy = types.PolicyLastResolved
	}
	switch policy {
	case types.PolicyLastResolved, types.PolicyLastInvoked, types.PolicyIgnorePending, types.PolicyCancelPrevious:
	default:
		return nil, fmt.Errorf("searchui: unknown overlap policy %q", policy)
	}
	renderer := cfg.Renderer
	if renderer == nil {
		r, err := render.New(render.Options{})
		if err != nil {
			return nil, err
		}
		renderer = r
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &SearchUI{
		input:     cfg.Input,
		container: cfg.Container,
		fetcher:   cfg.Fetcher,
		renderer:  renderer,
		reporter:  reporter,
		policy:    policy,
	}, nil
}

// Policy returns the overlap policy in effect.
func (ui *SearchUI) Policy() types.OverlapPolicy { return ui.policy }

type call struct {
	ctx     context.Context
	query   string
	gen     uint64
	release func()
}

// Search runs one search and blocks until it settles.
func (ui *SearchUI) Search(ctx context.Context) Outcome {
	c, ok := ui.start(ctx)
	if !ok {
		return Skipped
	}
	return ui.run(c)
}

// Trigger starts a search and returns at once, the way an event handler
// would. The query is read and the search ordered before Trigger returns;
// the outcome arrives on the channel when it settles.
func (ui *SearchUI) Trigger(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)
	c, ok := ui.start(ctx)
	if !ok {
		ch <- Skipped
		close(ch)
		return ch
	}
	go func() {
		ch <- ui.run(c)
		close(ch)
	}()
	return ch
}

func (ui *SearchUI) start(ctx context.Context) (*call, bool) {
	query := ui.input.Value()

	ui.mu.Lock()
	defer ui.mu.Unlock()

	if ui.policy == types.PolicyIgnorePending && ui.inFlight > 0 {
		return nil, false
	}

	ui.generation++
	ui.inFlight++
	cancel := context.CancelFunc(func() {})
	if ui.policy == types.PolicyCancelPrevious {
		if ui.cancelLast != nil {
			ui.cancelLast()
		}
		ctx, cancel = context.WithCancel(ctx)
		ui.cancelLast = cancel
	}

	return &call{
		ctx:   ctx,
		query: query,
		gen:   ui.generation,
		release: func() {
			ui.mu.Lock()
			ui.inFlight--
			ui.mu.Unlock()
			cancel()
		},
	}, true
}

func (ui *SearchUI) run(c *call) Outcome {
	defer c.release()

	resp, err := ui.fetcher.Fetch(c.ctx, c.query)
	if err != nil {
		return ui.fail(c, asFailure(c.query, StageTransport, err))
	}

	html, err := ui.renderer.Results(c.query, resp)
	if err != nil {
		return ui.fail(c, asFailure(c.query, StageRender, err))
	}

	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.staleLocked(c) {
		return Discarded
	}
	ui.container.Clear()
	ui.container.Append(html)
	return Rendered
}

func (ui *SearchUI) fail(c *call, f *RequestFailure) Outcome {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	stale := ui.staleLocked(c)
	if stale && ui.policy == types.PolicyCancelPrevious && errors.Is(f, context.Canceled) {
		// Cancelled on purpose by a newer search.
		return Discarded
	}
	f.Stale = stale
	ui.reporter.ReportFailure(c.ctx, f)
	return Failed
}

// staleLocked reports whether the policy discards c because a newer search
// has started. The caller holds ui.mu.
func (ui *SearchUI) staleLocked(c *call) bool {
	switch ui.policy {
	case types.PolicyLastInvoked, types.PolicyCancelPrevious:
		return c.gen != ui.generation
	}
	return false
}

func asFailure(query string, stage Stage, err error) *RequestFailure {
	var f *RequestFailure
	if errors.As(err, &f) {
		return f
	}
	return &RequestFailure{Query: query, Stage: stage, Err: err}
}
