// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/tubelytics/internal/render"
)

// Stage says where a search request failed.
type Stage string

const (
	StageTransport Stage = "transport"
	StageStatus    Stage = "status"
	StageDecode    Stage = "decode"
	StageRender    Stage = "render"
)

// RequestFailure is the single error kind of a search: the request could not
// be sent, the API answered non-2xx, or the body was not a search response.
type RequestFailure struct {
	Query      string
	Stage      Stage
	StatusCode int
	Err        error

	// Stale is set when a newer search has started and the overlap policy
	// discards this one's results.
	Stale bool
}

func (f *RequestFailure) Error() string {
	return fmt.Sprintf("search %q failed at %s: %v", f.Query, f.Stage, f.Err)
}

func (f *RequestFailure) Unwrap() error { return f.Err }

// FailureReporter is the diagnostic channel for failed searches. SearchUI
// calls it at most once per search while holding its render lock, so an
// implementation must not call back into the SearchUI.
type FailureReporter interface {
	ReportFailure(ctx context.Context, f *RequestFailure)
}

// LogReporter writes one error entry per failure and renders nothing.
type LogReporter struct {
	Logger *zap.Logger
}

// ReportFailure logs f.
func (r LogReporter) ReportFailure(_ context.Context, f *RequestFailure) {
	logger := r.Logger
	if logger == nil {
		logger = zap.L()
	}
	fields := []zap.Field{
		zap.String("query", f.Query),
		zap.String("stage", string(f.Stage)),
		zap.Error(f.Err),
	}
	if f.StatusCode != 0 {
		fields = append(fields, zap.Int("status", f.StatusCode))
	}
	if f.Stale {
		fields = append(fields, zap.Bool("stale", true))
	}
	logger.Error("error fetching search results", fields...)
}

// VisibleReporter reports through Next and then replaces the container's
// content with an error block, unless the failure is stale.
type VisibleReporter struct {
	Next      FailureReporter
	Renderer  *render.Renderer
	Container Container
}

// ReportFailure reports f and shows it.
func (r VisibleReporter) ReportFailure(ctx context.Context, f *RequestFailure) {
	if r.Next != nil {
		r.Next.ReportFailure(ctx, f)
	}
	if f.Stale {
		return
	}
	block, err := r.Renderer.Error(fmt.Sprintf("Search for %q failed. Please try again.", f.Query))
	if err != nil {
		return
	}
	r.Container.Clear()
	r.Container.Append(block)
}
