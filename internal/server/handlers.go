// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/tubelytics/internal/render"
	"github.com/pdiddy/tubelytics/internal/searchui"
	"github.com/pdiddy/tubelytics/internal/youtube"
)

// ErrQueryTooLong rejects a search query over the configured length.
var ErrQueryTooLong = errors.New("query is too long")

// HandleHealth reports liveness.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
	})
}

// HandleSearch serves GET /tubelytics/search?query=. An empty query is
// forwarded upstream as is.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("query")
	if utf8.RuneCountInString(strings.TrimSpace(q)) > s.cfg.MaxQueryLength {
		writeError(w, http.StatusBadRequest, ErrQueryTooLong.Error())
		return
	}
	ctx := r.Context()

	resp, hit, err := s.cache.Get(ctx, q)
	if err != nil {
		s.logger.Warn("cache lookup failed", zap.String("query", q), zap.Error(err))
	}
	if !hit {
		resp, err = s.searcher.Search(ctx, q)
		if err != nil {
			s.logger.Error("upstream search failed", zap.String("query", q), zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to query provider")
			return
		}
		youtube.Summarize(resp)
		if err := s.cache.Set(ctx, q, resp); err != nil {
			s.logger.Warn("cache store failed", zap.String("query", q), zap.Error(err))
		}
	}

	if s.history != nil {
		if _, err := s.history.Add(ctx, q, resp); err != nil {
			s.logger.Warn("recording search history failed", zap.String("query", q), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory serves the most recent searches, newest first. ?limit= caps
// the count.
func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("reading search history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleChannel renders the profile page of a channel.
func (s *Server) HandleChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := s.searcher.ChannelProfile(r.Context(), id)
	if err != nil {
		s.logger.Error("channel profile failed", zap.String("channel_id", id), zap.Error(err))
		http.Error(w, "failed to load channel profile", http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Channel(&buf, profile); err != nil {
		s.logger.Error("rendering channel page failed", zap.String("channel_id", id), zap.Error(err))
		http.Error(w, "failed to render channel profile", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// HandleIndex renders the search page. With ?query= it runs a search
// server-side and renders the results into the page's results container.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := render.PageData{}
	if r.URL.Query().Has("query") {
		data.Query = r.URL.Query().Get("query")

		container := searchui.NewMemoryContainer("")
		ui, err := searchui.New(searchui.Config{
			Input:     searchui.StaticInput(data.Query),
			Container: container,
			Fetcher:   s.pageFetcher,
			Renderer:  s.renderer,
			Reporter: searchui.VisibleReporter{
				Next:      searchui.LogReporter{Logger: s.logger},
				Renderer:  s.renderer,
				Container: container,
			},
		})
		if err != nil {
			s.logger.Error("building search UI failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		ui.Search(r.Context())
		data.Results = container.HTML()
	}

	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, data); err != nil {
		s.logger.Error("rendering index page failed", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
