// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tubelytics/internal/searchui"
	"github.com/pdiddy/tubelytics/pkg/types"
)

func apiServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [], "avgFleschKincaidGrade": 5.2, "avgFleschReadingEase": 70.1}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRunInteractive(t *testing.T) {
	ts := apiServer(t)
	text := &searchui.TextInput{}
	container := searchui.NewMemoryContainer("")
	s, err := newSearchUI(types.UIConfig{ServerURL: ts.URL, Policy: types.PolicyLastInvoked}, text, container)
	require.NoError(t, err)

	var status bytes.Buffer
	err = runInteractive(context.Background(), s, text, strings.NewReader("cats\ndogs\n"), &status)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(status.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"cats"`)
	assert.Contains(t, lines[1], "rendered")
	assert.Contains(t, lines[1], `"dogs"`)
	assert.Contains(t, string(container.HTML()), "Search terms: dogs")
}

func TestNewSearchUIVisibleErrors(t *testing.T) {
	ts := apiServer(t)
	container := searchui.NewMemoryContainer("")
	s, err := newSearchUI(types.UIConfig{ServerURL: ts.URL, VisibleErrors: true}, searchui.StaticInput("broken"), container)
	require.NoError(t, err)

	assert.Equal(t, searchui.Failed, s.Search(context.Background()))
	assert.Contains(t, string(container.HTML()), "search-error")
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, writeOutput("", &stdout, "<p>x</p>"))
	assert.Equal(t, "<p>x</p>", stdout.String())

	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, writeOutput(path, &stdout, "<p>y</p>"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>y</p>", string(data))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, nil))
	assert.Equal(t, "No searches recorded.\n", buf.String())

	buf.Reset()
	require.NoError(t, printHistory(&buf, []types.HistoryEntry{{
		Query:                 "cats",
		CreatedAt:             time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ItemCount:             10,
		AvgFleschKincaidGrade: 5.2,
		AvgFleschReadingEase:  70.1,
	}}))
	assert.Contains(t, buf.String(), "QUERY")
	assert.Contains(t, buf.String(), "cats")
	assert.Contains(t, buf.String(), "5.20")
	assert.Contains(t, buf.String(), "70.10")
}
