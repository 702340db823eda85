// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tubelytics/pkg/types"
)

func setupStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{
		DBPath:     filepath.Join(t.TempDir(), "data", "history.db"),
		MaxEntries: maxEntries,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func response(titles ...string) *types.SearchResponse {
	resp := &types.SearchResponse{
		AvgFleschKincaidGrade: types.Float(5.2),
		AvgFleschReadingEase:  types.Float(70.1),
		Items:                 []types.SearchItem{},
	}
	for i, title := range titles {
		resp.Items = append(resp.Items, types.SearchItem{
			ID:      types.VideoID{VideoID: fmt.Sprintf("v%d", i)},
			Snippet: types.Snippet{Title: title},
		})
	}
	return resp
}

func TestAddAndRecent(t *testing.T) {
	s := setupStore(t, 10)
	ctx := context.Background()

	first, err := s.Add(ctx, "cats", response("Cats", "More cats"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 2, first.ItemCount)

	_, err = s.Add(ctx, "dogs", response())
	require.NoError(t, err)

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dogs", got[0].Query, "newest first")
	assert.Equal(t, "cats", got[1].Query)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, first.CreatedAt, got[1].CreatedAt)
	assert.Equal(t, 5.2, got[1].AvgFleschKincaidGrade)
	assert.Equal(t, 70.1, got[1].AvgFleschReadingEase)
	require.NotNil(t, got[1].Response)
	assert.Equal(t, "More cats", got[1].Response.Items[1].Snippet.Title)
}

func TestAddTrimsToMaxEntries(t *testing.T) {
	s := setupStore(t, 10)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		_, err := s.Add(ctx, fmt.Sprintf("q%d", i), response())
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "q12", got[0].Query)
	assert.Equal(t, "q3", got[9].Query)
}

func TestRecentLimit(t *testing.T) {
	s := setupStore(t, 5)
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, q, response())
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Query)
	assert.Equal(t, "b", got[1].Query)
}

func TestAddNilResponse(t *testing.T) {
	s := setupStore(t, 10)
	ctx := context.Background()

	_, err := s.Add(ctx, "empty", nil)
	require.NoError(t, err)

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Response)
	assert.Zero(t, got[0].ItemCount)
}

func TestEmptyStore(t *testing.T) {
	s := setupStore(t, 10)

	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClear(t *testing.T) {
	s := setupStore(t, 10)
	ctx := context.Background()
	for _, q := range []string{"a", "b"} {
		_, err := s.Add(ctx, q, response())
		require.NoError(t, err)
	}

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	cfg := types.HistoryConfig{DBPath: path, MaxEntries: 10}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), "persisted", response())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(cfg)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Query)
}

func TestNewStoreEmptyPath(t *testing.T) {
	_, err := NewStore(types.HistoryConfig{})
	assert.Error(t, err)
}

func TestExportYAML(t *testing.T) {
	s := setupStore(t, 10)
	ctx := context.Background()
	_, err := s.Add(ctx, "cats", response("Cats"))
	require.NoError(t, err)
	_, err = s.Add(ctx, "dogs", response("Dogs", "Puppies"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &buf))

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "dogs", entries[0].Query)
	assert.Equal(t, []string{"Dogs", "Puppies"}, entries[0].Titles)
	assert.Equal(t, "2026-03-01T12:00:02Z", entries[0].CreatedAt)
	assert.Equal(t, 1, entries[1].ItemCount)
	assert.Contains(t, buf.String(), "avg_flesch_kincaid_grade: 5.2")
}
