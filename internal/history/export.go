// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one search in the YAML export. Item titles stand in for the
// full response.
type ExportEntry struct {
	ID                    string   `yaml:"id"`
	Query                 string   `yaml:"query"`
	CreatedAt             string   `yaml:"created_at"`
	ItemCount             int      `yaml:"item_count"`
	AvgFleschKincaidGrade float64  `yaml:"avg_flesch_kincaid_grade"`
	AvgFleschReadingEase  float64  `yaml:"avg_flesch_reading_ease"`
	Titles                []string `yaml:"titles,omitempty"`
}

// ExportYAML writes every stored search to w, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	recent, err := s.Recent(ctx, s.maxEntries)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(recent))
	for i, e := range recent {
		entries[i] = ExportEntry{
			ID:                    e.ID,
			Query:                 e.Query,
			CreatedAt:             e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			ItemCount:             e.ItemCount,
			AvgFleschKincaidGrade: e.AvgFleschKincaidGrade,
			AvgFleschReadingEase:  e.AvgFleschReadingEase,
		}
		if e.Response != nil {
			for _, it := range e.Response.Items {
				entries[i].Titles = append(entries[i].Titles, it.Snippet.Title)
			}
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
