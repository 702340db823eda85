// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of TubeLytics: the search
// payload served by /tubelytics/search, the channel profile, search history
// entries, and configuration.
//
// The JSON field names follow the YouTube Data API v3 shapes so that upstream
// responses decode directly into these types.
package types

import "time"

// SearchResponse is the body of GET /tubelytics/search. The averages are
// pointers: a response without them is valid and renders a placeholder.
type SearchResponse struct {
	AvgFleschKincaidGrade *float64     `json:"avgFleschKincaidGrade,omitempty" yaml:"avg_flesch_kincaid_grade,omitempty"`
	AvgFleschReadingEase  *float64     `json:"avgFleschReadingEase,omitempty" yaml:"avg_flesch_reading_ease,omitempty"`
	Items                 []SearchItem `json:"items" yaml:"items"`
}

// SearchItem is one video result.
type SearchItem struct {
	ID      VideoID `json:"id" yaml:"id"`
	Snippet Snippet `json:"snippet" yaml:"snippet"`
}

// VideoID identifies the video a search result points at.
type VideoID struct {
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	VideoID string `json:"videoId" yaml:"video_id"`
}

// Snippet carries the display fields of a result. FKGrade and ReadingEase are
// filled in by TubeLytics from the description; YouTube never sends them.
type Snippet struct {
	PublishedAt  string     `json:"publishedAt,omitempty" yaml:"published_at,omitempty"`
	Title        string     `json:"title" yaml:"title"`
	ChannelID    string     `json:"channelId" yaml:"channel_id"`
	ChannelTitle string     `json:"channelTitle" yaml:"channel_title"`
	Description  string     `json:"description" yaml:"description"`
	Thumbnails   Thumbnails `json:"thumbnails" yaml:"thumbnails"`
	ResourceID   *VideoID   `json:"resourceId,omitempty" yaml:"resource_id,omitempty"`
	FKGrade      *float64   `json:"fkGrade,omitempty" yaml:"fk_grade,omitempty"`
	ReadingEase  *float64   `json:"readingEase,omitempty" yaml:"reading_ease,omitempty"`
}

// Thumbnails holds the thumbnail variants YouTube returns. Only Default is
// guaranteed; the larger variants are nil when YouTube omits them.
type Thumbnails struct {
	Default Thumbnail  `json:"default" yaml:"default"`
	Medium  *Thumbnail `json:"medium,omitempty" yaml:"medium,omitempty"`
	High    *Thumbnail `json:"high,omitempty" yaml:"high,omitempty"`
}

// Thumbnail is a single image variant.
type Thumbnail struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Float returns a pointer to v. Handy for building responses and fixtures.
func Float(v float64) *float64 { return &v }

// HistoryEntry records one search served by the API.
type HistoryEntry struct {
	ID                    string          `json:"id" yaml:"id"`
	Query                 string          `json:"query" yaml:"query"`
	CreatedAt             time.Time       `json:"createdAt" yaml:"created_at"`
	ItemCount             int             `json:"itemCount" yaml:"item_count"`
	AvgFleschKincaidGrade float64         `json:"avgFleschKincaidGrade" yaml:"avg_flesch_kincaid_grade"`
	AvgFleschReadingEase  float64         `json:"avgFleschReadingEase" yaml:"avg_flesch_reading_ease"`
	Response              *SearchResponse `json:"response,omitempty" yaml:"response,omitempty"`
}
