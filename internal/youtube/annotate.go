// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package youtube

import (
	"github.com/pdiddy/tubelytics/internal/readability"
	"github.com/pdiddy/tubelytics/pkg/types"
)

// Annotate sets fkGrade and readingEase on every item from its description.
func Annotate(items []types.SearchItem) {
	for i := range items {
		s := readability.Score(items[i].Snippet.Description)
		items[i].Snippet.FKGrade = types.Float(s.Grade)
		items[i].Snippet.ReadingEase = types.Float(s.Ease)
	}
}

// Summarize sets the response averages: the mean of the item scores rounded
// to two decimals, or 0 when there are no items. Items missing a score count
// as 0.
func Summarize(resp *types.SearchResponse) {
	var grade, ease float64
	for _, it := range resp.Items {
		if it.Snippet.FKGrade != nil {
			grade += *it.Snippet.FKGrade
		}
		if it.Snippet.ReadingEase != nil {
			ease += *it.Snippet.ReadingEase
		}
	}
	if n := len(resp.Items); n > 0 {
		grade /= float64(n)
		ease /= float64(n)
	}
	resp.AvgFleschKincaidGrade = types.Float(readability.Round2(grade))
	resp.AvgFleschReadingEase = types.Float(readability.Round2(ease))
}
