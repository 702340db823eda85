// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns search responses and channel profiles into HTML.
//
// All markup goes through html/template, so text fields are escaped by
// default. Trusted HTML is an explicit opt-in (TrustedHTML or
// Options.TrustedDescriptions) and is still passed through a bluemonday
// policy before it reaches a template.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"net/url"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/tubelytics/pkg/types"
)

// Placeholder stands in for a readability metric that is missing.
const Placeholder = "##"

const watchURL = "https://www.youtube.com/watch?v="

//go:embed templates/*.gohtml
var templateFS embed.FS

// Options tunes a Renderer.
type Options struct {
	// TrustedDescriptions renders item descriptions as sanitized HTML
	// instead of escaped text.
	TrustedDescriptions bool
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	fragments *template.Template
	index     *template.Template
	channel   *template.Template
	policy    *bluemonday.Policy
	opts      Options
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	fragments, err := template.ParseFS(templateFS, "templates/results.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsing result templates: %w", err)
	}
	index, err := template.ParseFS(templateFS, "templates/base.gohtml", "templates/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	channel, err := template.ParseFS(templateFS, "templates/base.gohtml", "templates/channel.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsing channel template: %w", err)
	}

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		fragments: fragments,
		index:     index,
		channel:   channel,
		policy:    policy,
		opts:      opts,
	}, nil
}

// MustNew is New for package-level initialization; it panics on a template error.
func MustNew(opts Options) *Renderer {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// TrustedHTML marks s as markup after sanitizing it.
func (r *Renderer) TrustedHTML(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}

// FormatMetric renders a readability score. Nil, zero and NaN all render
// as Placeholder; other values use the shortest decimal form (5.2, 70.1, 12).
func FormatMetric(v *float64) string {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// VideoURL is the external watch page of a video.
func VideoURL(videoID string) string {
	return watchURL + url.QueryEscape(videoID)
}

// ChannelURL is the internal channel profile route.
func ChannelURL(channelID string) string {
	return "/channel/" + url.PathEscape(channelID)
}

type resultsView struct {
	Query    string
	AvgGrade string
	AvgEase  string
	Items    []itemView
}

type itemView struct {
	Index           int
	Title           string
	ChannelTitle    string
	Description     string
	DescriptionHTML template.HTML
	VideoURL        string
	ChannelURL      string
	ThumbnailURL    string
	Grade           string
	Ease            string
}

// Results renders the header block for query followed by one block per item,
// numbered from 1. A nil resp renders the header with placeholders only.
func (r *Renderer) Results(query string, resp *types.SearchResponse) (template.HTML, error) {
	if resp == nil {
		resp = &types.SearchResponse{}
	}
	view := resultsView{
		Query:    query,
		AvgGrade: FormatMetric(resp.AvgFleschKincaidGrade),
		AvgEase:  FormatMetric(resp.AvgFleschReadingEase),
		Items:    make([]itemView, 0, len(resp.Items)),
	}
	for i, it := range resp.Items {
		iv := itemView{
			Index:        i + 1,
			Title:        it.Snippet.Title,
			ChannelTitle: it.Snippet.ChannelTitle,
			Description:  it.Snippet.Description,
			VideoURL:     VideoURL(it.ID.VideoID),
			ChannelURL:   ChannelURL(it.Snippet.ChannelID),
			ThumbnailURL: it.Snippet.Thumbnails.Default.URL,
			Grade:        FormatMetric(it.Snippet.FKGrade),
			Ease:         FormatMetric(it.Snippet.ReadingEase),
		}
		if r.opts.TrustedDescriptions {
			iv.DescriptionHTML = r.TrustedHTML(it.Snippet.Description)
		}
		view.Items = append(view.Items, iv)
	}
	return r.fragment("results", view)
}

// Error renders a visible error block.
func (r *Renderer) Error(message string) (template.HTML, error) {
	return r.fragment("error", message)
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// PageData feeds the index page.
type PageData struct {
	Title   string
	Query   string
	Results template.HTML
}

// Page writes the index page: the search form and the results container.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "TubeLytics - YouTube Search"
	}
	if err := r.index.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("rendering index page: %w", err)
	}
	return nil
}

type channelView struct {
	Title  string
	Info   *types.ChannelInfo
	Videos []channelVideoView
}

type channelVideoView struct {
	Title       string
	Description string
	VideoURL    string
}

// Channel writes the channel profile page.
func (r *Renderer) Channel(w io.Writer, p *types.ChannelProfile) error {
	view := channelView{Title: "Channel profile"}
	if p != nil {
		view.Info = p.ChannelInfo
		if p.ChannelInfo != nil {
			view.Title = p.ChannelInfo.Snippet.Title
		}
		for _, v := range p.Videos {
			view.Videos = append(view.Videos, channelVideoView{
				Title:       v.Snippet.Title,
				Description: v.Snippet.Description,
				VideoURL:    VideoURL(v.VideoID),
			})
		}
	}
	if err := r.channel.ExecuteTemplate(w, "base", view); err != nil {
		return fmt.Errorf("rendering channel page: %w", err)
	}
	return nil
}
