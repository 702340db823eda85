// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package youtube queries the YouTube Data API v3 for videos and channels and
// annotates search results with readability scores.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/tubelytics/internal/httputil"
	"github.com/pdiddy/tubelytics/pkg/types"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultMaxResults = 10
	maxAllowedResults = 50
	channelVideoCount = 10
)

// ErrChannelNotFound is returned by ChannelDetails when the channels
// endpoint answers with no items.
var ErrChannelNotFound = errors.New("channel not found")

// APIError reports a non-200 answer from the YouTube API.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("youtube %s returned HTTP %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("youtube %s returned HTTP %d", e.Endpoint, e.Status)
}

// Client talks to the YouTube Data API.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	maxResults int
	retrier    *httputil.Retrier
	logger     *zap.Logger
}

// NewClient builds a Client from cfg. Zero fields fall back to the API
// defaults; a positive RequestsPerSecond installs a shared rate limiter.
func NewClient(cfg types.YouTubeConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxAllowedResults {
		maxResults = maxAllowedResults
	}

	r := &httputil.Retrier{
		Client:     &http.Client{Timeout: cfg.Timeout},
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	}
	if cfg.RequestsPerSecond > 0 {
		r.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		maxResults: maxResults,
		retrier:    r,
		logger:     logger.Named("youtube"),
	}
}

// searchListResponse is the body of the search endpoint.
type searchListResponse struct {
	Items []types.SearchItem `json:"items"`
}

// channelListResponse is the body of the channels endpoint.
type channelListResponse struct {
	Items []types.ChannelInfo `json:"items"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search returns up to MaxResults videos matching query. Every item's
// snippet carries fkGrade and readingEase computed from its description.
// Channel and playlist hits are filtered out upstream since they have no
// videoId to link to.
func (c *Client) Search(ctx context.Context, query string) (*types.SearchResponse, error) {
	params := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"maxResults": {fmt.Sprintf("%d", c.maxResults)},
		"q":          {query},
	}

	var body searchListResponse
	if err := c.get(ctx, "search", params, &body); err != nil {
		return nil, err
	}

	items := body.Items
	if items == nil {
		items = []types.SearchItem{}
	}
	Annotate(items)

	c.logger.Debug("search completed", zap.String("query", query), zap.Int("items", len(items)))
	return &types.SearchResponse{Items: items}, nil
}

// ChannelDetails returns the snippet and statistics of a channel.
func (c *Client) ChannelDetails(ctx context.Context, channelID string) (*types.ChannelInfo, error) {
	params := url.Values{
		"part": {"snippet,statistics"},
		"id":   {channelID},
	}

	var body channelListResponse
	if err := c.get(ctx, "channels", params, &body); err != nil {
		return nil, err
	}
	if len(body.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrChannelNotFound)
	}
	return &body.Items[0], nil
}

// ChannelVideos returns the channel's latest videos, newest first.
func (c *Client) ChannelVideos(ctx context.Context, channelID string) ([]types.SearchItem, error) {
	params := url.Values{
		"part":       {"snippet"},
		"channelId":  {channelID},
		"maxResults": {fmt.Sprintf("%d", channelVideoCount)},
		"order":      {"date"},
		"type":       {"video"},
	}

	var body searchListResponse
	if err := c.get(ctx, "search", params, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.retrier.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("youtube %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode}
		var eb apiErrorBody
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(data, &eb) == nil {
				apiErr.Message = eb.Error.Message
			}
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing youtube %s response: %w", endpoint, err)
	}
	return nil
}
