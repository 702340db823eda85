// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/tubelytics/pkg/types"
)

// SearchPath is the API route SearchUI calls.
const SearchPath = "/tubelytics/search"

// Fetcher performs the search request for a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (*types.SearchResponse, error)
}

// EncodeQuery percent-encodes s for use as a query parameter value. Spaces
// become %20 rather than '+', so the result is also safe in a path.
func EncodeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// RequestURL builds the search URL for query against baseURL.
func RequestURL(baseURL, query string) string {
	return strings.TrimRight(baseURL, "/") + SearchPath + "?query=" + EncodeQuery(query)
}

// HTTPFetcher calls the TubeLytics search API over HTTP. It sets no timeout
// of its own and never retries; cancellation comes from the context.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher for the API at baseURL. A nil client
// means http.DefaultClient.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{BaseURL: baseURL, Client: client}
}

// wireResponse detects a body without an items array.
type wireResponse struct {
	types.SearchResponse
	Items *[]types.SearchItem `json:"items"`
}

// Fetch issues exactly one GET request. Every error it returns is a
// *RequestFailure.
func (f *HTTPFetcher) Fetch(ctx context.Context, query string) (*types.SearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, RequestURL(f.BaseURL, query), nil)
	if err != nil {
		return nil, &RequestFailure{Query: query, Stage: StageTransport, Err: err}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &RequestFailure{Query: query, Stage: StageTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestFailure{
			Query:      query,
			Stage:      StageStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("search API returned HTTP %d", resp.StatusCode),
		}
	}

	var body wireResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&body); err != nil {
		return nil, &RequestFailure{Query: query, Stage: StageDecode, Err: err}
	}
	// The body must be exactly one JSON document.
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, &RequestFailure{Query: query, Stage: StageDecode, Err: errors.New("unexpected data after JSON body")}
	}
	if body.Items == nil {
		return nil, &RequestFailure{Query: query, Stage: StageDecode, Err: errors.New("response has no items array")}
	}

	out := body.SearchResponse
	out.Items = *body.Items
	return &out, nil
}
