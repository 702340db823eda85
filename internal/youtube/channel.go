// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package youtube

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tubelytics/pkg/types"
)

// ChannelProfile fetches a channel's details and latest videos concurrently
// and combines them. An unknown channel yields a profile with a nil
// ChannelInfo rather than an error; any other failure aborts both calls.
func (c *Client) ChannelProfile(ctx context.Context, channelID string) (*types.ChannelProfile, error) {
	var (
		info   *types.ChannelInfo
		videos []types.SearchItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = c.ChannelDetails(gctx, channelID)
		if errors.Is(err, ErrChannelNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = c.ChannelVideos(gctx, channelID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.ChannelProfile{
		ChannelInfo: info,
		Videos:      ResolveVideos(videos),
	}, nil
}

// ResolveVideos pairs every item with its video id, taken from id.videoId,
// then snippet.resourceId.videoId, then types.UnknownVideoID.
func ResolveVideos(items []types.SearchItem) []types.ChannelVideo {
	out := make([]types.ChannelVideo, 0, len(items))
	for _, it := range items {
		id := it.ID.VideoID
		if id == "" && it.Snippet.ResourceID != nil {
			id = it.Snippet.ResourceID.VideoID
		}
		if id == "" {
			id = types.UnknownVideoID
		}
		out = append(out, types.ChannelVideo{SearchItem: it, VideoID: id})
	}
	return out
}
