// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChannelInfo is the channel resource returned by the YouTube channels
// endpoint with part=snippet,statistics.
type ChannelInfo struct {
	ID         string            `json:"id" yaml:"id"`
	Snippet    ChannelSnippet    `json:"snippet" yaml:"snippet"`
	Statistics ChannelStatistics `json:"statistics" yaml:"statistics"`
}

// ChannelSnippet holds the channel display fields.
type ChannelSnippet struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	CustomURL   string     `json:"customUrl,omitempty" yaml:"custom_url,omitempty"`
	PublishedAt string     `json:"publishedAt,omitempty" yaml:"published_at,omitempty"`
	Country     string     `json:"country,omitempty" yaml:"country,omitempty"`
	Thumbnails  Thumbnails `json:"thumbnails" yaml:"thumbnails"`
}

// ChannelStatistics are decimal strings, as YouTube sends them.
type ChannelStatistics struct {
	ViewCount       string `json:"viewCount" yaml:"view_count"`
	SubscriberCount string `json:"subscriberCount" yaml:"subscriber_count"`
	VideoCount      string `json:"videoCount" yaml:"video_count"`
}

// ChannelVideo is a recent upload of a channel. VideoID is resolved from
// id.videoId, falling back to snippet.resourceId.videoId and then to
// UnknownVideoID.
type ChannelVideo struct {
	SearchItem `yaml:",inline"`
	VideoID    string `json:"videoId" yaml:"resolved_video_id"`
}

// UnknownVideoID marks a channel video whose id could not be resolved.
const UnknownVideoID = "N/A"

// ChannelProfile combines a channel's details with its latest videos.
// ChannelInfo is nil when YouTube does not know the channel.
type ChannelProfile struct {
	ChannelInfo *ChannelInfo   `json:"channelInfo" yaml:"channel_info"`
	Videos      []ChannelVideo `json:"videos" yaml:"videos"`
}
