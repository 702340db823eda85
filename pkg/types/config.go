package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "tubelytics/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":9000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// RequestTimeout bounds each request, including upstream calls (default 15s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout"`

	// MaxQueryLength is the longest query, in runes, the search endpoint accepts (default 200).
	MaxQueryLength int `json:"max_query_length" yaml:"max_query_length" mapstructure:"max_query_length"`

	// PublicURL is the base URL the index page uses to reach the search API
	// when rendering results server-side. Empty means derived from Addr.
	PublicURL string `json:"public_url" yaml:"public_url" mapstructure:"public_url"`
}

// YouTubeConfig holds settings for the YouTube Data API client.
type YouTubeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey authenticates against the YouTube Data API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the API root (default "https://www.googleapis.com/youtube/v3").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxResults is the number of videos requested per search (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// RequestsPerSecond caps outbound API calls; zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig holds settings for the Redis response cache.
type CacheConfig struct {
	// RedisURL enables the cache when set (e.g. "redis://localhost:6379/0").
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" mapstructure:"redis_url"`

	// TTL is how long a search response stays cached (default 10m).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// HistoryConfig holds settings for the search history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default "tubelytics.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxEntries is the number of searches kept, newest first (default 10).
	MaxEntries int `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"`
}

// OverlapPolicy names how SearchUI treats a search started while another
// is still in flight.
type OverlapPolicy string

const (
	PolicyLastResolved   OverlapPolicy = "last-resolved"
	PolicyLastInvoked    OverlapPolicy = "last-invoked"
	PolicyIgnorePending  OverlapPolicy = "ignore-pending"
	PolicyCancelPrevious OverlapPolicy = "cancel-previous"
)

// UIConfig holds settings for the SearchUI client.
type UIConfig struct {
	// ServerURL is the base URL of the TubeLytics API (default "http://localhost:9000").
	ServerURL string `json:"server_url" yaml:"server_url" mapstructure:"server_url"`

	// Policy selects the overlap policy (default last-resolved).
	Policy OverlapPolicy `json:"policy" yaml:"policy" mapstructure:"policy"`

	// VisibleErrors renders an error block into the results container on
	// failure in addition to logging it.
	VisibleErrors bool `json:"visible_errors" yaml:"visible_errors" mapstructure:"visible_errors"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all TubeLytics settings.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	YouTube YouTubeConfig `json:"youtube" yaml:"youtube" mapstructure:"youtube"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	UI      UIConfig      `json:"ui" yaml:"ui" mapstructure:"ui"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when neither a config file nor
// the environment overrides them.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":9000",
			RequestTimeout: 15 * time.Second,
			MaxQueryLength: 200,
		},
		YouTube: YouTubeConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "tubelytics/0.1",
			},
			BaseURL:           "https://www.googleapis.com/youtube/v3",
			MaxResults:        10,
			RequestsPerSecond: 5,
			MaxRetries:        3,
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		History: HistoryConfig{
			DBPath:     "tubelytics.db",
			MaxEntries: 10,
		},
		UI: UIConfig{
			ServerURL: "http://localhost:9000",
			Policy:    PolicyLastResolved,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
