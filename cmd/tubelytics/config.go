// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/tubelytics/pkg/types"
)

const envPrefix = "TUBELYTICS"

// configureViper points v at the config file and the environment.
// TUBELYTICS_YOUTUBE_API_KEY sets youtube.api_key.
func configureViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("tubelytics")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tubelytics"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every key so that the environment can override
// keys absent from the config file.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.max_query_length", d.Server.MaxQueryLength)
	v.SetDefault("server.public_url", d.Server.PublicURL)

	v.SetDefault("youtube.timeout", d.YouTube.Timeout)
	v.SetDefault("youtube.user_agent", d.YouTube.UserAgent)
	v.SetDefault("youtube.api_key", d.YouTube.APIKey)
	v.SetDefault("youtube.base_url", d.YouTube.BaseURL)
	v.SetDefault("youtube.max_results", d.YouTube.MaxResults)
	v.SetDefault("youtube.requests_per_second", d.YouTube.RequestsPerSecond)
	v.SetDefault("youtube.max_retries", d.YouTube.MaxRetries)

	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("history.db_path", d.History.DBPath)
	v.SetDefault("history.max_entries", d.History.MaxEntries)

	v.SetDefault("ui.server_url", d.UI.ServerURL)
	v.SetDefault("ui.policy", string(d.UI.Policy))
	v.SetDefault("ui.visible_errors", d.UI.VisibleErrors)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig merges defaults, the config file already read into v, and the
// environment.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v, types.DefaultConfig())

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return c, nil
}
