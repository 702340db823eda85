// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/tubelytics/internal/cache"
	"github.com/pdiddy/tubelytics/internal/history"
	"github.com/pdiddy/tubelytics/internal/render"
	"github.com/pdiddy/tubelytics/internal/secrets"
	"github.com/pdiddy/tubelytics/internal/server"
	"github.com/pdiddy/tubelytics/internal/youtube"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search API and HTML pages",
	Long: `Serve starts the HTTP server: GET /tubelytics/search returns annotated
YouTube results, /channel/{id} renders a channel profile, and / renders the
search page. Searches are cached in Redis when cache.redis_url is set and
recorded in the SQLite history database.

The YouTube API key comes from youtube.api_key, TUBELYTICS_YOUTUBE_API_KEY,
or the youtube-api-key file in the secrets directory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr, :9000)")
	serveCmd.Flags().Bool("trusted-descriptions", false, "render descriptions as sanitized HTML instead of text")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	key, err := secrets.ResolveAPIKey(cfg.YouTube.APIKey, secretsDir)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no YouTube API key: set youtube.api_key, TUBELYTICS_YOUTUBE_API_KEY or %s/%s",
			secretsDir, secrets.YouTubeAPIKey)
	}
	cfg.YouTube.APIKey = key

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	trusted, _ := cmd.Flags().GetBool("trusted-descriptions")

	renderer, err := render.New(render.Options{TrustedDescriptions: trusted})
	if err != nil {
		return err
	}

	c, err := cache.Open(ctx, cfg.Cache, logger.Named("cache"))
	if err != nil {
		return err
	}
	defer c.Close()
	if c == nil {
		logger.Info("response cache disabled")
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(server.Options{
		Config:   cfg.Server,
		Searcher: youtube.NewClient(cfg.YouTube, logger),
		Cache:    c,
		History:  store,
		Renderer: renderer,
		Logger:   logger.Named("http"),
	})
	if err != nil {
		return err
	}

	logger.Info("starting tubelytics",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("history", cfg.History.DBPath),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
