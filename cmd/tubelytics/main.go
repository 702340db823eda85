// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tubelytics CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/tubelytics/internal/logging"
	"github.com/pdiddy/tubelytics/internal/secrets"
	"github.com/pdiddy/tubelytics/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the merged configuration, loaded before any subcommand runs.
	cfg    types.Config
	logger = zap.NewNop()
)

// rootCmd is the base command for the tubelytics CLI.
var rootCmd = &cobra.Command{
	Use:   "tubelytics",
	Short: "Search YouTube and score video descriptions for readability",
	Long: `tubelytics searches YouTube through the Data API v3 and annotates every
result with the Flesch-Kincaid grade level and Flesch reading ease of its
description.

Run "tubelytics serve" for the HTTP API and search page, or "tubelytics
search" to render results from a running server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		zap.ReplaceGlobals(logger)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tubelytics.yaml or ~/.config/tubelytics/tubelytics.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding secret files such as youtube-api-key")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configureViper(viper.GetViper(), cfgFile)
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
