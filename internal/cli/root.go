// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package cli implements the soundalike command line.
//
//	soundalike serve
//	soundalike recommend <song> [-k 5] [--json]
//	soundalike history <user> [-k 5] [--json]
//	soundalike stats [-n 10] [--json]
//
// Every command loads configuration with [config.Load]; the persistent
// --dataset and --history flags override the configured file paths.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/soundalike/internal/config"
	"github.com/tomtom215/soundalike/internal/library"
	"github.com/tomtom215/soundalike/internal/logging"
)

// app carries the flags shared by all commands and the configuration they
// resolve to.
type app struct {
	configPath  string
	datasetPath string
	historyPath string
	logLevel    string

	cfg *config.Config
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run commands without shared flag state.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "soundalike",
		Short: "Song similarity recommendations",
		Long: `Soundalike recommends songs that resemble a given song by artist and
genre, and ranks a listener's most played songs from a play-count history.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&a.datasetPath, "dataset", "", "song catalog file, overrides dataset.path")
	flags.StringVar(&a.historyPath, "history", "", "play history file, overrides history.path")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides logging.level")

	root.AddCommand(
		newServeCommand(a),
		newRecommendCommand(a),
		newHistoryCommand(a),
		newStatsCommand(a),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.datasetPath != "" {
		cfg.Dataset.Path = a.datasetPath
	}
	if a.historyPath != "" {
		cfg.History.Path = a.historyPath
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	a.cfg = cfg
	return nil
}

func (a *app) library() (*library.Library, error) {
	lib, err := library.NewFromConfig(a.cfg, logging.WithComponent("library"))
	if err != nil {
		return nil, fmt.Errorf("create library: %w", err)
	}
	return lib, nil
}
