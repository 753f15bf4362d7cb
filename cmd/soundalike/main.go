// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Command soundalike serves and queries song similarity recommendations.
//
// Configuration is loaded via koanf with layered sources (highest priority
// wins): environment variables, config.yaml, built-in defaults.
//
//	export DATASET_PATH=data/songs.csv
//	export HISTORY_PATH=data/plays.csv
//	soundalike serve
//
//	soundalike recommend "Shape of You" -k 5
//	soundalike history user_1 --json
//	soundalike stats -n 10
package main

import (
	"os"

	"github.com/tomtom215/soundalike/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
