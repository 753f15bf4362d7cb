// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/soundalike/internal/library"
	"github.com/tomtom215/soundalike/internal/recommend"
)

func newRecommendCommand(a *app) *cobra.Command {
	var (
		k      int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "recommend <song>",
		Short: "List songs similar to a song",
		Long: `Lists the k songs of the catalog most similar to the named song by
artist and genre, most similar first. The song itself is never listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			results, err := lib.Recommend(cmd.Context(), args[0], k)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			newPrinter(cmd.OutOrStdout()).recommendations(args[0], results)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 0, "number of results (default recommend.default_k)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	var (
		k      int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history <user>",
		Short: "Show a user's most played songs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			summary, err := lib.ListeningSummary(cmd.Context(), args[0], k)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			newPrinter(cmd.OutOrStdout()).summary(summary)
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 0, "number of songs (default recommend.default_k)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

// catalogReport is the JSON form of the stats command.
type catalogReport struct {
	*library.CatalogSummary
	TopArtists []recommend.ArtistCount `json:"top_artists"`
	TopSongs   []recommend.Item        `json:"top_songs"`
}

func newStatsCommand(a *app) *cobra.Command {
	var (
		n      int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long: `Shows catalog totals with the artists credited on the most songs and the
most popular songs. Without a popularity column songs are listed in
catalog order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			report := catalogReport{}
			if report.CatalogSummary, err = lib.Stats(ctx); err != nil {
				return err
			}
			if report.TopArtists, err = lib.TopArtists(ctx, n); err != nil {
				return err
			}
			if report.TopSongs, err = lib.TopSongs(ctx, n); err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			newPrinter(cmd.OutOrStdout()).report(&report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "top", "n", 10, "number of artists and songs to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}
