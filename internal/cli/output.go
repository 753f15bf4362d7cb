// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/tomtom215/soundalike/internal/recommend"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printer writes the human readable output. Styles are bound to w, so they
// render as plain text when w is not a terminal.
type printer struct {
	w       io.Writer
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

func (p *printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, p.heading.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) section(format string, args ...any) {
	fmt.Fprintln(p.w)
	p.title(format, args...)
}

func (p *printer) recommendations(song string, results []recommend.Recommendation) {
	if len(results) == 0 {
		fmt.Fprintf(p.w, "No songs similar to %q.\n", song)
		return
	}
	p.title("Songs similar to %q:", song)
	for i := range results {
		r := &results[i]
		fmt.Fprintf(p.w, "  %2d. %s - %s [%s] %s\n", i+1, r.Name, r.Artist, r.Genre,
			p.muted.Render(fmt.Sprintf("(%.3f)", r.Score)))
	}
}

func (p *printer) summary(s *recommend.ListeningSummary) {
	p.title("User:         %s", s.User)
	fmt.Fprintf(p.w, "Total plays:  %d\n", s.TotalPlays)
	fmt.Fprintf(p.w, "Songs played: %d\n", s.SongsPlayed)
	if s.MostPlayed != "" {
		fmt.Fprintf(p.w, "Most played:  %s\n", s.MostPlayed)
	}
	if len(s.Top) == 0 {
		return
	}
	p.section("Top songs:")
	for i, pc := range s.Top {
		fmt.Fprintf(p.w, "  %2d. %s %s\n", i+1, pc.Song, p.muted.Render(fmt.Sprintf("(%d plays)", pc.Plays)))
	}
}

func (p *printer) report(r *catalogReport) {
	fmt.Fprintf(p.w, "Songs:   %d\n", r.TotalSongs)
	fmt.Fprintf(p.w, "Artists: %d\n", r.TotalArtists)
	fmt.Fprintf(p.w, "Genres:  %d\n", r.TotalGenres)

	if len(r.TopArtists) > 0 {
		p.section("Top artists:")
		for i, ac := range r.TopArtists {
			fmt.Fprintf(p.w, "  %2d. %s %s\n", i+1, ac.Artist, p.muted.Render(fmt.Sprintf("(%d songs)", ac.Songs)))
		}
	}

	if len(r.TopSongs) == 0 {
		return
	}
	if r.Popularity {
		p.section("Most popular songs:")
	} else {
		p.section("Songs:")
	}
	for i := range r.TopSongs {
		item := &r.TopSongs[i]
		if r.Popularity {
			fmt.Fprintf(p.w, "  %2d. %s - %s %s\n", i+1, item.Name, item.Artist,
				p.muted.Render(fmt.Sprintf("(%.1f)", item.Popularity)))
		} else {
			fmt.Fprintf(p.w, "  %2d. %s - %s\n", i+1, item.Name, item.Artist)
		}
	}
}
