package ui

import (
	"strings"
	"testing"
)

func TestRenderSummary(t *testing.T) {
	t.Run("listing only", func(t *testing.T) {
		out := RenderSummary(PlainPalette(), Summary{
			Playlist: "playlist-name",
			Path:     "playlists/playlist-name.txt",
			Written:  2,
			Total:    2,
			Fetched:  2,
		})

		for _, want := range []string{"playlist-name", "✓ playlists/playlist-name.txt", "Tracks: 2"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in summary, got:\n%s", want, out)
			}
		}
		for _, unwanted := range []string{"Downloaded", "Failed", "Only the first"} {
			if strings.Contains(out, unwanted) {
				t.Errorf("did not expect %q in summary, got:\n%s", unwanted, out)
			}
		}
	})

	t.Run("downloads failures and truncation", func(t *testing.T) {
		out := RenderSummary(PlainPalette(), Summary{
			Playlist:   "mix",
			Path:       "mix.txt",
			Written:    1,
			Total:      150,
			Fetched:    100,
			Download:   true,
			Downloaded: 1,
			Failures:   []string{"track 2 (Local File): track has no artist"},
		})

		for _, want := range []string{
			"Downloaded: 1",
			"Failed: 1",
			"✗ track 2 (Local File)",
			"Only the first 100 of 150 tracks were fetched",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in summary, got:\n%s", want, out)
			}
		}
	})

	t.Run("default palette keeps text", func(t *testing.T) {
		out := RenderSummary(DefaultPalette, Summary{Playlist: "mix", Path: "mix.txt", Written: 3})
		if !strings.Contains(out, "mix.txt") || !strings.Contains(out, "3") {
			t.Errorf("expected path and count in styled summary, got:\n%s", out)
		}
	})
}
