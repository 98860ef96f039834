package ui

import (
	"fmt"
	"strings"
)

// Summary is what a finished conversion reports.
type Summary struct {
	Playlist   string
	Path       string
	Written    int // lines in the listing
	Total      int // tracks reported by the service
	Fetched    int // tracks fetched
	Downloaded int
	Download   bool
	Failures   []string
}

// RenderSummary formats s with the palette's styles.
func RenderSummary(p *Palette, s Summary) string {
	var b strings.Builder

	b.WriteString(p.Title(s.Playlist))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n", p.OK("✓"), s.Path)
	fmt.Fprintf(&b, "  Tracks: %d\n", s.Written)

	if s.Total > s.Fetched {
		fmt.Fprintf(&b, "  %s\n", p.Warn(fmt.Sprintf("Only the first %d of %d tracks were fetched", s.Fetched, s.Total)))
	}

	if s.Download {
		fmt.Fprintf(&b, "  Downloaded: %d\n", s.Downloaded)
	}

	if len(s.Failures) > 0 {
		fmt.Fprintf(&b, "  %s\n", p.Err(fmt.Sprintf("Failed: %d", len(s.Failures))))
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "    %s %s\n", p.Err("✗"), f)
		}
		b.WriteString(p.Help("  Skipped tracks are not in the listing."))
		b.WriteString("\n")
	}

	return b.String()
}
