// Package ui renders the end-of-run summary with lipgloss styles.
//
// [Palette] holds the named styles; [RenderSummary] lays out the output file, track counts, downloads
// and any failed tracks.
package ui
