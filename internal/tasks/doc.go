// Package tasks orchestrates a playlist conversion with progress reporting.
//
// # Pipeline
//
// [ConvertEngine.Run] performs, in order:
//
//  1. Parse the playlist reference (before any network call)
//  2. Authenticate and fetch the first [services.PlaylistPageLimit] items, plus the name unless overridden
//  3. Extract fields per track, resolving a video URL when requested
//  4. Render each track and write the text listing
//  5. Optionally download and tag every resolved track
//
// # Failures
//
// A [FailurePolicy] decides what a per-track failure does. [FailFast] aborts the run on the first
// one; [Continue] records it in [ConvertResult.Failures], leaves the track out and moves on.
//
// # Progress Reporting
//
// [ProgressUpdate] values are passed to the engine's OnProgress callback when one is set.
package tasks
