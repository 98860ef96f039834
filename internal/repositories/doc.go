// Package repositories implements SQLite persistence for the resolved video cache.
//
// Key Implementations:
//   - [VideoRepository] : resolved video URLs keyed by normalized title and artist
//
// Keys are built with [shared.NormalizeTrackKey], so lookups ignore case and repeated whitespace.
package repositories
