// Package models defines the data passed between the stages of a playlist conversion.
//
//   - [PlaylistReference] : owner and playlist id decoded from a colon-delimited URI
//   - [TrackItem] : one playlist entry as returned by the streaming service
//   - [TrackFields] : the placeholder values resolved for a track
//   - [Playlist] : a fetched page of items plus the display name
package models
