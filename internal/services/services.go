// package services defines the collaborators a conversion talks to over HTTP
//
// Spotify (playlist source), YouTube (video resolution)
package services

import (
	"context"

	"github.com/desertthunder/spoconv/internal/models"
)

// PlaylistPageLimit is the number of items requested from the playlist source.
// Only the first page is fetched; longer playlists are truncated.
const PlaylistPageLimit = 100

// PlaylistSource fetches playlist contents from a streaming service.
type PlaylistSource interface {
	// Authenticate obtains the access token used by every later call.
	Authenticate(ctx context.Context) error

	// PlaylistItems fetches up to limit items starting at offset 0, along with the total item count.
	PlaylistItems(ctx context.Context, ref models.PlaylistReference, limit int) ([]models.TrackItem, int, error)

	// PlaylistName fetches the display name of a playlist.
	PlaylistName(ctx context.Context, ref models.PlaylistReference) (string, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// VideoResolver finds a video URL for a track.
//
// Implementations return an error wrapping [shared.ErrVideoNotFound] when there is no match.
type VideoResolver interface {
	Resolve(ctx context.Context, title, artist string) (string, error)
}

// FetchPlaylist fetches the first [PlaylistPageLimit] items of ref and, unless overrideName is
// set, the playlist's display name.
func FetchPlaylist(ctx context.Context, src PlaylistSource, ref models.PlaylistReference, overrideName string) (*models.Playlist, error) {
	items, total, err := src.PlaylistItems(ctx, ref, PlaylistPageLimit)
	if err != nil {
		return nil, err
	}

	name := overrideName
	if name == "" {
		if name, err = src.PlaylistName(ctx, ref); err != nil {
			return nil, err
		}
	}

	return &models.Playlist{Reference: ref, Name: name, Items: items, Total: total}, nil
}
