package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spoconv/internal/shared"
)

// Placeholder tokens recognised in output templates.
const (
	TokenName   = "%name%"
	TokenArtist = "%artist%"
	TokenVideo  = "%yt%"
)

// PlaylistReference identifies a playlist by owner and id.
type PlaylistReference struct {
	Raw        string
	User       string
	PlaylistID string
}

// ParseReference decodes a colon-delimited reference such as "spotify:user:alice:playlist:XYZ123".
//
// Only the 3rd (user) and 5th (playlist id) segments are used; their contents are not validated.
func ParseReference(raw string) (PlaylistReference, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 5 {
		return PlaylistReference{}, fmt.Errorf("%w: %q has %d segments, want at least 5", shared.ErrInvalidReference, raw, len(parts))
	}

	return PlaylistReference{Raw: raw, User: parts[2], PlaylistID: parts[4]}, nil
}

func (r PlaylistReference) String() string {
	return r.Raw
}

// TrackItem is a single playlist entry. Artists is empty for local or unavailable tracks.
type TrackItem struct {
	ID      string
	Name    string
	Artists []string
	Album   string
}

// Playlist is one fetched page of items and the name used for output.
type Playlist struct {
	Reference PlaylistReference
	Name      string
	Items     []TrackItem
	Total     int // Total items reported by the service, may exceed len(Items)
}

// Truncated reports whether the service holds more items than were fetched.
func (p *Playlist) Truncated() bool {
	return p.Total > len(p.Items)
}

// TrackFields holds the resolved placeholder values for one track.
type TrackFields struct {
	Name     string
	Artist   string
	VideoURL string // empty unless video resolution was requested
}

// Lookup returns the value for a placeholder token.
//
// %yt% is only known when a video URL was resolved.
func (f TrackFields) Lookup(token string) (string, bool) {
	switch token {
	case TokenName:
		return f.Name, true
	case TokenArtist:
		return f.Artist, true
	case TokenVideo:
		return f.VideoURL, f.VideoURL != ""
	default:
		return "", false
	}
}

// Map returns the fields as a token → value mapping.
func (f TrackFields) Map() map[string]string {
	m := map[string]string{TokenName: f.Name, TokenArtist: f.Artist}
	if f.VideoURL != "" {
		m[TokenVideo] = f.VideoURL
	}
	return m
}
