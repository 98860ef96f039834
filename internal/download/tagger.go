package download

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/spoconv/internal/shared"
)

// DefaultAlbumArtist is written to TPE2 when no label is configured.
const DefaultAlbumArtist = "Spotify"

// TrackTags are the frames written to a downloaded file.
type TrackTags struct {
	Title  string
	Artist string
	Album  string
}

// Tagger writes ID3 tags to MP3 files.
type Tagger struct {
	AlbumArtist string
}

// NewTagger creates a Tagger. An empty albumArtist uses [DefaultAlbumArtist].
func NewTagger(albumArtist string) *Tagger {
	if albumArtist == "" {
		albumArtist = DefaultAlbumArtist
	}
	return &Tagger{AlbumArtist: albumArtist}
}

// SaveTags writes title (TIT2), artist (TPE1), album (TALB) and album artist (TPE2) to the file at path.
//
// The file must already exist.
func (t *Tagger) SaveTags(path string, tags TrackTags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", shared.ErrTagFailed, path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(tags.Title)
	tag.SetArtist(tags.Artist)
	tag.SetAlbum(tags.Album)
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, t.AlbumArtist)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: %s: %w", shared.ErrTagFailed, path, err)
	}
	return nil
}
