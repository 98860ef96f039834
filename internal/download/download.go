package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spoconv/internal/models"
	"github.com/desertthunder/spoconv/internal/shared"
)

// FolderPrefix is prepended to the playlist name to form the download folder.
const FolderPrefix = "Spotify - "

// Downloader extracts and tags one track at a time.
type Downloader struct {
	extractor   Extractor
	tagger      *Tagger
	audioFormat string
}

// NewDownloader creates a Downloader producing files with the audioFormat extension.
func NewDownloader(extractor Extractor, tagger *Tagger, audioFormat string) *Downloader {
	if audioFormat == "" {
		audioFormat = "mp3"
	}
	return &Downloader{extractor: extractor, tagger: tagger, audioFormat: audioFormat}
}

// PlaylistFolder returns "<dir>/Spotify - <playlist>".
func PlaylistFolder(dir, playlist string) string {
	return filepath.Join(dir, FolderPrefix+shared.SanitizeFileName(playlist))
}

// TrackBaseName returns "<artist> - <title>" with unsafe file name characters replaced.
func TrackBaseName(fields models.TrackFields) string {
	return shared.SanitizeFileName(fields.Artist + " - " + fields.Name)
}

// TrackPath returns where DownloadTrack leaves the tagged file.
func (d *Downloader) TrackPath(fields models.TrackFields, dir, playlist string) string {
	return filepath.Join(PlaylistFolder(dir, playlist), TrackBaseName(fields)+"."+d.audioFormat)
}

// outputTemplate escapes '%' in the whole path so it survives yt-dlp's template expansion.
func (d *Downloader) outputTemplate(fields models.TrackFields, dir, playlist string) string {
	base := filepath.Join(PlaylistFolder(dir, playlist), TrackBaseName(fields))
	return strings.ReplaceAll(base, "%", "%%") + ".%(ext)s"
}

// DownloadTrack downloads and tags a single track, returning the file path.
//
// fields must carry a resolved video URL. A failed extraction surfaces as a tagging error when no
// file was produced.
func (d *Downloader) DownloadTrack(ctx context.Context, fields models.TrackFields, dir, playlist string) (string, error) {
	if fields.VideoURL == "" {
		return "", fmt.Errorf("%w: %s - %s", shared.ErrVideoRequired, fields.Artist, fields.Name)
	}

	folder := PlaylistFolder(dir, playlist)
	if err := shared.EnsureDir(folder); err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", shared.ErrDownloadFailed, folder, err)
	}

	if err := d.extractor.Extract(ctx, fields.VideoURL, d.outputTemplate(fields, dir, playlist)); err != nil {
		return "", err
	}

	path := d.TrackPath(fields, dir, playlist)
	tags := TrackTags{Title: fields.Name, Artist: fields.Artist, Album: playlist}
	if err := d.tagger.SaveTags(path, tags); err != nil {
		return "", err
	}

	return path, nil
}
