package download

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/desertthunder/spoconv/internal/shared"
)

// Extractor downloads a video's audio track to a file described by an output template.
//
// The template uses yt-dlp syntax; "%(ext)s" is replaced with the final extension.
type Extractor interface {
	Extract(ctx context.Context, videoURL, outputTemplate string) error
}

// YTDLPExtractor runs the yt-dlp binary to extract and transcode audio.
type YTDLPExtractor struct {
	Binary      string
	AudioFormat string
	Bitrate     string // kbps, without suffix
}

// NewYTDLPExtractor builds an extractor from the download config, filling blanks with defaults.
func NewYTDLPExtractor(cfg shared.DownloadConfig) *YTDLPExtractor {
	e := &YTDLPExtractor{Binary: cfg.Binary, AudioFormat: cfg.AudioFormat, Bitrate: cfg.Bitrate}
	if e.Binary == "" {
		e.Binary = "yt-dlp"
	}
	if e.AudioFormat == "" {
		e.AudioFormat = "mp3"
	}
	if e.Bitrate == "" {
		e.Bitrate = "192"
	}
	return e
}

// Args returns the yt-dlp command line for one extraction.
func (e *YTDLPExtractor) Args(videoURL, outputTemplate string) []string {
	return []string{
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", e.AudioFormat,
		"--audio-quality", e.Bitrate + "K",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--output", outputTemplate,
		videoURL,
	}
}

func (e *YTDLPExtractor) Extract(ctx context.Context, videoURL, outputTemplate string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.Binary, e.Args(videoURL, outputTemplate)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s: %v: %s", shared.ErrDownloadFailed, videoURL, err, msg)
		}
		return fmt.Errorf("%w: %s: %v", shared.ErrDownloadFailed, videoURL, err)
	}
	return nil
}
