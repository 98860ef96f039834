package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/spoconv/internal/formatter"
	"github.com/desertthunder/spoconv/internal/models"
	"github.com/desertthunder/spoconv/internal/services"
	"github.com/desertthunder/spoconv/internal/shared"
)

// FailurePolicy decides whether a per-track failure aborts the run.
type FailurePolicy int

const (
	FailFast FailurePolicy = iota // abort on the first failed track
	Continue                      // record the failure and skip the track
)

func (p FailurePolicy) String() string {
	if p == Continue {
		return "continue"
	}
	return "fail_fast"
}

// TrackDownloader downloads a resolved track. Implemented by download.Downloader.
type TrackDownloader interface {
	DownloadTrack(ctx context.Context, fields models.TrackFields, dir, playlist string) (string, error)
}

// ConvertOpts are the inputs of a single conversion.
type ConvertOpts struct {
	Reference    string  // colon-delimited playlist reference
	Name         string  // overrides the fetched playlist name when set
	Directory    string  // output directory, expected to end in a separator
	Header       *string // first line of the listing when set
	Format       string  // optional per-track template
	ResolveVideo bool
	Download     bool
	Policy       FailurePolicy
}

// TrackFailure records a track that was skipped under [Continue].
type TrackFailure struct {
	Index int // zero-based position within the phase's track list
	Phase Phase
	Track string
	Err   error
}

func (f TrackFailure) Error() string {
	return fmt.Sprintf("track %d (%s): %v", f.Index+1, f.Track, f.Err)
}

// ConvertResult contains everything a conversion produced.
type ConvertResult struct {
	Playlist   *models.Playlist
	Fields     []models.TrackFields
	Lines      []string
	Path       string   // written listing
	Downloaded []string // tagged audio files
	Failures   []TrackFailure
}

// ConvertEngine runs conversions against a playlist source.
//
// resolver is only needed for video resolution and downloader only for downloads.
type ConvertEngine struct {
	source     services.PlaylistSource
	resolver   services.VideoResolver
	downloader TrackDownloader

	OnProgress func(ProgressUpdate)
}

// NewConvertEngine creates a new ConvertEngine with the provided collaborators.
func NewConvertEngine(source services.PlaylistSource, resolver services.VideoResolver, downloader TrackDownloader) *ConvertEngine {
	return &ConvertEngine{source: source, resolver: resolver, downloader: downloader}
}

func (e *ConvertEngine) sendProgress(update ProgressUpdate) {
	if e.OnProgress != nil {
		e.OnProgress(update)
	}
}

// ValidateOpts checks flag combinations that must be rejected before any network call.
func ValidateOpts(opts ConvertOpts) error {
	if opts.Download && !opts.ResolveVideo {
		return fmt.Errorf("%w: download requires video resolution", shared.ErrInvalidFlag)
	}
	return nil
}

// ExtractFields builds the placeholder values for one item, resolving its video when asked.
//
// The first listed artist is used. Items without artists fail with [shared.ErrMissingArtist].
func ExtractFields(ctx context.Context, item models.TrackItem, resolveVideo bool, resolver services.VideoResolver) (models.TrackFields, error) {
	if len(item.Artists) == 0 {
		return models.TrackFields{}, fmt.Errorf("%w: %q", shared.ErrMissingArtist, item.Name)
	}

	fields := models.TrackFields{Name: item.Name, Artist: item.Artists[0]}
	if !resolveVideo {
		return fields, nil
	}

	url, err := resolver.Resolve(ctx, fields.Name, fields.Artist)
	if err != nil {
		return models.TrackFields{}, err
	}
	fields.VideoURL = url
	return fields, nil
}

// Run performs a full conversion.
//
// Errors abort the run and are returned alongside whatever was produced so far.
func (e *ConvertEngine) Run(ctx context.Context, opts ConvertOpts) (*ConvertResult, error) {
	if err := ValidateOpts(opts); err != nil {
		return nil, err
	}

	ref, err := models.ParseReference(opts.Reference)
	if err != nil {
		return nil, err
	}

	if e.source == nil {
		return nil, fmt.Errorf("%w: no playlist source configured", shared.ErrAPIRequest)
	}
	if opts.ResolveVideo && e.resolver == nil {
		return nil, fmt.Errorf("%w: no video resolver configured", shared.ErrInvalidFlag)
	}
	if opts.Download && e.downloader == nil {
		return nil, fmt.Errorf("%w: no downloader configured", shared.ErrInvalidFlag)
	}

	e.sendProgress(authenticateUpdate(e.source.Name()))
	if err := e.source.Authenticate(ctx); err != nil {
		return nil, err
	}

	e.sendProgress(fetchingPlaylistUpdate(ref))
	playlist, err := services.FetchPlaylist(ctx, e.source, ref, opts.Name)
	if err != nil {
		return nil, err
	}
	e.sendProgress(foundPlaylistUpdate(playlist))

	result := &ConvertResult{Playlist: playlist}

	if err := e.extractAll(ctx, opts, result); err != nil {
		return result, err
	}

	for _, fields := range result.Fields {
		result.Lines = append(result.Lines, formatter.RenderTrack(fields, opts.Format, opts.ResolveVideo))
	}

	path, err := formatter.WriteTracks(opts.Directory, playlist.Name, result.Lines, opts.Header)
	if err != nil {
		return result, err
	}
	result.Path = path
	e.sendProgress(wroteOutputUpdate(path, len(result.Lines)))

	if opts.Download {
		if err := e.downloadAll(ctx, opts, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (e *ConvertEngine) extractAll(ctx context.Context, opts ConvertOpts, result *ConvertResult) error {
	items := result.Playlist.Items
	total := len(items)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.sendProgress(resolveTrackUpdate(i+1, total, item))

		fields, err := ExtractFields(ctx, item, opts.ResolveVideo, e.resolver)
		if err != nil {
			if opts.Policy == FailFast {
				return err
			}
			result.Failures = append(result.Failures, TrackFailure{Index: i, Phase: ResolveTracks, Track: item.Name, Err: err})
			e.sendProgress(trackFailedUpdate(ResolveTracks, i+1, total, item.Name, err))
			continue
		}

		result.Fields = append(result.Fields, fields)
	}

	return nil
}

func (e *ConvertEngine) downloadAll(ctx context.Context, opts ConvertOpts, result *ConvertResult) error {
	total := len(result.Fields)

	for i, fields := range result.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.sendProgress(downloadTrackUpdate(i+1, total, fields))

		path, err := e.downloader.DownloadTrack(ctx, fields, opts.Directory, result.Playlist.Name)
		if err != nil {
			if opts.Policy == FailFast {
				return err
			}
			result.Failures = append(result.Failures, TrackFailure{Index: i, Phase: DownloadTracks, Track: fields.Name, Err: err})
			e.sendProgress(trackFailedUpdate(DownloadTracks, i+1, total, fields.Name, err))
			continue
		}

		result.Downloaded = append(result.Downloaded, path)
		e.sendProgress(downloadedTrackUpdate(i+1, total, path))
	}

	return nil
}
