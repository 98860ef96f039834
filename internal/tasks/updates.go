package tasks

import (
	"fmt"

	"github.com/desertthunder/spoconv/internal/models"
)

// ProgressUpdate represents a progress event during a conversion.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Authenticate Phase = iota
	FetchPlaylist
	ResolveTracks
	WriteOutput
	DownloadTracks
)

func (p Phase) String() string {
	switch p {
	case Authenticate:
		return "authenticate"
	case FetchPlaylist:
		return "fetch_playlist"
	case ResolveTracks:
		return "resolve_tracks"
	case WriteOutput:
		return "write_output"
	case DownloadTracks:
		return "download_tracks"
	default:
		return ""
	}
}

func authenticateUpdate(source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authenticate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Authenticating with %s...", source),
	}
}

func fetchingPlaylistUpdate(ref models.PlaylistReference) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s...", ref.PlaylistID),
	}
}

func foundPlaylistUpdate(pl *models.Playlist) ProgressUpdate {
	msg := fmt.Sprintf("Found playlist: %s (%d tracks)", pl.Name, len(pl.Items))
	if pl.Truncated() {
		msg = fmt.Sprintf("Found playlist: %s (first %d of %d tracks)", pl.Name, len(pl.Items), pl.Total)
	}
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    pl,
	}
}

func resolveTrackUpdate(step, total int, item models.TrackItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, item.Name),
	}
}

func trackFailedUpdate(phase Phase, step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
		Data:    err,
	}
}

func wroteOutputUpdate(path string, lines int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote %d tracks to %s", lines, path),
		Data:    path,
	}
}

func downloadTrackUpdate(step, total int, fields models.TrackFields) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Downloading: %s - %s...", step, total, fields.Artist, fields.Name),
	}
}

func downloadedTrackUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, path),
		Data:    path,
	}
}
