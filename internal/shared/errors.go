package shared

import "fmt"

var (
	// Configuration errors
	ErrConfig             = fmt.Errorf("configuration error")
	ErrMissingConfig      = fmt.Errorf("%w: configuration not found", ErrConfig)
	ErrInvalidConfig      = fmt.Errorf("%w: invalid configuration", ErrConfig)
	ErrMissingCredentials = fmt.Errorf("%w: missing credentials", ErrConfig)

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API and playlist errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrInvalidReference = fmt.Errorf("%w: malformed playlist reference", ErrAPIRequest)
	ErrMissingArtist    = fmt.Errorf("track has no artist")

	// Video resolution errors
	ErrVideoNotFound = fmt.Errorf("no video found")
	ErrVideoSearch   = fmt.Errorf("video search failed")

	// Download errors
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrTagFailed      = fmt.Errorf("%w: tagging failed", ErrDownloadFailed)
	ErrVideoRequired  = fmt.Errorf("%w: track has no resolved video URL", ErrDownloadFailed)

	// Output errors
	ErrWriteFailed = fmt.Errorf("write failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
