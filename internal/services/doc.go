// Package services implements the network collaborators of a playlist conversion.
//
// # Playlist Source
//
// [SpotifyService] implements [PlaylistSource]. It authenticates once per run with the
// OAuth2 client-credentials grant (golang.org/x/oauth2/clientcredentials) and keeps the
// resulting bearer token for the rest of the run without refreshing it.
//
// Only the first [PlaylistPageLimit] items are requested; there is no pagination.
//
// # Video Resolution
//
// [YouTubeResolver] implements [VideoResolver] by scraping the YouTube search results page
// for the first "/watch?v=" link. The page structure is undocumented and may change at any
// time, so callers depend only on the [VideoResolver] interface.
//
// [CachedResolver] decorates any resolver with a [VideoCache] (see repositories.VideoRepository).
//
// # Error Handling
//
// Services wrap sentinel errors from the shared package:
//   - [shared.ErrAuthFailed] : token exchange failed or was rejected
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrVideoNotFound] : no video id found in the search results
package services
