// Spotify Web API implementation of [PlaylistSource]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spoconv/internal/credentials"
	"github.com/desertthunder/spoconv/internal/models"
	"github.com/desertthunder/spoconv/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	playlistItemFields = "items(is_local,track(id,name,artists(name),album(name))),total,limit,offset"
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

// SpotifyPlaylistItem represents a track within a playlist context.
//
// Track is nil for items that are no longer available.
type SpotifyPlaylistItem struct {
	AddedAt string        `json:"added_at"`
	IsLocal bool          `json:"is_local"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPlaylistItems represents a page of playlist items.
type SpotifyPlaylistItems struct {
	Items  []SpotifyPlaylistItem `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Next   *string               `json:"next"`
}

type spotifyError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// SpotifyOpts overrides endpoints and the HTTP client. Zero values use defaults.
type SpotifyOpts struct {
	TokenURL   string
	APIURL     string
	HTTPClient *http.Client
}

// SpotifyService implements [PlaylistSource] for the Spotify Web API.
type SpotifyService struct {
	config     *clientcredentials.Config
	baseURL    string
	token      *oauth2.Token
	httpClient *http.Client
}

// NewSpotifyService creates a Spotify service that will authenticate with creds.
func NewSpotifyService(creds credentials.Credentials, opts SpotifyOpts) (*SpotifyService, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.APIURL == "" {
		opts.APIURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &SpotifyService{
		config: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     opts.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		baseURL:    strings.TrimRight(opts.APIURL, "/"),
		httpClient: opts.HTTPClient,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// FetchAccessToken performs the client-credentials exchange against the token endpoint.
func (s *SpotifyService) FetchAccessToken(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Authenticate fetches an access token and keeps it for the rest of the run.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	token, err := s.FetchAccessToken(ctx)
	if err != nil {
		return err
	}
	s.token = token
	return nil
}

// doRequest performs an authenticated GET request to the Spotify API and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: not authenticated, call Authenticate first", shared.ErrAPIRequest)
	}

	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp spotifyError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: spotify status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: spotify status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

// PlaylistTracks fetches one page of raw playlist items starting at offset 0.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string, limit int) (*SpotifyPlaylistItems, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(limit))
	query.Set("offset", "0")
	query.Set("fields", playlistItemFields)

	var page SpotifyPlaylistItems
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, endpoint, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistItems fetches up to limit items of the referenced playlist.
func (s *SpotifyService) PlaylistItems(ctx context.Context, ref models.PlaylistReference, limit int) ([]models.TrackItem, int, error) {
	page, err := s.PlaylistTracks(ctx, ref.PlaylistID, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.TrackItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, item.toModel())
	}

	return items, page.Total, nil
}

// PlaylistName fetches only the name field of the referenced playlist.
func (s *SpotifyService) PlaylistName(ctx context.Context, ref models.PlaylistReference) (string, error) {
	query := url.Values{}
	query.Set("fields", "name")

	var playlist struct {
		Name string `json:"name"`
	}
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(ref.PlaylistID))
	if err := s.doRequest(ctx, endpoint, query, &playlist); err != nil {
		return "", err
	}
	return playlist.Name, nil
}

func (i SpotifyPlaylistItem) toModel() models.TrackItem {
	if i.Track == nil {
		return models.TrackItem{}
	}

	item := models.TrackItem{
		ID:    i.Track.ID,
		Name:  i.Track.Name,
		Album: i.Track.Album.Name,
	}
	for _, a := range i.Track.Artists {
		item.Artists = append(item.Artists, a.Name)
	}
	return item
}
