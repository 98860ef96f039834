// YouTube search page implementation of [VideoResolver]
package services

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/desertthunder/spoconv/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultYTSearchURL = "http://www.youtube.com/results"
	defaultYTWatchURL  = "http://www.youtube.com/watch"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// videoIDPatterns are tried in order against the raw search page.
//
// The first matches the server-rendered result links; the second the embedded initial data blob
// that newer pages ship instead.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`href="/watch\?v=(.{11})`),
	regexp.MustCompile(`"videoId":"([A-Za-z0-9_-]{11})"`),
}

// YouTubeOpts configures a [YouTubeResolver]. Zero values use defaults.
type YouTubeOpts struct {
	SearchURL         string
	WatchURL          string
	UserAgent         string
	RequestsPerSecond float64 // 0 disables throttling
	HTTPClient        *http.Client
}

// YouTubeResolver resolves tracks by scraping the YouTube search results page.
type YouTubeResolver struct {
	searchURL  string
	watchURL   string
	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewYouTubeResolver creates a resolver from opts.
func NewYouTubeResolver(opts YouTubeOpts) *YouTubeResolver {
	if opts.SearchURL == "" {
		opts.SearchURL = defaultYTSearchURL
	}
	if opts.WatchURL == "" {
		opts.WatchURL = defaultYTWatchURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &YouTubeResolver{
		searchURL:  opts.SearchURL,
		watchURL:   opts.WatchURL,
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(limit, 1),
		httpClient: opts.HTTPClient,
	}
}

// SearchQuery builds the search string for a track.
func SearchQuery(title, artist string) string {
	return title + "-" + artist
}

// Resolve searches for "<title>-<artist>" and returns the watch URL of the first result.
func (y *YouTubeResolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrVideoSearch, err)
	}

	query := url.Values{}
	query.Set("search_query", SearchQuery(title, artist))

	body, err := y.fetch(ctx, y.searchURL+"?"+query.Encode())
	if err != nil {
		return "", err
	}

	id, ok := ExtractVideoID(body)
	if !ok {
		return "", fmt.Errorf("%w: %q by %q", shared.ErrVideoNotFound, title, artist)
	}

	return y.WatchURL(id), nil
}

// WatchURL returns the watch page URL for a video id.
func (y *YouTubeResolver) WatchURL(id string) string {
	return y.watchURL + "?v=" + id
}

// fetch GETs a page and returns the decoded body.
//
// Accept-Encoding is set explicitly, so gzip and brotli bodies are decoded here rather than by the transport.
func (y *YouTubeResolver) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrVideoSearch, err)
	}

	req.Header.Set("User-Agent", y.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrVideoSearch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search status %d", shared.ErrVideoNotFound, resp.StatusCode)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read search page: %w", shared.ErrVideoSearch, err)
	}

	return body, nil
}

// decodeBody wraps the response body in the decoder its Content-Encoding names.
//
// Closing the returned reader does not close resp.Body.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create gzip reader: %w", shared.ErrVideoSearch, err)
		}
		return gz, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// ExtractVideoID returns the first video id found in a search results page.
func ExtractVideoID(page []byte) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindSubmatch(page); m != nil {
			return string(m[1]), true
		}
	}
	return "", false
}
