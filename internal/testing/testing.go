// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/spoconv/internal/models"
	"github.com/desertthunder/spoconv/internal/shared"
)

// FakeSource is a test double for services.PlaylistSource that records every call.
type FakeSource struct {
	mu sync.Mutex

	Items    []models.TrackItem
	Total    int
	ListName string
	AuthErr  error
	ItemsErr error

	AuthCalls  int
	ItemsCalls int
	NameCalls  int
	Refs       []models.PlaylistReference
}

// Calls returns the total number of calls made against the source.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.AuthCalls + f.ItemsCalls + f.NameCalls
}

func (f *FakeSource) Authenticate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AuthCalls++
	return f.AuthErr
}

func (f *FakeSource) PlaylistItems(ctx context.Context, ref models.PlaylistReference, limit int) ([]models.TrackItem, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ItemsCalls++
	f.Refs = append(f.Refs, ref)
	if f.ItemsErr != nil {
		return nil, 0, f.ItemsErr
	}

	items := f.Items
	if len(items) > limit {
		items = items[:limit]
	}
	total := f.Total
	if total == 0 {
		total = len(f.Items)
	}
	return items, total, nil
}

func (f *FakeSource) PlaylistName(ctx context.Context, ref models.PlaylistReference) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.NameCalls++
	return f.ListName, nil
}

func (f *FakeSource) Name() string { return "fake" }

// FakeResolver is a test double for services.VideoResolver keyed by track title.
type FakeResolver struct {
	URLs  map[string]string
	Calls []string
}

func (f *FakeResolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	f.Calls = append(f.Calls, title)
	if url, ok := f.URLs[title]; ok {
		return url, nil
	}
	return "", shared.ErrVideoNotFound
}

// FakeExtractor is a test double for download.Extractor that writes an audio stub for each template.
type FakeExtractor struct {
	Ext   string
	Fail  map[string]error // keyed by video URL
	Calls []string
}

func (f *FakeExtractor) Extract(ctx context.Context, videoURL, outputTemplate string) error {
	f.Calls = append(f.Calls, videoURL)
	if err, ok := f.Fail[videoURL]; ok {
		return err
	}

	ext := f.Ext
	if ext == "" {
		ext = "mp3"
	}
	path := strings.ReplaceAll(strings.ReplaceAll(outputTemplate, "%(ext)s", ext), "%%", "%")
	return os.WriteFile(path, AudioStub(), 0644)
}

// AudioStub returns bytes long enough to be read as an untagged audio file.
func AudioStub() []byte {
	return []byte(strings.Repeat("\xff\xfb\x90\x00", 64))
}

// WriteAudioStub writes [AudioStub] to dir/name and returns the path.
func WriteAudioStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, AudioStub(), 0644); err != nil {
		t.Fatalf("Failed to write audio stub %s: %v", path, err)
	}
	return path
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Requests int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Requests++
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
