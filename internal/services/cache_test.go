package services

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/spoconv/internal/shared"
)

type memoryCache struct {
	entries   map[string]string
	lookupErr error
	storeErr  error
}

func (m *memoryCache) Lookup(title, artist string) (string, bool, error) {
	if m.lookupErr != nil {
		return "", false, m.lookupErr
	}
	url, ok := m.entries[shared.NormalizeTrackKey(title, artist)]
	return url, ok, nil
}

func (m *memoryCache) Store(title, artist, url string) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.entries[shared.NormalizeTrackKey(title, artist)] = url
	return nil
}

type countingResolver struct {
	calls int
	url   string
	err   error
}

func (c *countingResolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	c.calls++
	return c.url, c.err
}

func TestCachedResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		next := &countingResolver{url: "http://www.youtube.com/watch?v=dQw4w9WgXcQ"}
		cache := &memoryCache{entries: map[string]string{}}
		r := NewCachedResolver(next, cache)

		for range 2 {
			url, err := r.Resolve(ctx, "Song A", "Artist1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if url != next.url {
				t.Errorf("expected %s, got %s", next.url, url)
			}
		}
		if next.calls != 1 {
			t.Errorf("expected 1 upstream call, got %d", next.calls)
		}

		if _, err := r.Resolve(ctx, "song  a", "ARTIST1"); err != nil || next.calls != 1 {
			t.Errorf("expected normalized key to hit cache, calls=%d err=%v", next.calls, err)
		}
	})

	t.Run("resolution errors are not cached", func(t *testing.T) {
		next := &countingResolver{err: shared.ErrVideoNotFound}
		cache := &memoryCache{entries: map[string]string{}}
		r := NewCachedResolver(next, cache)

		if _, err := r.Resolve(ctx, "Song A", "Artist1"); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
		if len(cache.entries) != 0 {
			t.Errorf("expected empty cache, got %v", cache.entries)
		}
	})

	t.Run("cache failures are reported", func(t *testing.T) {
		next := &countingResolver{url: "http://www.youtube.com/watch?v=dQw4w9WgXcQ"}
		cache := &memoryCache{lookupErr: errors.New("locked"), storeErr: errors.New("readonly")}
		r := NewCachedResolver(next, cache)

		var reported []error
		r.OnError = func(err error) { reported = append(reported, err) }

		url, err := r.Resolve(ctx, "Song A", "Artist1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if url != next.url {
			t.Errorf("expected %s, got %s", next.url, url)
		}
		if len(reported) != 2 {
			t.Errorf("expected 2 reported errors, got %d", len(reported))
		}
	})
}
