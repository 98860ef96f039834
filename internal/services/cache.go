package services

import (
	"context"
)

// VideoCache stores resolved video URLs between runs.
type VideoCache interface {
	Lookup(title, artist string) (string, bool, error)
	Store(title, artist, url string) error
}

// CachedResolver consults a [VideoCache] before delegating to another [VideoResolver].
//
// Cache failures never fail a resolution; they are reported through OnError when set.
type CachedResolver struct {
	next    VideoResolver
	cache   VideoCache
	OnError func(error)
}

// NewCachedResolver wraps next with cache.
func NewCachedResolver(next VideoResolver, cache VideoCache) *CachedResolver {
	return &CachedResolver{next: next, cache: cache}
}

// Resolve returns a cached URL when present, otherwise resolves and stores the result.
func (c *CachedResolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	url, ok, err := c.cache.Lookup(title, artist)
	if err != nil {
		c.report(err)
	} else if ok {
		return url, nil
	}

	url, err = c.next.Resolve(ctx, title, artist)
	if err != nil {
		return "", err
	}

	if err := c.cache.Store(title, artist, url); err != nil {
		c.report(err)
	}

	return url, nil
}

func (c *CachedResolver) report(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}
