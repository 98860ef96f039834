package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spoconv/internal/shared"
)

// Video is a cached resolution of a track to a video URL.
type Video struct {
	ID        string
	TrackKey  string
	Title     string
	Artist    string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VideoRepository implements services.VideoCache on top of the videos table.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Get retrieves the cached video for a title and artist. It returns [sql.ErrNoRows] when absent.
func (r *VideoRepository) Get(title, artist string) (*Video, error) {
	query := `
		SELECT id, track_key, title, artist, url, created_at, updated_at
		FROM videos
		WHERE track_key = ?
	`

	var v Video
	err := r.db.QueryRow(query, shared.NormalizeTrackKey(title, artist)).Scan(
		&v.ID, &v.TrackKey, &v.Title, &v.Artist, &v.URL, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Lookup returns the cached URL for a title and artist and whether one was found.
func (r *VideoRepository) Lookup(title, artist string) (string, bool, error) {
	v, err := r.Get(title, artist)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("failed to look up video: %w", err)
	}
	return v.URL, true, nil
}

// Store inserts or replaces the cached URL for a title and artist.
func (r *VideoRepository) Store(title, artist, url string) error {
	now := time.Now()
	query := `
		INSERT INTO videos (id, track_key, title, artist, url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(track_key) DO UPDATE SET url = excluded.url, updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, shared.GenerateID(), shared.NormalizeTrackKey(title, artist), title, artist, url, now, now)
	if err != nil {
		return fmt.Errorf("failed to store video: %w", err)
	}
	return nil
}

// Delete removes the cached entry for a title and artist.
func (r *VideoRepository) Delete(title, artist string) error {
	result, err := r.db.Exec("DELETE FROM videos WHERE track_key = ?", shared.NormalizeTrackKey(title, artist))
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found: %s by %s", title, artist)
	}
	return nil
}

// Count returns the number of cached videos.
func (r *VideoRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return n, nil
}
