package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// ConfigFileName is the name of the configuration file looked up beside the executable.
const ConfigFileName = "config.toml"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Spotify     SpotifyConfig     `toml:"spotify"`
	YouTube     YouTubeConfig     `toml:"youtube"`
	Download    DownloadConfig    `toml:"download"`
	Cache       CacheConfig       `toml:"cache"`
}

// CredentialsConfig contains the Spotify client-credentials pair.
type CredentialsConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SpotifyConfig contains Spotify endpoints.
type SpotifyConfig struct {
	TokenURL string `toml:"token_url"`
	APIURL   string `toml:"api_url"`
}

// YouTubeConfig contains settings for the search page scraper.
type YouTubeConfig struct {
	SearchURL         string  `toml:"search_url"`
	WatchURL          string  `toml:"watch_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	UserAgent         string  `toml:"user_agent"`
}

// DownloadConfig contains settings for the external extractor and tagging.
type DownloadConfig struct {
	Binary      string `toml:"binary"`
	AudioFormat string `toml:"audio_format"`
	Bitrate     string `toml:"bitrate"`
	AlbumArtist string `toml:"album_artist"`
}

// CacheConfig contains the optional video lookup cache location.
type CacheConfig struct {
	Path string `toml:"path"`
}

// LoadConfig reads a TOML configuration file and overlays it onto [DefaultConfig].
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
