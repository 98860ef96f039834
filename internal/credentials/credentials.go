// package credentials loads the Spotify client-credentials pair from a pluggable source.
//
// [FileProvider] reads the [credentials] table of config.toml; [EnvProvider] reads
// SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, optionally from a .env file.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/joho/godotenv"
)

const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Credentials is a client id and secret pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Validate reports [shared.ErrMissingCredentials] when either value is empty.
func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is empty", shared.ErrMissingCredentials)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret is empty", shared.ErrMissingCredentials)
	}
	return nil
}

// Provider supplies credentials for a run.
type Provider interface {
	Load() (Credentials, error)
	Name() string
}

// FileProvider reads credentials from a TOML config file.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a FileProvider for path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Name() string { return "file" }

// Load reads the [credentials] table from the config file.
func (p *FileProvider) Load() (Credentials, error) {
	return LoadCredentials(p.Path)
}

// LoadCredentials reads client_id and client_secret from the config file at path.
//
// Fails with [shared.ErrMissingConfig] when the file does not exist and
// [shared.ErrMissingCredentials] when either key is absent or empty.
func LoadCredentials(path string) (Credentials, error) {
	config, err := shared.LoadConfig(path)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		ClientID:     config.Credentials.ClientID,
		ClientSecret: config.Credentials.ClientSecret,
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%w (%s)", err, path)
	}

	return creds, nil
}

// EnvProvider reads credentials from the process environment.
//
// When EnvFile is set and exists it is loaded first; variables already present in the environment win.
type EnvProvider struct {
	EnvFile string
}

// NewEnvProvider creates an EnvProvider that loads envFile (if present) before reading variables.
func NewEnvProvider(envFile string) *EnvProvider {
	return &EnvProvider{EnvFile: envFile}
}

func (p *EnvProvider) Name() string { return "env" }

func (p *EnvProvider) Load() (Credentials, error) {
	if p.EnvFile != "" {
		if err := godotenv.Load(p.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("%w: failed to load %s: %v", shared.ErrInvalidConfig, p.EnvFile, err)
		}
	}

	creds := Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%w (set %s and %s)", err, EnvClientID, EnvClientSecret)
	}

	return creds, nil
}

// NewProvider returns the provider registered under name ("file" or "env").
func NewProvider(name, configPath, envFile string) (Provider, error) {
	switch name {
	case "", "file":
		return NewFileProvider(configPath), nil
	case "env":
		return NewEnvProvider(envFile), nil
	default:
		return nil, fmt.Errorf("%w: unknown credentials source %q", shared.ErrInvalidFlag, name)
	}
}
