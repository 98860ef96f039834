package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/spoconv/internal/shared"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Run("reads credentials table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "[credentials]\nclient_id = \"abc\"\nclient_secret = \"def\"\n")

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "abc" || creds.ClientSecret != "def" {
			t.Errorf("unexpected credentials %+v", creds)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCredentials(filepath.Join(t.TempDir(), "config.toml"))
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("missing section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "[download]\nbinary = \"yt-dlp\"\n")

		_, err := LoadCredentials(path)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if !errors.Is(err, shared.ErrConfig) {
			t.Errorf("expected a configuration error, got %v", err)
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "[credentials]\nclient_id = \"abc\"\n")

		if _, err := LoadCredentials(path); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestEnvProvider(t *testing.T) {
	t.Run("reads environment", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")

		creds, err := NewEnvProvider("").Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "env_id" || creds.ClientSecret != "env_secret" {
			t.Errorf("unexpected credentials %+v", creds)
		}
	})

	t.Run("loads dotenv file", func(t *testing.T) {
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvClientSecret, "")
		os.Unsetenv(EnvClientID)
		os.Unsetenv(EnvClientSecret)

		envFile := filepath.Join(t.TempDir(), ".env")
		writeFile(t, envFile, EnvClientID+"=file_id\n"+EnvClientSecret+"=file_secret\n")

		creds, err := NewEnvProvider(envFile).Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.ClientID != "file_id" || creds.ClientSecret != "file_secret" {
			t.Errorf("unexpected credentials %+v", creds)
		}
	})

	t.Run("missing dotenv file is ignored", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")

		if _, err := NewEnvProvider(filepath.Join(t.TempDir(), ".env")).Load(); err != nil {
			t.Errorf("expected missing .env to be ignored, got %v", err)
		}
	})

	t.Run("missing variables", func(t *testing.T) {
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvClientSecret, "")

		if _, err := NewEnvProvider("").Load(); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestNewProvider(t *testing.T) {
	tc := []struct {
		source  string
		want    string
		wantErr bool
	}{
		{source: "", want: "file"},
		{source: "file", want: "file"},
		{source: "env", want: "env"},
		{source: "vault", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.source, func(t *testing.T) {
			p, err := NewProvider(tt.source, "config.toml", ".env")
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidFlag) {
					t.Errorf("expected ErrInvalidFlag, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("expected provider %s, got %s", tt.want, p.Name())
			}
		})
	}
}
