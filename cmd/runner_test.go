package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/desertthunder/spoconv/internal/tasks"
	tu "github.com/desertthunder/spoconv/internal/testing"
	"github.com/desertthunder/spoconv/internal/ui"
	"github.com/urfave/cli/v3"
)

// runCommand runs the root command with args, returning stdout and the error.
func runCommand(t *testing.T, r *Runner, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	r.output = out
	err := rootCommand(r).Run(context.Background(), append([]string{"spoconv"}, args...))
	return out.String(), err
}

func testRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Palette == nil {
		opts.Palette = ui.PlainPalette()
	}
	return NewRunner(opts)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := &tu.FakeSource{}
			resolver := &tu.FakeResolver{}
			extractor := &tu.FakeExtractor{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     source,
				Resolver:   resolver,
				Extractor:  extractor,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
			if runner.resolver != resolver {
				t.Error("expected resolver to be set")
			}
			if runner.extractor != extractor {
				t.Error("expected extractor to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config != nil {
				t.Error("expected config to be loaded lazily")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected default output to be stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected default http client")
			}
			if runner.palette != ui.DefaultPalette {
				t.Error("expected default palette")
			}
		})
	})

	t.Run("SetLogger", func(t *testing.T) {
		runner := testRunner(RunnerOpts{})
		logger := shared.NewLogger(io.Discard)
		runner.SetLogger(logger)
		if runner.logger != logger {
			t.Error("expected logger to be replaced")
		}
	})

	t.Run("write failures", func(t *testing.T) {
		runner := testRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlainln("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("register", func(t *testing.T) {
		commands := testRunner(RunnerOpts{}).register()
		names := []string{}
		for _, c := range commands {
			names = append(names, c.Name)
		}
		if strings.Join(names, ",") != "init,cache" {
			t.Errorf("unexpected commands %v", names)
		}
	})

	t.Run("logProgress", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := shared.NewLogger(buf)
		runner := testRunner(RunnerOpts{Logger: logger})

		runner.logProgress(tasks.ProgressUpdate{Phase: tasks.WriteOutput, Message: "Wrote 2 tracks"})
		runner.logProgress(tasks.ProgressUpdate{Phase: tasks.ResolveTracks, Message: "[1/2] Song A"})
		runner.logProgress(tasks.ProgressUpdate{Phase: tasks.ResolveTracks, Message: "[2/2] broken", Data: errors.New("boom")})

		out := buf.String()
		if !strings.Contains(out, "Wrote 2 tracks") {
			t.Errorf("expected info message, got %q", out)
		}
		if strings.Contains(out, "Song A") {
			t.Errorf("expected per-track step to be debug only, got %q", out)
		}
		if !strings.Contains(out, "boom") {
			t.Errorf("expected failure to be logged, got %q", out)
		}

		buf.Reset()
		shared.SetLogLevel(logger, log.DebugLevel)
		runner.logProgress(tasks.ProgressUpdate{Phase: tasks.ResolveTracks, Message: "[1/2] Song A"})
		if !strings.Contains(buf.String(), "Song A") {
			t.Errorf("expected per-track step at debug level, got %q", buf.String())
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		newCmd := func(t *testing.T, args ...string) *cli.Command {
			t.Helper()
			cmd := &cli.Command{Name: "test", Flags: globalFlags(), Action: func(context.Context, *cli.Command) error { return nil }}
			if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}
			return cmd
		}

		t.Run("injected config", func(t *testing.T) {
			config := shared.DefaultConfig()
			runner := testRunner(RunnerOpts{Config: config})

			got, err := runner.loadConfig(newCmd(t), true)
			if err != nil || got != config {
				t.Errorf("expected injected config, got %v (%v)", got, err)
			}
		})

		t.Run("from file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[credentials]\nclient_id = \"id\"\nclient_secret = \"secret\"\n"), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			runner := testRunner(RunnerOpts{Config: shared.DefaultConfig()})

			got, err := runner.loadConfig(newCmd(t, "--config", path), true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Credentials.ClientID != "id" {
				t.Errorf("expected file config to win over injected, got %+v", got.Credentials)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.toml")
			runner := testRunner(RunnerOpts{})

			if _, err := runner.loadConfig(newCmd(t, "-c", path), true); !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}

			got, err := runner.loadConfig(newCmd(t, "-c", path), false)
			if err != nil || got == nil {
				t.Errorf("expected defaults for optional config, got %v (%v)", got, err)
			}
		})
	})
}
