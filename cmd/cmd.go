// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

const exitDownloadWithoutVideo = -10

// globalFlags are defined on the root command and inherited by subcommands.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (default: config.toml beside the executable)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log every track",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Only log errors",
		},
	}
}

// rootCommand converts a playlist; subcommands handle setup and the cache.
func rootCommand(r *Runner) *cli.Command {
	flags := append(globalFlags(),
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Output file name (default: the playlist's name)",
		},
		&cli.StringFlag{
			Name:    "directory",
			Aliases: []string{"d"},
			Usage:   "Output directory, ending in a path separator (default: playlists/ beside the executable)",
		},
		&cli.BoolFlag{
			Name:    "youtube",
			Aliases: []string{"yt"},
			Usage:   "Resolve each track to a YouTube video URL",
		},
		&cli.BoolFlag{
			Name:    "download",
			Aliases: []string{"dl"},
			Usage:   "Download resolved videos as tagged MP3 files (requires --youtube)",
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Header line written before the tracks",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Per-track template using %name%, %artist% and %yt%",
		},
		&cli.StringFlag{
			Name:  "credentials",
			Usage: "Credential source: file or env",
			Value: "file",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Dotenv file read by --credentials env",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "SQLite file caching resolved video URLs (overrides [cache] path)",
		},
		&cli.BoolFlag{
			Name:  "keep-going",
			Usage: "Skip tracks that fail instead of aborting the run",
		},
	)

	return &cli.Command{
		Name:      "spoconv",
		Usage:     "Convert a Spotify playlist into a text listing, optionally with YouTube links and downloads",
		UsageText: "spoconv [options] spotify:user:<user>:playlist:<id>",
		Version:   "0.1.0",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "uri", UsageText: "playlist reference"},
		},
		Flags:    flags,
		Commands: r.register(),
		Action:   r.Convert,
		// exit codes are handled by main
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// initCommand writes a template config.toml
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Write a template config.toml",
		Action: r.Init,
	}
}

// cacheCommand inspects and maintains the resolved video cache named by --cache or [cache] path
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the resolved video cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show the number of cached videos",
				Action: r.CacheStats,
			},
			{
				Name:  "forget",
				Usage: "Remove the cached video of a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
					&cli.StringArg{Name: "artist"},
				},
				Action: r.CacheForget,
			},
			{
				Name:   "reset",
				Usage:  "Drop and recreate the cache tables",
				Action: r.CacheReset,
			},
		},
	}
}
