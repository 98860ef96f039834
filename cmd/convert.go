package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/spoconv/internal/credentials"
	"github.com/desertthunder/spoconv/internal/download"
	"github.com/desertthunder/spoconv/internal/models"
	"github.com/desertthunder/spoconv/internal/repositories"
	"github.com/desertthunder/spoconv/internal/services"
	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/desertthunder/spoconv/internal/tasks"
	"github.com/desertthunder/spoconv/internal/ui"
	"github.com/urfave/cli/v3"
)

// Convert fetches a playlist and writes its text listing, resolving and downloading videos on request.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	resolveVideo := cmd.Bool("youtube")
	dl := cmd.Bool("download")
	if dl && !resolveVideo {
		return cli.Exit("You must select youtube for be able to download", exitDownloadWithoutVideo)
	}

	r.setLogLevel(cmd)

	uri := cmd.StringArg("uri")
	if uri == "" {
		return fmt.Errorf("%w: playlist reference (e.g. spotify:user:<user>:playlist:<id>)", shared.ErrMissingArgument)
	}
	if _, err := models.ParseReference(uri); err != nil {
		return err
	}

	config, err := r.loadConfig(cmd, cmd.String("credentials") != "env")
	if err != nil {
		return err
	}

	source, err := r.playlistSource(cmd, config)
	if err != nil {
		return err
	}

	var resolver services.VideoResolver
	if resolveVideo {
		db, err := r.openCache(cmd, config)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}
		resolver = r.videoResolver(config, db)
	}

	var downloader tasks.TrackDownloader
	if dl {
		downloader = r.downloader(config)
	}

	dir := cmd.String("directory")
	if dir == "" {
		dir = shared.DefaultOutputDir()
	}

	policy := tasks.FailFast
	if cmd.Bool("keep-going") {
		policy = tasks.Continue
	}

	var header *string
	if cmd.IsSet("start") {
		start := cmd.String("start")
		header = &start
	}

	engine := tasks.NewConvertEngine(source, resolver, downloader)
	engine.OnProgress = r.logProgress

	result, err := engine.Run(ctx, tasks.ConvertOpts{
		Reference:    uri,
		Name:         cmd.String("name"),
		Directory:    dir,
		Header:       header,
		Format:       cmd.String("format"),
		ResolveVideo: resolveVideo,
		Download:     dl,
		Policy:       policy,
	})
	if err != nil {
		return err
	}

	return r.writePlain("%s", ui.RenderSummary(r.palette, summaryOf(result, dl)))
}

// playlistSource returns the injected source or a Spotify client built from the selected credentials.
func (r *Runner) playlistSource(cmd *cli.Command, config *shared.Config) (services.PlaylistSource, error) {
	if r.source != nil {
		return r.source, nil
	}

	var creds credentials.Credentials
	name := cmd.String("credentials")
	if r.config != nil && !cmd.IsSet("config") && (name == "" || name == "file") {
		creds = credentials.Credentials{
			ClientID:     config.Credentials.ClientID,
			ClientSecret: config.Credentials.ClientSecret,
		}
	} else {
		provider, err := credentials.NewProvider(name, r.configPath(cmd), cmd.String("env-file"))
		if err != nil {
			return nil, err
		}
		if creds, err = provider.Load(); err != nil {
			return nil, err
		}
		r.logger.Debug("loaded credentials", "source", provider.Name())
	}

	return services.NewSpotifyService(creds, services.SpotifyOpts{
		TokenURL:   config.Spotify.TokenURL,
		APIURL:     config.Spotify.APIURL,
		HTTPClient: r.httpClient,
	})
}

// openCache opens the video cache named by --cache or [cache] path. It returns nil when neither is set.
func (r *Runner) openCache(cmd *cli.Command, config *shared.Config) (*sql.DB, error) {
	path := cmd.String("cache")
	if path == "" {
		path = config.Cache.Path
	}
	if path == "" {
		return nil, nil
	}

	db, err := shared.OpenCache(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("opened video cache", "path", path)
	return db, nil
}

func (r *Runner) videoResolver(config *shared.Config, db *sql.DB) services.VideoResolver {
	resolver := r.resolver
	if resolver == nil {
		resolver = services.NewYouTubeResolver(services.YouTubeOpts{
			SearchURL:         config.YouTube.SearchURL,
			WatchURL:          config.YouTube.WatchURL,
			UserAgent:         config.YouTube.UserAgent,
			RequestsPerSecond: config.YouTube.RequestsPerSecond,
			HTTPClient:        r.httpClient,
		})
	}

	if db == nil {
		return resolver
	}

	cached := services.NewCachedResolver(resolver, repositories.NewVideoRepository(db))
	cached.OnError = func(err error) {
		r.logger.Warn("video cache unavailable", "error", err)
	}
	return cached
}

func (r *Runner) downloader(config *shared.Config) *download.Downloader {
	extractor := r.extractor
	if extractor == nil {
		extractor = download.NewYTDLPExtractor(config.Download)
	}
	return download.NewDownloader(extractor, download.NewTagger(config.Download.AlbumArtist), config.Download.AudioFormat)
}

func summaryOf(result *tasks.ConvertResult, dl bool) ui.Summary {
	s := ui.Summary{
		Playlist:   result.Playlist.Name,
		Path:       result.Path,
		Written:    len(result.Lines),
		Total:      result.Playlist.Total,
		Fetched:    len(result.Playlist.Items),
		Downloaded: len(result.Downloaded),
		Download:   dl,
	}
	for _, f := range result.Failures {
		s.Failures = append(s.Failures, f.Error())
	}
	return s
}
