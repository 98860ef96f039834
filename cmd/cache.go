package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/spoconv/internal/repositories"
	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/urfave/cli/v3"
)

// requireCache opens the cache for the cache subcommands, which fail when none is configured.
func (r *Runner) requireCache(cmd *cli.Command) (*sql.DB, string, error) {
	r.setLogLevel(cmd)

	config, err := r.loadConfig(cmd, false)
	if err != nil {
		return nil, "", err
	}

	path := cmd.String("cache")
	if path == "" {
		path = config.Cache.Path
	}
	if path == "" {
		return nil, "", fmt.Errorf("%w: --cache or [cache] path", shared.ErrMissingArgument)
	}

	db, err := shared.OpenCache(path)
	if err != nil {
		return nil, "", err
	}
	return db, path, nil
}

// CacheStats prints the number of cached videos.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, path, err := r.requireCache(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repositories.NewVideoRepository(db).Count()
	if err != nil {
		return err
	}

	return r.writePlainln("%s: %d cached videos", path, n)
}

// CacheForget removes the cached video of one track.
func (r *Runner) CacheForget(ctx context.Context, cmd *cli.Command) error {
	title, artist := cmd.StringArg("title"), cmd.StringArg("artist")
	if title == "" || artist == "" {
		return fmt.Errorf("%w: title and artist", shared.ErrMissingArgument)
	}

	db, _, err := r.requireCache(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewVideoRepository(db).Delete(title, artist); err != nil {
		return err
	}

	r.logger.Info("removed cached video", "title", title, "artist", artist)
	return nil
}

// CacheReset rolls back the cache schema and recreates it empty.
func (r *Runner) CacheReset(ctx context.Context, cmd *cli.Command) error {
	db, path, err := r.requireCache(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back cache: %w", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to recreate cache: %w", err)
	}

	r.logger.Info("cache reset", "path", path)
	return nil
}
