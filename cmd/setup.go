package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the template configuration file.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	r.setLogLevel(cmd)
	path := r.configPath(cmd)

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrConfig, err)
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlainln("Add your Spotify client_id and client_secret to %s", path)
}
