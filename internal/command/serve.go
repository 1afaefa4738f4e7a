package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/barre/internal/api"
	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			tokens := sec.NewTokenIssuer([]byte(cfg.TokenSecret), 0)
			srv := api.New(cfg, logger, store, tokens)

			addr, err := server.Start(ctx, grp, cfg.Address, srv)
			if err != nil {
				return err
			}
			logger.InfoContext(ctx,
				"starting API server...",
				slog.String("address", addr),
				slog.Bool("dev_mode", cfg.DevMode),
			)
			return grp.Wait()
		},
	}
}
