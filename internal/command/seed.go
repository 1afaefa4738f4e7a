package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/barre/internal/devdata"
)

func seedCommand() *cobra.Command {
	var corpus bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample repertoire data",
		Long: "Inserts the canonical sample repertoire (Swan Lake, The Nutcracker,\n" +
			"Giselle, barre steps, and equipment). With --corpus, also generates a\n" +
			"larger randomized corpus; set " + devdata.EnvSeed + " for a reproducible one.\n" +
			"Seeding is additive and intended for a fresh database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := devdata.Fixture(cmd.Context(), store); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "seeded canonical fixture")

			if corpus {
				seed := devdata.Seed()
				if err := devdata.Generate(cmd.Context(), store, seed); err != nil {
					return err
				}
				logger.InfoContext(cmd.Context(), "generated corpus", slog.Uint64("seed", seed))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&corpus, "corpus", false, "also generate a randomized corpus")
	return cmd
}
