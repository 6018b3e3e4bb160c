package cli

import (
	"github.com/spf13/cobra"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

func newSeedCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load property projects from CSV into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := cfg.Postgres.Open()
			if err != nil {
				return err
			}

			n, err := estate.SeedFromCSV(cmd.Context(), estate.NewStore(db), csvPath)
			if err != nil {
				return err
			}

			logx.Info().Int("projects", n).Str("path", csvPath).Msg("Seed complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "data/properties.csv", "path to the properties CSV file")
	return cmd
}
