package cli

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	legacyRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/legacy"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
)

func newImportCmd(configPath *string) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the raw rows of a legacy export in legacy_charters",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, *configPath)
			if err != nil {
				return err
			}

			file, err := os.Open(flags.file)
			if err != nil {
				return err
			}
			defer file.Close()

			db, err := sql.Open("postgres", env.cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			result, err := env.useCase(legacyRepo.NewRepository(db)).Import(cmd.Context(), &normalizeBookings.ImportRequest{
				Year:     flags.year,
				Variant:  domain.SchemaVariant(flags.variant),
				FileName: flags.file,
				Body:     file,
				Persist:  true,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported year=%d variant=%s rows=%d stored=%d date_fallbacks=%d\n",
				result.Year, result.Variant, result.Rows, result.Persisted, result.FallbackCount)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
