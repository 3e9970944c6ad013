package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	normalizeBookingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/normalize_bookings"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
)

func newNormalizeCmd(configPath *string) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print canonical bookings of a legacy export as JSON (nothing is stored)",
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

			result, err := env.useCase(nil).Import(cmd.Context(), &normalizeBookings.ImportRequest{
				Year:     flags.year,
				Variant:  domain.SchemaVariant(flags.variant),
				FileName: flags.file,
				Body:     file,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(normalizeBookingsHandler.FromImportResponse(result))
		},
	}
	flags.register(cmd)

	return cmd
}
