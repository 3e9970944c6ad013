package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CharterService/internal/config"
	"github.com/m04kA/SMC-CharterService/internal/infra/spreadsheet"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/metrics"
)

const defaultConfigPath = "config.toml"

// NewRootCmd корневая команда charterctl: обслуживание исторических выгрузок без HTTP
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "charterctl",
		Short:         "Operator tools for charter booking data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to config.toml")

	root.AddCommand(newNormalizeCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// importFlags общие флаги normalize и import
type importFlags struct {
	file    string
	year    int
	variant string
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "spreadsheet export (.xlsx or .xls)")
	cmd.Flags().IntVar(&f.year, "year", 0, "source year of the export")
	cmd.Flags().StringVar(&f.variant, "variant", "", "schema variant (default: from the year table)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("year")
}

// environment конфигурация и общие зависимости команд
type environment struct {
	cfg        *config.Config
	log        *logger.Logger
	normalizer *normalizeBookings.Normalizer
	reader     *spreadsheet.Reader
}

func loadEnvironment(cmd *cobra.Command, configPath string) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	variants, years, err := cfg.SchemaTables()
	if err != nil {
		return nil, err
	}
	normalizer, err := normalizeBookings.NewNormalizer(variants, years)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:        cfg,
		log:        logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logs.Level, nil),
		normalizer: normalizer,
		reader:     spreadsheet.NewReader(cfg.Import.MaxRows),
	}, nil
}

// useCase use case нормализации; без хранилища, если legacyRepo == nil
func (e *environment) useCase(legacyRepo normalizeBookings.LegacyRepository) *normalizeBookings.UseCase {
	var noMetrics *metrics.Metrics
	return normalizeBookings.NewUseCase(nil, legacyRepo, e.reader, e.normalizer, noMetrics, e.log)
}
