package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ecofinds/catalogue-service/config"
	"github.com/ecofinds/catalogue-service/internal/database"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalogue-service",
	Short: "Catalogue service CLI - sustainable product feed ingestion tool",
	Long: `A CLI tool for importing XML shopping feeds (RSS 2.0, Atom, and generic
product-list shapes) into the sustainable product catalogue, and for querying
the catalogue with the same filters the HTTP API supports.`,
	PersistentPreRunE: persistentPreRun,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes dependencies.
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	logger = initLogger()

	// Only commands that touch the catalogue need a database; parse works
	// entirely offline.
	cmdNeedsDB := cmd.Name() == "import" || cmd.Name() == "query"

	if cmdNeedsDB {
		if err := initDatabase(); err != nil {
			return fmt.Errorf("database initialization failed: %w", err)
		}
		logger.Info().Msg("Database connected")
	}

	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if cfg != nil {
		if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsed
		}
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr}
	l := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &l
}

func initDatabase() error {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL not set; this command requires a durable store")
	}
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	return database.Connect(
		context.Background(),
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	)
}
