package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bakery-api/internal/config"
	"bakery-api/internal/database"
	"bakery-api/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	driver  string
	dsn     string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bakeryctl",
	Short: "Operator tooling for the bakery API database",
	Long: `bakeryctl manages the bakery API's database: it applies the schema and
loads the sample catalogue of bakeries and baked goods.

Connection settings come from the same environment variables as the server
(DATABASE_DRIVER, DATABASE_DSN) and can be overridden with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver (postgres or sqlite)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database connection string")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// openDatabase loads configuration, applies flag overrides and returns a migrated database.
func openDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if driver != "" {
		cfg.DatabaseDriver = driver
	}
	if dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logrus.DebugLevel
	}
	logger.InitLogger(level)

	db, err := database.Init(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database setup failed: %w", err)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logrus.WithError(err).Warn("Closing database failed")
	}
}
