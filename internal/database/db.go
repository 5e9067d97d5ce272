package database

import (
	"context"
	"fmt"

	"bakery-api/internal/config"
	"bakery-api/internal/logger"
	"bakery-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.DatabaseDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. On Postgres it also adds the baked_goods -> bakeries
// foreign key, which nullifies bakery_id when a bakery is deleted.
func Migrate(ctx context.Context, db *gorm.DB) error {
	log := logger.FromContext(ctx)
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&models.Bakery{},
		&models.BakedGood{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		log.Debug("Skipping foreign key constraint, dialect has no ALTER TABLE ADD CONSTRAINT")
		return nil
	}

	var constraintExists bool
	if err := db.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.table_constraints
			WHERE table_name = 'baked_goods'
			AND constraint_name = 'fk_baked_goods_bakery'
		)
	`).Scan(&constraintExists).Error; err != nil {
		return fmt.Errorf("checking baked_goods constraint: %w", err)
	}

	if constraintExists {
		log.Debug("baked_goods foreign key constraint already present")
		return nil
	}

	log.Info("Adding baked_goods foreign key constraint")
	if err := db.Exec(`
		ALTER TABLE baked_goods
		ADD CONSTRAINT fk_baked_goods_bakery
		FOREIGN KEY (bakery_id) REFERENCES bakeries(id) ON DELETE SET NULL
	`).Error; err != nil {
		return fmt.Errorf("adding baked_goods constraint: %w", err)
	}
	return nil
}

// Init opens the database and migrates it.
func Init(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithField("driver", cfg.DatabaseDriver).Info("Database connected and migrated")
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("closing connection pool: %w", err)
	}
	return nil
}
