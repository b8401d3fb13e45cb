package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Baaaki/portfolio/internal/config"
	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the store selected by cfg.DatabaseDriver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	logLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		logLevel = gormlogger.Info
	}

	db, err := Open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connected successfully",
		zap.String("driver", cfg.DatabaseDriver),
	)
	return db, nil
}

// Open is shared by Connect and the test helpers. TranslateError makes
// unique violations surface as gorm.ErrDuplicatedKey on every driver.
func Open(dialector gorm.Dialector, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Project{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Log.Info("Database migration completed")
	return nil
}

// Ping checks the underlying connection pool, used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
