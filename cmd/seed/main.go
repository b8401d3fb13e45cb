package main

import (
	"context"
	"os"

	"github.com/Baaaki/portfolio/internal/config"
	"github.com/Baaaki/portfolio/internal/database"
	"github.com/Baaaki/portfolio/internal/repository"
	"github.com/Baaaki/portfolio/internal/seed"
	"github.com/Baaaki/portfolio/pkg/logger"
	"go.uber.org/zap"
)

// seed migrates the schema and inserts the admin account and sample projects
// into an empty database, then exits. The server performs the same step on
// start-up; this binary is for provisioning without serving.
func main() {
	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init(true)
		logger.Log.Fatal("Failed to load config", zap.Error(err))
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	res, err := seed.Run(context.Background(),
		repository.NewUserRepository(db),
		repository.NewProjectRepository(db),
		seed.Admin{
			Username:        cfg.SeedAdminUsername,
			Password:        cfg.SeedAdminPassword,
			DefaultPassword: cfg.UsesDefaultAdminPassword(),
		},
	)
	if err != nil {
		logger.Log.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Log.Info("Seeding finished",
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("projects_created", res.ProjectsCreated),
	)
}
