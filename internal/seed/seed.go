// Package seed populates empty stores with the default admin and the sample
// portfolio projects. Every step is a no-op on a non-empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/pkg/logger"
	"go.uber.org/zap"
)

type UserStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, username, password string, role models.Role) (*models.User, error)
}

type ProjectStore interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, projects []models.Project) error
}

// Admin describes the account created when no user exists yet.
type Admin struct {
	Username string
	Password string
	// DefaultPassword is set when Password is the well-known default, so the
	// operator gets a warning.
	DefaultPassword bool
}

// Result reports what Run actually inserted.
type Result struct {
	AdminCreated    bool
	ProjectsCreated int
}

func Run(ctx context.Context, users UserStore, projects ProjectStore, admin Admin) (Result, error) {
	var res Result

	created, err := SeedAdmin(ctx, users, admin)
	if err != nil {
		return res, err
	}
	res.AdminCreated = created

	n, err := SeedProjects(ctx, projects)
	if err != nil {
		return res, err
	}
	res.ProjectsCreated = n

	return res, nil
}

// SeedAdmin creates the admin account if the credential store is empty.
func SeedAdmin(ctx context.Context, users UserStore, admin Admin) (bool, error) {
	count, err := users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Log.Debug("Users present, skipping admin seed", zap.Int64("count", count))
		return false, nil
	}

	user, err := users.Create(ctx, admin.Username, admin.Password, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	logger.Log.Info("Default admin user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	if admin.DefaultPassword {
		logger.Log.Warn("Admin account uses the well-known default password; set SEED_ADMIN_PASSWORD or rotate it",
			zap.String("username", user.Username),
		)
	}
	return true, nil
}

// SeedProjects inserts the sample projects if the project store is empty.
func SeedProjects(ctx context.Context, projects ProjectStore) (int, error) {
	count, err := projects.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		logger.Log.Debug("Projects present, skipping project seed", zap.Int64("count", count))
		return 0, nil
	}

	samples := SampleProjects()
	if err := projects.CreateBatch(ctx, samples); err != nil {
		return 0, fmt.Errorf("create sample projects: %w", err)
	}

	logger.Log.Info("Initial projects seeded", zap.Int("count", len(samples)))
	return len(samples), nil
}
