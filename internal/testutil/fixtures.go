package testutil

import (
	"context"
	"testing"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/repository"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin"
	AdminPassword = "Admin123456"
	UserUsername  = "testuser"
	UserPassword  = "Test123456"
)

// CreateTestUser stores a user through the credential store so the password
// is hashed exactly as in production.
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string, role models.Role) *models.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).Create(context.Background(), username, password, role)
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return user
}

func DefaultAdminUser(t *testing.T, db *gorm.DB) *models.User {
	return CreateTestUser(t, db, AdminUsername, AdminPassword, models.RoleAdmin)
}

func DefaultTestUser(t *testing.T, db *gorm.DB) *models.User {
	return CreateTestUser(t, db, UserUsername, UserPassword, models.RoleUser)
}

// CreateTestProject inserts a project with the given title and a fixed
// description and tech list.
func CreateTestProject(t *testing.T, db *gorm.DB, title string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       title,
		Description: title + " description",
		Story: models.ProjectStory{
			Problem:  "problem",
			Solution: "solution",
			Approach: "approach",
		},
		Tech:     models.TechList{"Go", "Gin"},
		Category: "Backend",
	}
	if err := repository.NewProjectRepository(db).Create(context.Background(), project); err != nil {
		t.Fatalf("Failed to create test project %s: %v", title, err)
	}
	return project
}
