package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Baaaki/portfolio/internal/cache"
	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectInput is the body of a create request.
type ProjectInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Story       *models.ProjectStory `json:"story"`
	Image       string               `json:"image"`
	Github      string               `json:"github"`
	Live        string               `json:"live"`
	Tech        []string             `json:"tech"`
	Category    string               `json:"category"`
	Gradient    string               `json:"gradient"`
}

// ProjectPatch lists the fields an update may touch. Nil means "leave as
// is"; keys outside this struct are dropped by the JSON decoder.
type ProjectPatch struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Story       *models.ProjectStory `json:"story"`
	Image       *string              `json:"image"`
	Github      *string              `json:"github"`
	Live        *string              `json:"live"`
	Tech        *[]string            `json:"tech"`
	Category    *string              `json:"category"`
	Gradient    *string              `json:"gradient"`
}

type ProjectService struct {
	projects ProjectStore
	cache    cache.ProjectCache
}

func NewProjectService(projects ProjectStore, projectCache cache.ProjectCache) *ProjectService {
	if projectCache == nil {
		projectCache = cache.NoopCache{}
	}
	return &ProjectService{
		projects: projects,
		cache:    projectCache,
	}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	cached, generation, ok := s.cache.GetProjects(ctx)
	if ok {
		logger.Log.Debug("Project list served from cache", zap.Int("count", len(cached)))
		return cached, nil
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		logger.Log.Error("Failed to list projects", zap.Error(err))
		return nil, err
	}

	s.cache.SetProjects(ctx, generation, projects)
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, newValidationError("title", "title is required")
	}
	if description == "" {
		return nil, newValidationError("description", "description is required")
	}
	if err := validateLengths(title, in.Category, in.Gradient); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		Image:       in.Image,
		Github:      in.Github,
		Live:        in.Live,
		Tech:        models.TechList(in.Tech),
		Category:    in.Category,
		Gradient:    in.Gradient,
	}
	if in.Story != nil {
		project.Story = *in.Story
	}

	if err := s.projects.Create(ctx, project); err != nil {
		logger.Log.Error("Failed to create project",
			zap.String("title", title),
			zap.Error(err),
		)
		return nil, err
	}
	s.cache.Invalidate(ctx)

	logger.Log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("title", project.Title),
	)
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*models.Project, error) {
	changes, err := patch.changes()
	if err != nil {
		return nil, err
	}

	project, err := s.projects.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			logger.Log.Warn("Update of unknown project", zap.String("project_id", id.String()))
		} else {
			logger.Log.Error("Failed to update project",
				zap.String("project_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}
	s.cache.Invalidate(ctx)

	logger.Log.Info("Project updated",
		zap.String("project_id", id.String()),
		zap.Int("fields", len(changes)),
	)
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrProjectNotFound) {
			logger.Log.Error("Failed to delete project",
				zap.String("project_id", id.String()),
				zap.Error(err),
			)
		}
		return err
	}
	s.cache.Invalidate(ctx)

	logger.Log.Info("Project deleted", zap.String("project_id", id.String()))
	return nil
}

// changes maps the supplied fields to column names.
func (p ProjectPatch) changes() (map[string]any, error) {
	changes := map[string]any{}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, newValidationError("title", "title must not be empty")
		}
		if err := checkMaxLength("title", title, maxTitleLength); err != nil {
			return nil, err
		}
		changes["title"] = title
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		if description == "" {
			return nil, newValidationError("description", "description must not be empty")
		}
		changes["description"] = description
	}
	if p.Story != nil {
		changes["story_problem"] = p.Story.Problem
		changes["story_solution"] = p.Story.Solution
		changes["story_approach"] = p.Story.Approach
	}
	if p.Image != nil {
		changes["image"] = *p.Image
	}
	if p.Github != nil {
		changes["github"] = *p.Github
	}
	if p.Live != nil {
		changes["live"] = *p.Live
	}
	if p.Tech != nil {
		changes["tech"] = models.TechList(*p.Tech)
	}
	if p.Category != nil {
		if err := checkMaxLength("category", *p.Category, maxLabelLength); err != nil {
			return nil, err
		}
		changes["category"] = *p.Category
	}
	if p.Gradient != nil {
		if err := checkMaxLength("gradient", *p.Gradient, maxLabelLength); err != nil {
			return nil, err
		}
		changes["gradient"] = *p.Gradient
	}

	return changes, nil
}

// Column widths of models.Project.
const (
	maxTitleLength = 200
	maxLabelLength = 100
)

func validateLengths(title, category, gradient string) error {
	if err := checkMaxLength("title", title, maxTitleLength); err != nil {
		return err
	}
	if err := checkMaxLength("category", category, maxLabelLength); err != nil {
		return err
	}
	return checkMaxLength("gradient", gradient, maxLabelLength)
}

func checkMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return newValidationError(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}
