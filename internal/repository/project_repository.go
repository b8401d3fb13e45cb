package repository

import (
	"context"
	"errors"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// CreateBatch inserts projects in order inside one transaction, one row at a
// time so each gets its own created_at.
func (r *ProjectRepository) CreateBatch(ctx context.Context, projects []models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range projects {
			if err := tx.Create(&projects[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies changes (column name to value) with a single UPDATE and
// returns the stored row. Concurrent updates are last-writer-wins.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Project, error) {
	db := r.db.WithContext(ctx)

	if len(changes) > 0 {
		res := db.Model(&models.Project{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrProjectNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&n).Error
	return n, err
}
