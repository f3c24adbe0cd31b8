package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// ListByTeam returns the team's projects in insertion order
func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID uint) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
