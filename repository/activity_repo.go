package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

// MaxActivityFeed caps how many entries a feed read returns
const MaxActivityFeed = 50

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an entry and loads the acting user
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	activity.User = nil
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, activity.UserID).Error; err == nil {
		activity.User = &user
	}
	return nil
}

// ListRecent returns up to limit entries of the team, newest first
func (r *ActivityRepository) ListRecent(ctx context.Context, teamID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > MaxActivityFeed {
		limit = MaxActivityFeed
	}
	activities := []models.Activity{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
