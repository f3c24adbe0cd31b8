package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create stores the team and its leader's membership in one transaction
func (r *TeamRepository) Create(ctx context.Context, team *models.Team, leaderID uint) error {
	team.LeaderID = leaderID
	team.Members = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		leader := models.TeamMember{
			TeamID: team.ID,
			UserID: leaderID,
			Role:   models.TeamRoleLeader,
		}
		if err := tx.Create(&leader).Error; err != nil {
			return fmt.Errorf("add team leader: %w", err)
		}
		team.Members = []models.TeamMember{leader}
		return nil
	})
}

// ListForUser returns every team userID belongs to, oldest first
func (r *TeamRepository) ListForUser(ctx context.Context, userID uint) ([]models.Team, error) {
	teams := []models.Team{}
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("team_members.id") }).
		Select("teams.*").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.id").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}
