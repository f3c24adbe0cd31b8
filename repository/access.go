package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

// AccessResolver walks the ownership chain Comment -> Task -> Project -> Team
// and answers membership questions against it.
type AccessResolver struct {
	db *gorm.DB
}

func NewAccessResolver(db *gorm.DB) *AccessResolver {
	return &AccessResolver{db: db}
}

// RequireMember returns the caller's membership in teamID.
// A missing team is ErrNotFound, a non-member is ErrForbidden.
func (a *AccessResolver) RequireMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := a.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load membership: %w", err)
	}

	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", teamID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("team %w", ErrNotFound)
	}
	return nil, fmt.Errorf("%w: not a member of this team", ErrForbidden)
}

// IsMember reports whether userID belongs to teamID
func (a *AccessResolver) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}

func (a *AccessResolver) TeamOfProject(ctx context.Context, projectID uint) (uint, error) {
	var teamIDs []uint
	err := a.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", projectID).
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return 0, fmt.Errorf("resolve project team: %w", err)
	}
	if len(teamIDs) == 0 {
		return 0, fmt.Errorf("project %w", ErrNotFound)
	}
	return teamIDs[0], nil
}

func (a *AccessResolver) TeamOfTask(ctx context.Context, taskID uint) (uint, error) {
	var teamIDs []uint
	err := a.db.WithContext(ctx).Table("tasks").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ?", taskID).
		Pluck("projects.team_id", &teamIDs).Error
	if err != nil {
		return 0, fmt.Errorf("resolve task team: %w", err)
	}
	if len(teamIDs) == 0 {
		return 0, fmt.Errorf("task %w", ErrNotFound)
	}
	return teamIDs[0], nil
}

func (a *AccessResolver) TeamOfComment(ctx context.Context, commentID uint) (uint, error) {
	var teamIDs []uint
	err := a.db.WithContext(ctx).Table("comments").
		Joins("JOIN tasks ON tasks.id = comments.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("comments.id = ?", commentID).
		Pluck("projects.team_id", &teamIDs).Error
	if err != nil {
		return 0, fmt.Errorf("resolve comment team: %w", err)
	}
	if len(teamIDs) == 0 {
		return 0, fmt.Errorf("comment %w", ErrNotFound)
	}
	return teamIDs[0], nil
}
