package controller

import (
	"context"

	"teamhub/models"
	"teamhub/services"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

type WelcomeSender interface {
	SendWelcome(to, name string) error
}

type TeamStore interface {
	Create(ctx context.Context, team *models.Team, leaderID uint) error
	ListForUser(ctx context.Context, userID uint) ([]models.Team, error)
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	ListByTeam(ctx context.Context, teamID uint) ([]models.Project, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	Get(ctx context.Context, id uint) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Task, error)
	Update(ctx context.Context, id uint, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id uint) (*models.Task, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	Get(ctx context.Context, id uint) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID uint) ([]models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
}

// AccessChecker resolves the ownership chain up to a team
type AccessChecker interface {
	RequireMember(ctx context.Context, teamID, userID uint) (*models.TeamMember, error)
	IsMember(ctx context.Context, teamID, userID uint) (bool, error)
	TeamOfProject(ctx context.Context, projectID uint) (uint, error)
	TeamOfTask(ctx context.Context, taskID uint) (uint, error)
	TeamOfComment(ctx context.Context, commentID uint) (uint, error)
}

type ActivityLog interface {
	Record(ctx context.Context, entry services.ActivityEntry) *models.Activity
	ListRecent(ctx context.Context, teamID uint, limit int) ([]models.Activity, error)
}

type ActivityFeed interface {
	Subscribe(teamID uint) *services.Subscription
	Unsubscribe(sub *services.Subscription)
}
