// Package repository persists users, teams, projects, tasks, comments and
// activities through GORM.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repositories bundles every store over one connection
type Repositories struct {
	Users      *UserRepository
	Teams      *TeamRepository
	Projects   *ProjectRepository
	Tasks      *TaskRepository
	Comments   *CommentRepository
	Activities *ActivityRepository
	Access     *AccessResolver
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Teams:      NewTeamRepository(db),
		Projects:   NewProjectRepository(db),
		Tasks:      NewTaskRepository(db),
		Comments:   NewCommentRepository(db),
		Activities: NewActivityRepository(db),
		Access:     NewAccessResolver(db),
	}
}

// notFound maps gorm.ErrRecordNotFound to "<what> not found"
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
