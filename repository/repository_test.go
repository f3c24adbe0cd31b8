package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamhub/models"
)

// newTestDB opens a fresh in-memory database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return New(newTestDB(t))
}

func mustCreateUser(t *testing.T, repos *Repositories, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func mustCreateTeam(t *testing.T, repos *Repositories, name string, leaderID uint) *models.Team {
	t.Helper()
	team := &models.Team{Name: name}
	require.NoError(t, repos.Teams.Create(context.Background(), team, leaderID))
	return team
}

func mustCreateProject(t *testing.T, repos *Repositories, name string, teamID uint) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, TeamID: teamID}
	require.NoError(t, repos.Projects.Create(context.Background(), project))
	return project
}

func mustCreateTask(t *testing.T, repos *Repositories, title string, projectID uint) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, ProjectID: projectID}
	require.NoError(t, repos.Tasks.Create(context.Background(), task))
	return task
}
