package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamhub/models"
)

func TestCommentRepository_CreateListDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	ann := mustCreateUser(t, repos, "Ann", "a@x.com")
	team := mustCreateTeam(t, repos, "Alpha", ann.ID)
	project := mustCreateProject(t, repos, "Launch", team.ID)
	task := mustCreateTask(t, repos, "Ship", project.ID)

	first := &models.Comment{Text: "first", AuthorID: ann.ID, TaskID: task.ID}
	require.NoError(t, repos.Comments.Create(ctx, first))
	require.NotNil(t, first.Author)
	assert.Equal(t, "Ann", first.Author.Name)

	second := &models.Comment{Text: "second", AuthorID: ann.ID, TaskID: task.ID}
	require.NoError(t, repos.Comments.Create(ctx, second))

	comments, err := repos.Comments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	require.NotNil(t, comments[1].Author)
	assert.Equal(t, "a@x.com", comments[1].Author.Email)

	deleted, err := repos.Comments.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", deleted.Text)

	comments, err = repos.Comments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, second.ID, comments[0].ID)

	_, err = repos.Comments.Get(ctx, first.ID)
	assert.EqualError(t, err, "comment not found")
}
