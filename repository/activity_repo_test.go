package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamhub/models"
)

func TestActivityRepository_ListRecentNewestFirst(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	ann := mustCreateUser(t, repos, "Ann", "a@x.com")
	alpha := mustCreateTeam(t, repos, "Alpha", ann.ID)
	beta := mustCreateTeam(t, repos, "Beta", ann.ID)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	insert := func(teamID uint, desc string, at time.Time) *models.Activity {
		activity := &models.Activity{
			Action:      models.ActionCommentAdded,
			UserID:      ann.ID,
			TeamID:      teamID,
			Description: desc,
			CreatedAt:   at,
		}
		require.NoError(t, repos.Activities.Create(ctx, activity))
		return activity
	}

	t1 := insert(alpha.ID, "t1", base)
	insert(beta.ID, "other team", base.Add(90*time.Second))
	t3 := insert(alpha.ID, "t3", base.Add(2*time.Minute))
	t2 := insert(alpha.ID, "t2", base.Add(time.Minute))
	require.NotNil(t, t1.User)
	assert.Equal(t, "Ann", t1.User.Name)

	feed, err := repos.Activities.ListRecent(ctx, alpha.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, []uint{t3.ID, t2.ID, t1.ID}, []uint{feed[0].ID, feed[1].ID, feed[2].ID})
	require.NotNil(t, feed[0].User)
	assert.Equal(t, "a@x.com", feed[0].User.Email)

	feed, err = repos.Activities.ListRecent(ctx, alpha.ID, 2)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, t3.ID, feed[0].ID)
}

func TestActivityRepository_TieBreaksOnID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	ann := mustCreateUser(t, repos, "Ann", "a@x.com")
	team := mustCreateTeam(t, repos, "Alpha", ann.ID)

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 3; i++ {
		activity := &models.Activity{Action: models.ActionTaskCreated, UserID: ann.ID, TeamID: team.ID, CreatedAt: at}
		require.NoError(t, repos.Activities.Create(ctx, activity))
		ids = append(ids, activity.ID)
	}

	feed, err := repos.Activities.ListRecent(ctx, team.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, []uint{ids[2], ids[1], ids[0]}, []uint{feed[0].ID, feed[1].ID, feed[2].ID})
}

func TestActivityRepository_CapsAtMaximum(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	ann := mustCreateUser(t, repos, "Ann", "a@x.com")
	team := mustCreateTeam(t, repos, "Alpha", ann.ID)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < MaxActivityFeed+5; i++ {
		require.NoError(t, repos.Activities.Create(ctx, &models.Activity{
			Action:      models.ActionCommentAdded,
			UserID:      ann.ID,
			TeamID:      team.ID,
			Description: fmt.Sprintf("entry %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	for _, limit := range []int{0, -1, MaxActivityFeed + 1, 1000} {
		feed, err := repos.Activities.ListRecent(ctx, team.ID, limit)
		require.NoError(t, err)
		require.Len(t, feed, MaxActivityFeed, "limit %d", limit)
		assert.Equal(t, fmt.Sprintf("entry %d", MaxActivityFeed+4), feed[0].Description)
	}

	empty, err := repos.Activities.ListRecent(ctx, team.ID+1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
