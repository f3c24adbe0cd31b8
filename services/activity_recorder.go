package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"teamhub/models"
	"teamhub/utils"
)

// ActivityStore persists feed entries
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListRecent(ctx context.Context, teamID uint, limit int) ([]models.Activity, error)
}

// Publisher receives every stored entry
type Publisher interface {
	Publish(activity models.Activity)
}

// RetryQueue takes entries whose first write failed
type RetryQueue interface {
	Enqueue(activity models.Activity) bool
}

// ActivityEntry describes a mutation worth showing in a team feed
type ActivityEntry struct {
	Action      string
	UserID      uint
	TeamID      uint
	TaskID      *uint
	Description string
}

func (e ActivityEntry) validate() error {
	switch {
	case e.Action == "":
		return errors.New("activity action is required")
	case e.UserID == 0:
		return errors.New("activity user is required")
	case e.TeamID == 0:
		return errors.New("activity team is required")
	}
	return nil
}

// ActivityRecorder appends feed entries on behalf of other writes. Recording is
// best-effort: a failure is logged and never reaches the caller.
type ActivityRecorder struct {
	store     ActivityStore
	publisher Publisher
	retry     RetryQueue
	log       logrus.FieldLogger
}

func NewActivityRecorder(store ActivityStore, publisher Publisher, retry RetryQueue, log logrus.FieldLogger) *ActivityRecorder {
	return &ActivityRecorder{
		store:     store,
		publisher: publisher,
		retry:     retry,
		log:       log.WithField("component", "activity"),
	}
}

// Record stores one entry and returns it, or nil when it could not be stored
func (r *ActivityRecorder) Record(ctx context.Context, entry ActivityEntry) (recorded *models.Activity) {
	defer func() {
		if p := recover(); p != nil {
			utils.LogError(r.log, "activity_record_panic", fmt.Errorf("panic: %v", p), map[string]interface{}{
				"action":  entry.Action,
				"team_id": entry.TeamID,
			})
			recorded = nil
		}
	}()

	if err := entry.validate(); err != nil {
		utils.LogError(r.log, "activity_invalid", err, map[string]interface{}{"action": entry.Action})
		return nil
	}

	activity := &models.Activity{
		Action:      entry.Action,
		UserID:      entry.UserID,
		TeamID:      entry.TeamID,
		TaskID:      entry.TaskID,
		Description: entry.Description,
	}
	if err := r.store.Create(ctx, activity); err != nil {
		queued := r.retry != nil && r.retry.Enqueue(*activity)
		utils.LogError(r.log, "activity_record_failed", err, map[string]interface{}{
			"action":  entry.Action,
			"team_id": entry.TeamID,
			"user_id": entry.UserID,
			"queued":  queued,
		})
		return nil
	}

	if r.publisher != nil {
		r.publisher.Publish(*activity)
	}
	return activity
}

// ListRecent returns the team's newest entries first
func (r *ActivityRecorder) ListRecent(ctx context.Context, teamID uint, limit int) ([]models.Activity, error) {
	return r.store.ListRecent(ctx, teamID, limit)
}
