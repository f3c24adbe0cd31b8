package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"teamhub/models"
	"teamhub/utils"
)

// ActivityStore is the write side of the activity log
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
}

// Publisher receives entries once they are stored
type Publisher interface {
	Publish(activity models.Activity)
}

type pendingActivity struct {
	activity models.Activity
	attempts int
}

// ActivityRetryWorker re-attempts activity writes that failed on the request path.
// Its queue is in memory and bounded; entries are lost on restart.
type ActivityRetryWorker struct {
	store       ActivityStore
	publisher   Publisher
	log         logrus.FieldLogger
	queue       chan pendingActivity
	interval    time.Duration
	maxAttempts int
}

func NewActivityRetryWorker(store ActivityStore, publisher Publisher, log logrus.FieldLogger, capacity int, interval time.Duration) *ActivityRetryWorker {
	if capacity <= 0 {
		capacity = 256
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ActivityRetryWorker{
		store:       store,
		publisher:   publisher,
		log:         log.WithField("component", "activity_retry"),
		queue:       make(chan pendingActivity, capacity),
		interval:    interval,
		maxAttempts: 5,
	}
}

// Enqueue schedules a retry. It reports false when the queue is full.
func (w *ActivityRetryWorker) Enqueue(activity models.Activity) bool {
	return w.push(pendingActivity{activity: activity})
}

func (w *ActivityRetryWorker) push(p pendingActivity) bool {
	select {
	case w.queue <- p:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued entries
func (w *ActivityRetryWorker) Pending() int {
	return len(w.queue)
}

func (w *ActivityRetryWorker) Start(ctx context.Context) {
	w.log.Info("Activity retry worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.WithField("pending", len(w.queue)).Info("Activity retry worker shutting down...")
			return
		case <-ticker.C:
			w.ProcessPending(ctx)
		}
	}
}

// ProcessPending makes one pass over the entries queued so far
func (w *ActivityRetryWorker) ProcessPending(ctx context.Context) {
	n := len(w.queue)
	for i := 0; i < n; i++ {
		var p pendingActivity
		select {
		case p = <-w.queue:
		default:
			return
		}

		activity := p.activity
		activity.ID = 0
		if err := w.store.Create(ctx, &activity); err != nil {
			p.attempts++
			if p.attempts >= w.maxAttempts || !w.push(p) {
				utils.LogError(w.log, "activity_retry_dropped", err, map[string]interface{}{
					"action":   activity.Action,
					"team_id":  activity.TeamID,
					"attempts": p.attempts,
				})
			}
			continue
		}
		if w.publisher != nil {
			w.publisher.Publish(activity)
		}
	}
}
