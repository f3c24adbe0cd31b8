package services

import (
	"sync"

	"teamhub/models"
)

const defaultSubscriberBuffer = 16

// Subscription delivers a team's new activity entries
type Subscription struct {
	TeamID uint
	C      <-chan models.Activity

	ch chan models.Activity
}

// ActivityHub fans stored activity entries out to live subscribers per team.
// Publish never blocks: an entry is dropped for a subscriber whose buffer is full.
type ActivityHub struct {
	mu     sync.RWMutex
	subs   map[uint]map[*Subscription]struct{}
	buffer int
	closed bool
}

func NewActivityHub(buffer int) *ActivityHub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &ActivityHub{
		subs:   make(map[uint]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a listener for teamID. The channel is closed on Unsubscribe or Close.
func (h *ActivityHub) Subscribe(teamID uint) *Subscription {
	ch := make(chan models.Activity, h.buffer)
	sub := &Subscription{TeamID: teamID, C: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	if h.subs[teamID] == nil {
		h.subs[teamID] = make(map[*Subscription]struct{})
	}
	h.subs[teamID][sub] = struct{}{}
	return sub
}

func (h *ActivityHub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	team, ok := h.subs[sub.TeamID]
	if !ok {
		return
	}
	if _, ok := team[sub]; !ok {
		return
	}
	delete(team, sub)
	if len(team) == 0 {
		delete(h.subs, sub.TeamID)
	}
	close(sub.ch)
}

func (h *ActivityHub) Publish(activity models.Activity) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[activity.TeamID] {
		select {
		case sub.ch <- activity:
		default:
		}
	}
}

// Subscribers returns how many listeners teamID has
func (h *ActivityHub) Subscribers(teamID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[teamID])
}

// Close ends every subscription; later subscriptions are closed immediately
func (h *ActivityHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, team := range h.subs {
		for sub := range team {
			close(sub.ch)
		}
	}
	h.subs = make(map[uint]map[*Subscription]struct{})
}
