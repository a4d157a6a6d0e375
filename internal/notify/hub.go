// Package notify delivers progression signals (landscape unlocked, intention
// completed, gift acquired, day changed) to connected browser sessions.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// EventType names a signal sent to the presentation layer.
type EventType string

const (
	EventLandscapeUnlocked  EventType = "landscape_unlocked"
	EventIntentionCompleted EventType = "intention_completed"
	EventGiftAcquired       EventType = "gift_acquired"
	EventDayChanged         EventType = "day_changed"
)

// Event is one signal. Data is the payload the client renders.
type Event struct {
	Type    EventType `json:"type"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
}

const subscriberBuffer = 16

type subscriber struct {
	ch chan Event
}

// Hub fans events out to subscribers keyed by user and session.
type Hub struct {
	mu     sync.RWMutex
	active map[string]map[string]*subscriber
	timers sync.WaitGroup
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		active: make(map[string]map[string]*subscriber),
	}
}

// Subscribe registers a session and returns its event channel plus a cancel
// func. Subscribing the same session twice replaces the older subscription.
func (h *Hub) Subscribe(userID, sessionID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.active[userID]; !exists {
		h.active[userID] = make(map[string]*subscriber)
	}
	if existing, exists := h.active[userID][sessionID]; exists {
		close(existing.ch)
	}

	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	h.active[userID][sessionID] = sub
	slog.Info("Event session registered", "user_id", userID, "session_id", sessionID)

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { h.unsubscribe(userID, sessionID, sub) })
	}
}

func (h *Hub) unsubscribe(userID, sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.active[userID]
	if !ok {
		return
	}
	if current, exists := sessions[sessionID]; exists && current == sub {
		close(sub.ch)
		delete(sessions, sessionID)
		if len(sessions) == 0 {
			delete(h.active, userID)
		}
		slog.Info("Event session unregistered", "user_id", userID, "session_id", sessionID)
	}
}

// Publish delivers ev to every session of userID without blocking. Sessions
// whose buffer is full miss the event.
func (h *Hub) Publish(userID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sid, sub := range h.active[userID] {
		select {
		case sub.ch <- ev:
		default:
			slog.Warn("Dropping event for slow session", "user_id", userID, "session_id", sid, "type", ev.Type)
		}
	}
}

// PublishAfter delivers ev once delay has passed.
func (h *Hub) PublishAfter(delay time.Duration, userID string, ev Event) {
	if delay <= 0 {
		h.Publish(userID, ev)
		return
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	h.timers.Add(1)
	h.mu.RUnlock()

	time.AfterFunc(delay, func() {
		defer h.timers.Done()
		h.Publish(userID, ev)
	})
}

// Broadcast delivers ev to every connected session.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	users := make([]string, 0, len(h.active))
	for userID := range h.active {
		users = append(users, userID)
	}
	h.mu.RUnlock()

	for _, userID := range users {
		h.Publish(userID, ev)
	}
}

// SessionCount returns the number of live subscriptions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, sessions := range h.active {
		n += len(sessions)
	}
	return n
}

// Close waits for deferred events, then ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.timers.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, sessions := range h.active {
		for _, sub := range sessions {
			close(sub.ch)
		}
		delete(h.active, userID)
	}
}
