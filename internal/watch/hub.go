package watch

import (
	"log"
	"strings"
	"sync"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"
	"github.com/LuthandoGubevu/tutorhub/internal/models"

	"github.com/google/uuid"
)

// EventType classifies a change to a submission record
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
)

// SubmissionEvent is one change delivered to a subscriber. The lesson is
// already resolved against the catalog; events whose lesson cannot be
// resolved are never delivered.
type SubmissionEvent struct {
	Type       EventType          `json:"type"`
	Submission *models.Submission `json:"submission"`
	Lesson     catalog.Lesson     `json:"lesson"`
}

// Query selects which submissions a subscription observes. Zero values mean
// "no filter". A student dashboard sets StudentID; the tutor queue sets the
// subject/status/search filters; a detail view sets SubmissionID (plus
// StudentID when the viewer is a student, so another student's record can
// never match).
type Query struct {
	StudentID    uuid.UUID
	SubmissionID uuid.UUID
	Subject      string
	Status       models.SubmissionStatus
	Search       string
}

// Matches reports whether the submission falls inside the query
func (q Query) Matches(sub *models.Submission) bool {
	if q.SubmissionID != uuid.Nil && sub.ID != q.SubmissionID {
		return false
	}
	if q.StudentID != uuid.Nil && sub.StudentID != q.StudentID {
		return false
	}
	if q.Subject != "" && sub.LessonSubject != q.Subject {
		return false
	}
	if q.Status != "" && sub.Status != q.Status {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(sub.LessonTitle), needle) &&
			!strings.Contains(strings.ToLower(sub.StudentID.String()), needle) {
			return false
		}
	}
	return true
}

// Subscription is a live handle onto the submission stream. Consumers read
// Events() until it is closed; Close tears the handle down deterministically.
type Subscription struct {
	hub   *Hub
	query Query
	ch    chan SubmissionEvent
}

// Events returns the stream of matching submission changes. The channel is
// closed by Close.
func (s *Subscription) Events() <-chan SubmissionEvent {
	return s.ch
}

// Close removes the subscription and closes its channel. Once Close returns
// no further events are delivered; a second Close is a no-op.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans submission changes out to every matching subscription. All
// delivery happens under the hub lock, so Close and Publish never race.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscription for the query
func (h *Hub) Subscribe(query Query) *Subscription {
	sub := &Subscription{
		hub:   h,
		query: query,
		ch:    make(chan SubmissionEvent, 16),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish delivers a submission change to every matching subscription. The
// lesson is resolved first; a record pointing at an unknown lesson is
// excluded and a warning logged rather than delivered half-formed. A
// subscriber that has fallen 16 events behind loses the oldest news with a
// warning instead of blocking the writer.
func (h *Hub) Publish(eventType EventType, sub *models.Submission) {
	lesson, ok := catalog.GetLessonByID(sub.LessonSubject, sub.LessonID)
	if !ok {
		log.Printf("watch: lesson %s/%s not found for submission %s, event dropped",
			sub.LessonSubject, sub.LessonID, sub.ID)
		return
	}

	event := SubmissionEvent{Type: eventType, Submission: sub, Lesson: lesson}

	h.mu.Lock()
	defer h.mu.Unlock()
	for subscription := range h.subs {
		if !subscription.query.Matches(sub) {
			continue
		}
		select {
		case subscription.ch <- event:
			continue
		default:
		}
		// Buffer full: evict the oldest queued event so the latest revision
		// is the one that survives.
		select {
		case stale := <-subscription.ch:
			log.Printf("watch: subscriber behind, dropping oldest %s event for submission %s",
				stale.Type, stale.Submission.ID)
		default:
		}
		select {
		case subscription.ch <- event:
		default:
		}
	}
}

// SubscriberCount reports the number of active subscriptions
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}
