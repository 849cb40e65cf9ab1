package handlers

import (
	"io"
	"net/http"

	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/internal/services"
	"github.com/LuthandoGubevu/tutorhub/internal/watch"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WatchHandler streams live submission updates over server-sent events.
// Every stream starts with a snapshot event followed by incremental
// submission events; the subscription is torn down when the client goes away.
type WatchHandler struct {
	submissionService services.SubmissionService
	hub               *watch.Hub
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(submissionService services.SubmissionService, hub *watch.Hub) *WatchHandler {
	return &WatchHandler{
		submissionService: submissionService,
		hub:               hub,
	}
}

// StreamOwn streams the signed-in student's submissions
func (h *WatchHandler) StreamOwn(c *gin.Context) {
	identity := CurrentIdentity(c)

	h.stream(c, watch.Query{StudentID: identity.ID}, func() ([]*models.Submission, error) {
		return h.submissionService.GetByStudent(identity.ID)
	})
}

// StreamQueue streams all submissions for the tutor queue, honoring the same
// filters as the list endpoint
func (h *WatchHandler) StreamQueue(c *gin.Context) {
	filter := repository.SubmissionFilter{
		Subject: c.Query("subject"),
		Status:  models.SubmissionStatus(c.Query("status")),
		Search:  c.Query("search"),
	}

	h.stream(c, watch.Query{
		Subject: filter.Subject,
		Status:  filter.Status,
		Search:  filter.Search,
	}, func() ([]*models.Submission, error) {
		return h.submissionService.List(filter)
	})
}

// StreamDetail streams a single submission. Ownership is checked before the
// subscription is established; the query itself also carries the viewer's
// student id so another student's events can never match.
func (h *WatchHandler) StreamDetail(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	identity := CurrentIdentity(c)

	if _, _, err := h.submissionService.GetDetail(identity, submissionID); err != nil {
		respondError(c, err)
		return
	}

	query := watch.Query{SubmissionID: submissionID}
	if !identity.IsTutor() {
		query.StudentID = identity.ID
	}

	h.stream(c, query, func() ([]*models.Submission, error) {
		submission, _, err := h.submissionService.GetDetail(identity, submissionID)
		if err != nil {
			return nil, err
		}
		return []*models.Submission{submission}, nil
	})
}

// stream subscribes, then loads and sends the snapshot, then relays events.
// Subscribing first means a write landing while the snapshot is read shows up
// in the stream (possibly in both, which is harmless since consumers key by
// id); the reverse order would lose it.
func (h *WatchHandler) stream(c *gin.Context, query watch.Query, loadSnapshot func() ([]*models.Submission, error)) {
	// Tear down before subscribing anew is the client's side of the
	// contract; on our side the subscription dies with the request.
	sub := h.hub.Subscribe(query)
	defer sub.Close()

	snapshot, err := loadSnapshot()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("snapshot", watch.ResolveViews(snapshot))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent("submission", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
