package handlers

import (
	"net/http"

	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TutorHandler handles the tutor review queue and grading
type TutorHandler struct {
	submissionService services.SubmissionService
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(submissionService services.SubmissionService) *TutorHandler {
	return &TutorHandler{
		submissionService: submissionService,
	}
}

// GradeRequest is the payload for grading a submission. Score stays optional;
// when present it must sit in [0,100].
type GradeRequest struct {
	TutorFeedback string   `json:"tutor_feedback" binding:"required"`
	Score         *float64 `json:"score" binding:"omitempty,min=0,max=100"`
}

// ListQueue returns all submissions, optionally filtered by subject, status
// or a search term, newest first
func (h *TutorHandler) ListQueue(c *gin.Context) {
	filter := repository.SubmissionFilter{
		Subject: c.Query("subject"),
		Status:  models.SubmissionStatus(c.Query("status")),
		Search:  c.Query("search"),
	}

	submissions, err := h.submissionService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// Grade merges tutor feedback, the Reviewed status and an optional score onto
// a submission
func (h *TutorHandler) Grade(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.submissionService.Grade(submissionID, req.TutorFeedback, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// Stats returns the dashboard metrics
func (h *TutorHandler) Stats(c *gin.Context) {
	stats, err := h.submissionService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
