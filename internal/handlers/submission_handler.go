package handlers

import (
	"net/http"

	"github.com/LuthandoGubevu/tutorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionHandler handles the student-facing submission surface
type SubmissionHandler struct {
	submissionService services.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// SubmitAnswerRequest is the payload for creating a submission
type SubmitAnswerRequest struct {
	LessonID  string `json:"lesson_id" binding:"required"`
	Subject   string `json:"subject" binding:"required,subject"`
	Answer    string `json:"answer" binding:"required"`
	Reasoning string `json:"reasoning" binding:"required"`
}

// SubmitAnswer creates a new submission for the signed-in student
func (h *SubmissionHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := CurrentIdentity(c)
	submission, err := h.submissionService.Create(c.Request.Context(), identity.ID, req.Subject, req.LessonID, req.Answer, req.Reasoning)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListOwn returns the student's submissions, newest first
func (h *SubmissionHandler) ListOwn(c *gin.Context) {
	identity := CurrentIdentity(c)
	submissions, err := h.submissionService.GetByStudent(identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GetDetail returns one submission with its resolved lesson. A student asking
// for someone else's record gets a plain not-found.
func (h *SubmissionHandler) GetDetail(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, lesson, err := h.submissionService.GetDetail(CurrentIdentity(c), submissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission, "lesson": lesson})
}
