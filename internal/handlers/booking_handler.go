package handlers

import (
	"net/http"
	"time"

	"github.com/LuthandoGubevu/tutorhub/internal/services"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles session bookings and lesson ratings
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// BookSessionRequest is the payload for reserving a session
type BookSessionRequest struct {
	Subject         string    `json:"subject" binding:"required"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
}

// LessonFeedbackRequest is the payload for rating a lesson
type LessonFeedbackRequest struct {
	LessonID string `json:"lesson_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

// BookSession reserves a tutoring session for the signed-in student
func (h *BookingHandler) BookSession(c *gin.Context) {
	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := CurrentIdentity(c)
	booking, err := h.bookingService.BookSession(identity.ID, req.Subject, req.DateTime, req.DurationMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListOwn returns the student's bookings
func (h *BookingHandler) ListOwn(c *gin.Context) {
	identity := CurrentIdentity(c)
	bookings, err := h.bookingService.GetByStudent(identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListUpcoming returns all upcoming confirmed sessions for the tutor
func (h *BookingHandler) ListUpcoming(c *gin.Context) {
	bookings, err := h.bookingService.ListUpcoming()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Availability returns the open booking slots
func (h *BookingHandler) Availability(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"availability": h.bookingService.Availability()})
}

// SubmitLessonFeedback records a lesson rating from the signed-in student
func (h *BookingHandler) SubmitLessonFeedback(c *gin.Context) {
	var req LessonFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := CurrentIdentity(c)
	feedback, err := h.bookingService.SubmitLessonFeedback(identity.ID, req.LessonID, req.Rating, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// GetLessonFeedback lists the ratings for one lesson
func (h *BookingHandler) GetLessonFeedback(c *gin.Context) {
	feedbacks, err := h.bookingService.GetLessonFeedback(c.Param("lessonId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedbacks})
}
