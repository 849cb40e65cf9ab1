package handlers

import (
	"net/http"

	"github.com/LuthandoGubevu/tutorhub/internal/catalog"

	"github.com/gin-gonic/gin"
)

// LessonHandler serves the static lesson catalog
type LessonHandler struct{}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler() *LessonHandler {
	return &LessonHandler{}
}

// ListBySubject returns the lessons for one subject
func (h *LessonHandler) ListBySubject(c *gin.Context) {
	subject := c.Param("subject")
	lessons := catalog.ListBySubject(subject)
	if lessons == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown subject"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// Get returns one lesson by subject and id
func (h *LessonHandler) Get(c *gin.Context) {
	lesson, ok := catalog.GetLessonByID(c.Param("subject"), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}
