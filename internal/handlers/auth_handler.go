package handlers

import (
	"net/http"

	"github.com/LuthandoGubevu/tutorhub/internal/navigation"
	"github.com/LuthandoGubevu/tutorhub/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and navigation decisions
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the payload for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and signs the user in
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login verifies credentials and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Profile returns the resolved identity for the current session
func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"identity": CurrentIdentity(c)})
}

// Navigate returns the navigation decision for the current identity at a
// logical location. The decision is a pure function of its inputs; clients
// can call it as often as they like without risking a redirect loop.
func (h *AuthHandler) Navigate(c *gin.Context) {
	location := navigation.Location(c.Query("location"))
	if !navigation.Valid(location) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown location"})
		return
	}

	// Resolution completes within the request, so by the time a decision is
	// computed the resolving gate is already closed.
	decision := navigation.Decide(CurrentIdentity(c), false, location)
	c.JSON(http.StatusOK, decision)
}
