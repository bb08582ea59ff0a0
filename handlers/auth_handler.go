package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"deutschportal/models"
	"deutschportal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// studentFromContext rebuilds the authenticated student from the claims the
// auth middleware put on the context.
func studentFromContext(c *gin.Context) (*models.Student, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	student := &models.Student{ID: userID.(uint)}
	if name, ok := c.Get("name"); ok {
		student.Name = name.(string)
	}
	if plan, ok := c.Get("plan"); ok {
		student.Plan = models.Plan(plan.(string))
	}
	return student, true
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Nom d'utilisateur ou mot de passe incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	// Prefer the persisted user; it carries fields the token doesn't.
	if saved, found := h.authService.CurrentUser(c.Request.Context()); found && saved.ID == student.ID {
		c.JSON(http.StatusOK, saved)
		return
	}
	c.JSON(http.StatusOK, student)
}
