package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"deutschportal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.dashboardService.Overview(c.Request.Context(), student))
}

func (h *DashboardHandler) GetSessions(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	sessions, fallback := h.dashboardService.Sessions(c.Request.Context(), student)
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"fallback": fallback,
	})
}

func (h *DashboardHandler) GetCallLink(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	link, fallback, err := h.dashboardService.CallLink(c.Request.Context(), student, uint(sessionID))
	if err != nil {
		if errors.Is(err, services.ErrNoCallLink) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aucun lien d'appel disponible pour cette session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"call_link": link,
		"fallback":  fallback,
	})
}
