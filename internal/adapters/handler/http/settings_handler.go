package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

type SettingsHandler struct {
	sessions PlannerSessions
}

func NewSettingsHandler(sessions PlannerSessions) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", h.Get)
	router.PATCH("/settings", h.Update)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.Settings())
}

// Update godoc
// @Summary  Merge a partial settings patch; an empty holiday date clears it
// @Tags     settings
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body domain.SettingsPatch true "patch"
// @Success  200 {object} domain.Settings
// @Failure  400 {object} map[string]string
// @Router   /settings [patch]
func (h *SettingsHandler) Update(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	var patch domain.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := patch.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p.UpdateSettings(patch))
}
