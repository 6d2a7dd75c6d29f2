package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

// PlannerSessions hands out the per-user planner. *services.SessionManager implements it.
type PlannerSessions interface {
	Get(ctx context.Context, id domain.Identity) *services.Planner
	Drop(userID string)
}

// plannerFor resolves the caller's planner or writes a 401.
func plannerFor(c *gin.Context, sessions PlannerSessions) (*services.Planner, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return nil, false
	}
	return sessions.Get(c.Request.Context(), id), true
}
