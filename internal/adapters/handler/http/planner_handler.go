package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

type PlannerHandler struct {
	sessions PlannerSessions
	sync     *services.SyncStatus
}

func NewPlannerHandler(sessions PlannerSessions, sync *services.SyncStatus) *PlannerHandler {
	return &PlannerHandler{
		sessions: sessions,
		sync:     sync,
	}
}

type todayResponse struct {
	Date           string               `json:"date"`
	Loading        bool                 `json:"loading"`
	Activities     []domain.Activity    `json:"activities"`
	Completed      domain.CompletionMap `json:"completed"`
	CompletedCount int                  `json:"completed_count"`
	Total          int                  `json:"total"`
	Progress       int                  `json:"progress"`
	HolidayMode    bool                 `json:"holiday_mode"`
}

type createActivityRequest struct {
	Time   string         `json:"time" binding:"required"`
	Task   string         `json:"task" binding:"required"`
	Phase  domain.Phase   `json:"phase"`
	Detail string         `json:"detail"`
	Type   string         `json:"type"`
	Days   domain.DayRule `json:"days"`
}

type toggleResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress"`
}

func (h *PlannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/today", h.Today)
	router.GET("/history", h.History)
	router.GET("/workouts", h.Workouts)
	router.GET("/sync/status", h.SyncStatus)

	activities := router.Group("/activities")
	{
		activities.GET("", h.ListActivities)
		activities.POST("", h.CreateActivity)
		activities.DELETE("/:id", h.DeleteActivity)
		activities.POST("/:id/toggle", h.Toggle)
	}
}

// Today godoc
// @Summary  Visible activities of today with their completion state
// @Tags     planner
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} todayResponse
// @Router   /today [get]
func (h *PlannerHandler) Today(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	in := p.StatsInput()
	completed := make(domain.CompletionMap, len(in.Visible))
	count := 0
	for _, a := range in.Visible {
		if in.Completed[a.ID] {
			completed[a.ID] = true
			count++
		}
	}

	c.JSON(http.StatusOK, todayResponse{
		Date:           domain.DayKey(in.Today),
		Loading:        p.Loading(),
		Activities:     in.Visible,
		Completed:      completed,
		CompletedCount: count,
		Total:          len(in.Visible),
		Progress:       services.TodayProgress(in.Completed, in.Visible),
		HolidayMode:    in.Settings.HolidayMode,
	})
}

func (h *PlannerHandler) ListActivities(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.AllActivities())
}

// CreateActivity godoc
// @Summary  Add a custom activity
// @Tags     planner
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body createActivityRequest true "activity"
// @Success  201 {object} domain.Activity
// @Failure  400 {object} map[string]string
// @Router   /activities [post]
func (h *PlannerHandler) CreateActivity(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := domain.Activity{
		Time:   req.Time,
		Task:   req.Task,
		Phase:  req.Phase,
		Detail: req.Detail,
		Type:   req.Type,
		Days:   req.Days,
	}
	if err := activity.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p.AddActivity(activity))
}

func (h *PlannerHandler) DeleteActivity(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	if err := p.DeleteActivity(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary  Flip the completion of an activity for today
// @Tags     planner
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "activity id"
// @Success  200 {object} toggleResponse
// @Failure  404 {object} map[string]string
// @Router   /activities/{id}/toggle [post]
func (h *PlannerHandler) Toggle(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	id := c.Param("id")
	done, err := p.ToggleCompleted(id)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toggleResponse{
		ID:        id,
		Completed: done,
		Progress:  services.TodayProgress(p.Completed(), p.VisibleActivities()),
	})
}

func (h *PlannerHandler) History(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.History())
}

func (h *PlannerHandler) Workouts(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.Workouts())
}

// SyncStatus reports whether the caller's last writes reached the backend.
func (h *PlannerHandler) SyncStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}
	if h.sync == nil {
		c.JSON(http.StatusOK, services.SyncState{Healthy: true})
		return
	}
	c.JSON(http.StatusOK, h.sync.For(userID))
}
