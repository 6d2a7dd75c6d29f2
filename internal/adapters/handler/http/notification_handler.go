package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
)

// ReminderFeed streams delivered reminders of one user.
type ReminderFeed interface {
	Subscribe(ctx context.Context, userID string) (<-chan notify.Notification, error)
}

type NotificationHandler struct {
	sessions PlannerSessions
	feed     ReminderFeed
}

// NewNotificationHandler builds the handler. feed may be nil, which disables the stream.
func NewNotificationHandler(sessions PlannerSessions, feed ReminderFeed) *NotificationHandler {
	return &NotificationHandler{sessions: sessions, feed: feed}
}

type notificationsResponse struct {
	Enabled    bool              `json:"enabled"`
	Minutes    int               `json:"minutes"`
	Permission notify.Permission `json:"permission"`
	Pending    []notify.Armed    `json:"pending"`
}

type minutesRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type permissionRequest struct {
	Permission string `json:"permission" binding:"required"`
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	n := router.Group("/notifications")
	{
		n.GET("", h.Get)
		n.POST("/enable", h.Enable)
		n.POST("/disable", h.Disable)
		n.PUT("/minutes", h.SetMinutes)
		n.PUT("/permission", h.SetPermission)
		n.GET("/stream", h.Stream)
	}
}

func (h *NotificationHandler) respond(c *gin.Context, status int) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	settings := p.NotificationSettings()
	c.JSON(status, notificationsResponse{
		Enabled:    settings.Enabled,
		Minutes:    settings.Minutes,
		Permission: p.NotificationPermission(c.Request.Context()),
		Pending:    p.PendingReminders(),
	})
}

func (h *NotificationHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// Enable godoc
// @Summary  Request permission and arm reminders; a denial leaves them off
// @Tags     notifications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} notificationsResponse
// @Router   /notifications/enable [post]
func (h *NotificationHandler) Enable(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	p.EnableNotifications(c.Request.Context())
	h.respond(c, http.StatusOK)
}

func (h *NotificationHandler) Disable(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	p.DisableNotifications()
	h.respond(c, http.StatusOK)
}

func (h *NotificationHandler) SetMinutes(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	var req minutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.SetReminderMinutes(req.Minutes); err != nil {
		if errors.Is(err, domain.ErrInvalidReminderMinutes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.respond(c, http.StatusOK)
}

// SetPermission records the permission decision a client reported.
func (h *NotificationHandler) SetPermission(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	perm, err := notify.ParsePermission(req.Permission)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.SetNotificationPermission(c.Request.Context(), perm); err != nil {
		if errors.Is(err, notify.ErrPermissionUnsupported) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.respond(c, http.StatusOK)
}

// Stream relays reminders as server-sent events until the client disconnects.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reminder stream requires redis"})
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	reminders, err := h.feed.Subscribe(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[NOTIFY] stream subscribe failed for user %s: %v", userID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reminder stream unavailable"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		n, open := <-reminders
		if !open {
			return false
		}
		c.SSEvent("reminder", n)
		return true
	})
}
