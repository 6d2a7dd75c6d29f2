package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

type StatsHandler struct {
	sessions PlannerSessions
}

func NewStatsHandler(sessions PlannerSessions) *StatsHandler {
	return &StatsHandler{sessions: sessions}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Summary)
	r.GET("/stats/weekly", h.Weekly)
	r.GET("/stats/top", h.Top)
	r.GET("/stats/monthly", h.Monthly)
	r.GET("/calendar", h.Calendar)
	r.GET("/calendar/:date", h.Day)
}

// Summary godoc
// @Summary  Streak, progress and completion counters
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.Stats
// @Router   /stats [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.Summarize(p.StatsInput()))
}

func (h *StatsHandler) Weekly(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.WeeklyChart(p.StatsInput()))
}

func (h *StatsHandler) Top(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.TopActivities(p.StatsInput()))
}

func (h *StatsHandler) Monthly(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.MonthlyComparison(p.StatsInput()))
}

// Calendar godoc
// @Summary  Heatmap of one month, the current one by default
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    month query string false "YYYY-MM"
// @Success  200 {object} domain.CalendarMonth
// @Failure  400 {object} map[string]string
// @Router   /calendar [get]
func (h *StatsHandler) Calendar(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	in := p.StatsInput()
	month := in.Today
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation(domain.MonthLayout, raw, in.Today.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	c.JSON(http.StatusOK, services.CalendarMonth(in, month))
}

func (h *StatsHandler) Day(c *gin.Context) {
	p, ok := plannerFor(c, h.sessions)
	if !ok {
		return
	}

	day := c.Param("date")
	if _, err := time.Parse(domain.DateLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	c.JSON(http.StatusOK, services.DayDetail(p.StatsInput(), day))
}
