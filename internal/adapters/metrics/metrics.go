// Package metrics exposes the planner's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "planner"

var (
	syncJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "jobs_total",
		Help:      "Write-through jobs processed, by operation and result.",
	}, []string{"op", "result"})

	remindersArmed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminders",
		Name:      "armed_total",
		Help:      "Reminder timers armed across all sessions.",
	})
	remindersFired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminders",
		Name:      "fired_total",
		Help:      "Reminder timers that fired.",
	})

	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Planner sessions currently held in memory.",
	})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(syncJobs, remindersArmed, remindersFired, activeSessions, requestDuration)
}

func RecordSyncSuccess(op string) {
	syncJobs.WithLabelValues(op, "success").Inc()
}

func RecordSyncFailure(op string) {
	syncJobs.WithLabelValues(op, "failure").Inc()
}

func RecordRemindersArmed(n int) {
	if n <= 0 {
		return
	}
	remindersArmed.Add(float64(n))
}

func RecordReminderFired() {
	remindersFired.Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// GinMiddleware observes request latency labelled with the matched route pattern.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
