package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httphandler "github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/notifier"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/storage/kv"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/storage/local"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

// monday 2026-05-04, before the first reminder of the day.
var testNow = time.Date(2026, 5, 4, 7, 0, 0, 0, time.UTC)

const mondayVisible = 12

type testServer struct {
	router   *gin.Engine
	sessions *services.SessionManager
	sync     *services.SyncStatus
}

// identityFromHeader stands in for the JWT middleware: X-User-ID becomes the
// caller, and requests without it stay anonymous.
func identityFromHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" {
			middleware.SetIdentity(c, domain.Identity{UserID: id})
		}
		c.Next()
	}
}

func newTestServer(t *testing.T, feed httphandler.ReminderFeed) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := services.NewSessionManager(services.SessionConfig{
		Local:    local.NewStore(kv.NewMemory()),
		Platform: func(userID string) notify.Platform { return notifier.NewLog(userID) },
		Location: time.UTC,
		Clock:    func() time.Time { return testNow },
	})
	t.Cleanup(sessions.Close)

	syncStatus := services.NewSyncStatus(func() time.Time { return testNow })

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(identityFromHeader())
	httphandler.NewPlannerHandler(sessions, syncStatus).RegisterRoutes(api)
	httphandler.NewSettingsHandler(sessions).RegisterRoutes(api)
	httphandler.NewNotificationHandler(sessions, feed).RegisterRoutes(api)
	httphandler.NewStatsHandler(sessions).RegisterRoutes(api)

	return &testServer{router: router, sessions: sessions, sync: syncStatus}
}

func (s *testServer) do(t *testing.T, method, path, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, "/api/v1"+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
