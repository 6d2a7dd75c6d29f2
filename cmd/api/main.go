// @title                      Kanso Planner API
// @version                    1.0
// @description                Daily routine planner: today's activities, completion history, statistics and reminders.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/comitanigiacomo/kanso-planner/docs"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/events"
	adapterHTTP "github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/metrics"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/notifier"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/storage/kv"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/storage/local"
	"github.com/comitanigiacomo/kanso-planner/internal/config"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
	"github.com/comitanigiacomo/kanso-planner/internal/core/workers"
)

// app is the wired service. closers run in reverse order on shutdown.
type app struct {
	router   *gin.Engine
	sessions *services.SessionManager
	worker   *workers.SyncWorker
	// events is nil unless Kafka is configured.
	events  *workers.SyncWorker
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// drain waits for the workers to flush their queues after ctx cancellation.
func (a *app) drain(ctx context.Context) {
	queues := map[string]*workers.SyncWorker{"Sync": a.worker, "Event": a.events}
	for name, w := range queues {
		if w == nil {
			continue
		}
		select {
		case <-w.Done():
			log.Printf("%s queue drained.", name)
		case <-ctx.Done():
			log.Printf("%s queue drain timed out.", name)
		}
	}
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{}
	startTime := time.Now()

	var db *sqlx.DB
	if cfg.RemoteEnabled() {
		log.Println("Connecting to database...")

		var err error
		db, err = sqlx.Connect("pgx", cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.MigrateUp(db); err != nil {
			a.Close()
			return nil, err
		}
		log.Println("Database connected successfully.")
	} else {
		log.Println("DB_USER/DB_NAME not set: running local-only with the demo account.")
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		var err error
		rdb, err = cache.NewRedisClient(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		log.Println("Redis connected successfully.")
	}

	localKV, err := openLocalKV(cfg, rdb)
	if err != nil {
		a.Close()
		return nil, err
	}
	if c, ok := localKV.(interface{ Close() error }); ok {
		a.closers = append(a.closers, func() { _ = c.Close() })
	}

	var remote domain.Store
	var users domain.UserRepository
	if db != nil {
		remote = repository.NewPostgresStore(db)
		if rdb != nil {
			remote = repository.NewCachedStore(remote, rdb)
		}
		users = repository.NewPostgresUserRepository(db)
	}

	syncStatus := services.NewSyncStatus(nil)
	a.worker = workers.NewSyncWorker(cfg.SyncQueueSize, workers.Hooks{
		OnSuccess: func(job workers.SyncJob) {
			syncStatus.RecordSuccess(job)
			metrics.RecordSyncSuccess(job.Op)
		},
		OnFailure: func(job workers.SyncJob, err error) {
			syncStatus.RecordFailure(job, err)
			metrics.RecordSyncFailure(job.Op)
		},
	})
	a.worker.Start(ctx)

	var publisher services.EventPublisher
	var eventQueue services.Syncer
	if cfg.KafkaEnabled() {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, func() { _ = kp.Close() })
		publisher = kp

		// Own queue: a stalled broker must not hold up store writes.
		a.events = workers.NewSyncWorker(cfg.SyncQueueSize, workers.Hooks{
			OnSuccess: func(job workers.SyncJob) { metrics.RecordSyncSuccess(job.Op) },
			OnFailure: func(job workers.SyncJob, _ error) { metrics.RecordSyncFailure(job.Op) },
		})
		a.events.Start(ctx)
		eventQueue = a.events
		log.Printf("Publishing completion events to %s", cfg.KafkaTopic)
	}

	platform := func(userID string) notify.Platform { return notifier.NewLog(userID) }
	if rdb != nil {
		platform = func(userID string) notify.Platform { return notifier.NewRedis(rdb, userID) }
	}

	a.sessions = services.NewSessionManager(services.SessionConfig{
		Local:      local.NewStore(localKV),
		Remote:     remote,
		Syncer:     a.worker,
		Events:     publisher,
		EventQueue: eventQueue,
		Platform:   platform,
		Location:   cfg.Location,
		OnFire: func(string, notify.Notification) {
			metrics.RecordReminderFired()
		},
		OnArm: func(_ string, armed int) {
			metrics.RecordRemindersArmed(armed)
		},
	})
	a.sessions.Start(ctx, cfg.TickInterval)
	a.closers = append(a.closers, a.sessions.Close)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, users)
	authService := services.NewAuthService(users, tokenService, cfg.DemoPassword)

	sessions := &observedSessions{SessionManager: a.sessions}

	var feed adapterHTTP.ReminderFeed
	if rdb != nil {
		feed = notifier.NewFeed(rdb)
	}

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService, sessions),
		PlannerHandler:      adapterHTTP.NewPlannerHandler(sessions, syncStatus),
		SettingsHandler:     adapterHTTP.NewSettingsHandler(sessions),
		NotificationHandler: adapterHTTP.NewNotificationHandler(sessions, feed),
		StatsHandler:        adapterHTTP.NewStatsHandler(sessions),
		TokenService:        tokenService,
		DB:                  db,
		Redis:               rdb,
		RateLimit:           cfg.RateLimit,
		RateWindow:          cfg.RateWindow,
		StartTime:           startTime,
	})

	return a, nil
}

func openLocalKV(cfg config.Config, rdb *redis.Client) (kv.Store, error) {
	switch cfg.LocalKV {
	case config.KVRedis:
		return kv.NewRedis(rdb), nil
	case config.KVMemory:
		return kv.NewMemory(), nil
	default:
		log.Printf("Local store: sqlite at %s", cfg.LocalDBPath)
		return kv.OpenSQLite(cfg.LocalDBPath)
	}
}

// observedSessions keeps the active-session gauge current.
type observedSessions struct {
	*services.SessionManager
}

func (s *observedSessions) Get(ctx context.Context, id domain.Identity) *services.Planner {
	p := s.SessionManager.Get(ctx, id)
	metrics.SetActiveSessions(s.Len())
	return p
}

func (s *observedSessions) Drop(userID string) {
	s.SessionManager.Drop(userID)
	metrics.SetActiveSessions(s.Len())
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())

	a, err := newApp(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("Critical: Failed to start: %v", err)
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     a.router,
		ReadTimeout: 10 * time.Second,
		// The reminder stream keeps its response open, so writes have no deadline.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Planner running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown error:", err)
	}

	stop()
	a.drain(shutdownCtx)
	a.Close()

	log.Println("Server stopped gracefully.")
}
