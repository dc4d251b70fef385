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

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/team-dashboard/internal/board"
	"github.com/yukikurage/team-dashboard/internal/config"
	"github.com/yukikurage/team-dashboard/internal/constants"
	"github.com/yukikurage/team-dashboard/internal/database"
	"github.com/yukikurage/team-dashboard/internal/handlers"
	"github.com/yukikurage/team-dashboard/internal/localstore"
	"github.com/yukikurage/team-dashboard/internal/logger"
	"github.com/yukikurage/team-dashboard/internal/middleware"
	"github.com/yukikurage/team-dashboard/internal/remote"
	"github.com/yukikurage/team-dashboard/internal/repository"
	"github.com/yukikurage/team-dashboard/internal/services"
	"github.com/yukikurage/team-dashboard/internal/tasks"
	"github.com/yukikurage/team-dashboard/internal/team"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, zlog); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations and seed the mock API
	if err := database.Migrate(zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(database.GetDB(), zlog); err != nil {
		zlog.Fatal("failed to seed database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local store
	store, closeStore, err := newLocalStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open local store", zap.Error(err))
	}
	defer closeStore()

	// Dashboard components
	client := remote.New(cfg.RemoteBaseURL, cfg.RemoteTimeout)
	taskRepo := tasks.NewRepository(store, client, zlog)
	directory := team.NewDirectory(store, client, zlog)
	registry := board.NewRegistry(taskRepo, cfg.NotifyDuration, zlog)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog.Named("http")))

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		zlog.Fatal("failed to create session store", zap.Error(err))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Initialize handlers
	db := database.GetDB()
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db)), zlog)
	teamHandler := handlers.NewTeamHandler(services.NewMemberService(repository.NewMemberRepository(db)), zlog)
	dashboardHandler := handlers.NewDashboardHandler(taskRepo, directory, zlog)

	r.GET("/health", handlers.Health)
	handlers.RegisterMockAPI(r, taskHandler, teamHandler)
	handlers.RegisterDashboard(r, dashboardHandler, registry, zlog)

	go sweepBoards(ctx, registry, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("addr", srv.Addr), zap.String("remote", cfg.RemoteBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RemoteTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	// Let dispatched moves confirm or roll back before the store closes
	registry.Wait()
	zlog.Info("server stopped")
}

// newLocalStore opens the configured local store with simulated latency
func newLocalStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (localstore.Store, func(), error) {
	var (
		base    localstore.Store
		closeFn = func() {}
	)

	switch cfg.LocalStore {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		base = localstore.NewRedisStore(client, cfg.StoreNamespace)
		closeFn = func() { _ = client.Close() }
	default:
		base = localstore.NewMemoryStore()
	}

	zlog.Info("local store ready",
		zap.String("kind", cfg.LocalStore),
		zap.Duration("min_delay", cfg.StoreMinDelay),
		zap.Duration("max_delay", cfg.StoreMaxDelay),
	)

	if cfg.StoreMaxDelay == 0 {
		return base, closeFn, nil
	}
	return localstore.NewDelayed(base, cfg.StoreMinDelay, cfg.StoreMaxDelay), closeFn, nil
}

// newSessionStore uses Redis when configured and signed cookies otherwise
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func sweepBoards(ctx context.Context, registry *board.Registry, zlog *zap.Logger) {
	ticker := time.NewTicker(constants.BoardSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.Sweep(constants.BoardIdleTimeout); removed > 0 {
				zlog.Debug("idle boards removed", zap.Int("count", removed))
			}
		}
	}
}
