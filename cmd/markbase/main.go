package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/markbase/markbase/api"
	"github.com/markbase/markbase/core/audit"
	"github.com/markbase/markbase/core/auth"
	"github.com/markbase/markbase/core/config"
	"github.com/markbase/markbase/core/health"
	"github.com/markbase/markbase/core/logger"
	"github.com/markbase/markbase/core/notes"
	"github.com/markbase/markbase/core/token"
	"github.com/markbase/markbase/mbgorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting Markbase",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
		zap.String("token_store", cfg.TokenStore),
	)

	repo, err := mbgorm.NewStorage(cfg.DBType, cfg.DSN, !cfg.SkipAutoMigrate)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	healthManager := health.NewManager(0)
	healthManager.Register(health.PingChecker{CheckName: "database", Ping: repo.Ping})

	var tokenStore token.Store = repo.TokenRepository
	if cfg.TokenStore == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tokenStore = token.NewRedisStore(client, "", cfg.TokenTTL)
		healthManager.Register(health.PingChecker{CheckName: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}

	recorder := audit.NewRecorder(repo.AuditRepository)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authenticator := auth.NewAuthenticator(repo, tokenStore, codec, hasher, recorder)
	gate := auth.NewGate(codec, tokenStore, repo)
	notesService := notes.NewService(repo)

	h := api.NewHandler(authenticator, notesService, repo.AuditRepository)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(gate.Middleware())

	g := e.Group("/api")
	h.RegisterRoutes(g)

	// Probes live outside /api so the gate passes them through.
	e.GET("/healthz", echo.WrapHandler(healthManager.LiveHandler()))
	e.GET("/ready", echo.WrapHandler(healthManager.ReadyHandler()))

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
