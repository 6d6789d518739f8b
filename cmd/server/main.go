package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/bondiano/social-network-higload/api"
	"github.com/bondiano/social-network-higload/auth"
	"github.com/bondiano/social-network-higload/config"
	"github.com/bondiano/social-network-higload/database"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/observability"
	"github.com/bondiano/social-network-higload/password"
	"github.com/bondiano/social-network-higload/redis"
	"github.com/bondiano/social-network-higload/server"
	"github.com/bondiano/social-network-higload/users"
	"github.com/bondiano/social-network-higload/workpool"
)

const serviceName = "sn-auth"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		logger.NewDefault(serviceName).Fatal("Configuration failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := observability.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		log.Warn("Tracing disabled", map[string]interface{}{"error": err.Error()})
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	redisClient, err := redis.New(cfg.Redis, log)
	if err != nil {
		log.Fatal("Redis setup failed", map[string]interface{}{"error": err.Error()})
	}
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		// Revocation checks fail open, so a dead Redis degrades rather
		// than blocks startup.
		log.Warn("Redis unreachable at startup", map[string]interface{}{"error": err.Error()})
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Database setup failed", map[string]interface{}{"error": err.Error()})
	}

	pool := workpool.New(cfg.PoolSize)
	defer pool.Close()

	store, err := users.NewStore(db)
	if err != nil {
		log.Fatal("User store setup failed", map[string]interface{}{"error": err.Error()})
	}

	passwords := password.NewService(pool, log)

	revocation := auth.NewRevocationStore(redisClient, log)
	tokens, err := auth.NewTokenService(cfg.JWT, revocation, pool, log)
	if err != nil {
		log.Fatal("Token service setup failed", map[string]interface{}{"error": err.Error()})
	}

	userSvc := users.NewService(store, passwords, tokens, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	handler := api.NewHandler(userSvc, tokens, log)
	api.RegisterRoutes(srv.GinEngine(), handler, tokens, userSvc, log)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Server start failed", map[string]interface{}{"error": err.Error()})
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
