package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	v1 "github.com/Gauthier1607/squadzone/cmd/api/router/v1"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/database"
	queueAdapter "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/adapter"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	sessionAdapter "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/adapter"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/task"
)

const defaultSessionTTL = 7 * 24 * time.Hour

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg(".env file not found or could not be loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	bootCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(bootCtx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(bootCtx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisURL := os.Getenv("REDIS_URL")
	sessions, err := sessionAdapter.NewRedisStore(redisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer sessions.Close()

	sessionTTL := defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			sessionTTL = d
		}
	}

	queueClient, err := queueAdapter.NewAsynqClient(redisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue client")
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer(redisURL, logger, 10, task.DeliverQueue)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue server")
	}

	hub := realtime.NewHub()
	defer hub.Close()

	task.RegisterDeliverMessageTask(queueServer, hub, logger)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("queue server stopped")
		}
	}()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, sessions, sessionTTL, queueClient, hub, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("port", port).Msg("squadzone server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}
