package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/KadenLi6741/Localys-sub000/internal/chat"
	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/KadenLi6741/Localys-sub000/internal/feed"
	"github.com/KadenLi6741/Localys-sub000/internal/platform/config"
	"github.com/KadenLi6741/Localys-sub000/internal/platform/logging"
	"github.com/KadenLi6741/Localys-sub000/internal/postgres"
	"github.com/KadenLi6741/Localys-sub000/internal/redis"
	"github.com/KadenLi6741/Localys-sub000/internal/search"
	"github.com/KadenLi6741/Localys-sub000/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, running without ranking cache")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, db *pgxpool.Pool, redisClient *goredis.Client) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				slog.Error("Redis close error", "error", err)
			}
		}
		db.Close()

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db := setupDB(cfg)
	redisClient := setupRedis(cfg)

	videoRepo := postgres.NewVideoRepo(db)
	businessRepo := postgres.NewBusinessRepo(db)
	conversationRepo := postgres.NewConversationRepo(db)
	messageRepo := postgres.NewMessageRepo(db)

	var rankingCache domain.RankingCache
	if redisClient != nil {
		rankingCache = redis.NewRankingCache(redisClient, cfg.FeedCacheTTL)
	}

	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sampler := feed.NewSampler(rng, cfg.FeedAttemptFactor)
	feedSvc := feed.NewService(videoRepo, rankingCache, sampler)
	chatSvc := chat.NewService(conversationRepo, messageRepo, clock)
	searchSvc := search.NewService(videoRepo, businessRepo, clock)

	srv := server.NewServer(cfg, feedSvc, chatSvc, searchSvc, db, redisClient)
	done := runGracefulShutdown(srv, db, redisClient)

	slog.Info("Starting server", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
