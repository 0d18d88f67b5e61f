// Package server exposes the HTTP API.
package server

import (
	"context"
	"time"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	apperrors "github.com/KadenLi6741/Localys-sub000/internal/errors"
	"github.com/KadenLi6741/Localys-sub000/internal/platform/config"
	"github.com/KadenLi6741/Localys-sub000/internal/search"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

// feedService is the slice of the feed layer the handlers need.
type feedService interface {
	Page(ctx context.Context, limit int) ([]domain.Video, error)
	ApplyBoost(ctx context.Context, videoID uuid.UUID, units float64) (float64, error)
}

// chatService is the slice of the chat layer the handlers need.
type chatService interface {
	Resolve(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*domain.Message, error)
	RecentMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, limit int) ([]domain.Message, error)
}

// searchService is the slice of the search layer the handlers need.
type searchService interface {
	Search(ctx context.Context, query string, origin search.Origin, limit int) ([]search.Result, error)
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	feed      feedService
	chat      chatService
	search    searchService
	db        *pgxpool.Pool
	redis     *goredis.Client
	startTime time.Time
}

// NewServer assembles the echo server. redis may be nil when not configured;
// readiness then only checks postgres.
func NewServer(cfg *config.Config, feed feedService, chat chatService, searchSvc searchService, db *pgxpool.Pool, redis *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(requestMetricsMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		feed:      feed,
		chat:      chat,
		search:    searchSvc,
		db:        db,
		redis:     redis,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(":" + s.config.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
