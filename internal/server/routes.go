package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no identity required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Feed and search
	s.echo.GET("/api/feed", s.handleFeed)
	s.echo.GET("/api/search", s.handleSearch)

	// Promotion (settled coin units arrive from the payment flow upstream)
	s.echo.POST("/api/videos/:id/boost", s.handleApplyBoost, s.requireIdentity)

	// Direct messaging
	s.echo.POST("/api/conversations", s.handleResolveConversation, s.requireIdentity)
	s.echo.POST("/api/conversations/:id/messages", s.handleSendMessage, s.requireIdentity)
	s.echo.GET("/api/conversations/:id/messages", s.handleListMessages, s.requireIdentity)
}
