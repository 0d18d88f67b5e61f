package server

import (
	"net/http"
	"strconv"

	apperrors "github.com/KadenLi6741/Localys-sub000/internal/errors"
	"github.com/KadenLi6741/Localys-sub000/internal/search"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxPageLimit = 100

func (s *Server) handleFeed(c echo.Context) error {
	limit, err := parseLimit(c.QueryParam("limit"), s.config.FeedDefaultLimit)
	if err != nil {
		return err
	}

	videos, err := s.feed.Page(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	// A page shorter than limit is a valid sampling outcome.
	return c.JSON(http.StatusOK, map[string]any{"videos": videos})
}

func (s *Server) handleSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("query parameter q is required")
	}

	limit, err := parseLimit(c.QueryParam("limit"), s.config.FeedDefaultLimit)
	if err != nil {
		return err
	}

	var origin search.Origin
	if latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng"); latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return apperrors.ValidationError("lat and lng must both be valid coordinates")
		}
		origin = search.Origin{Latitude: lat, Longitude: lng}
	}

	results, err := s.search.Search(c.Request().Context(), query, origin, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

type applyBoostRequest struct {
	Units float64 `json:"units"`
}

func (s *Server) handleApplyBoost(c echo.Context) error {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid video ID")
	}

	var req applyBoostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Units <= 0 {
		return apperrors.ValidationError("units must be positive")
	}

	boost, err := s.feed.ApplyBoost(c.Request().Context(), videoID, req.Units)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"boost": boost})
}

type resolveConversationRequest struct {
	OtherUserID string `json:"other_user_id"`
}

func (s *Server) handleResolveConversation(c echo.Context) error {
	userID := c.Get("userID").(string)

	var req resolveConversationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	conv, err := s.chat.Resolve(c.Request().Context(), userID, req.OtherUserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conv)
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (s *Server) handleSendMessage(c echo.Context) error {
	userID := c.Get("userID").(string)

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid conversation ID")
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	msg, err := s.chat.SendMessage(c.Request().Context(), conversationID, userID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

func (s *Server) handleListMessages(c echo.Context) error {
	userID := c.Get("userID").(string)

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid conversation ID")
	}

	limit, err := parseLimit(c.QueryParam("limit"), 50)
	if err != nil {
		return err
	}

	msgs, err := s.chat.RecentMessages(c.Request().Context(), conversationID, userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": msgs})
}

func parseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperrors.ValidationError("limit must be a positive integer")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit, nil
}
