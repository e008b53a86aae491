package handlers

import (
	"net/http"

	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the friends timeline.
type FeedHandler struct {
	timeline *services.TimelineService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(timeline *services.TimelineService) *FeedHandler {
	return &FeedHandler{timeline: timeline}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/timeline", h.GetTimeline)
}

// GetTimeline returns one page of posts by the viewer's friends, newest first.
func (h *FeedHandler) GetTimeline(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	page, err := h.timeline.GetTimeline(c.Request().Context(), viewerID, pageRequest(c, h.timeline.Limits()))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, page)
}
