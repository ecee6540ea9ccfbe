package handlers

import (
	"net/http"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the two swipe feeds
type FeedHandler struct {
	feedService services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/recommended", h.GetRecommended)
	g.GET("/feed/followings", h.GetFollowings)
}

func (h *FeedHandler) GetRecommended(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	posts, err := h.feedService.Recommended(requestContext(c), userID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) GetFollowings(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	posts, err := h.feedService.Followings(requestContext(c), userID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}
