package handlers

import (
	"net/http"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like/super-like/unlike HTTP requests
type LikeHandler struct {
	likeService services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PUT("/posts/:id/like", h.SetLike)
	g.GET("/posts/:id/likers", h.GetLikers)
	g.DELETE("/likes/:id", h.DeleteLike)
	g.GET("/users/:id/liked-posts", h.GetLikedPosts)
}

// SetLike records the viewer's state on a post
func (h *LikeHandler) SetLike(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.SetLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	like, err := h.likeService.SetLike(requestContext(c), userID, postID, req.LikeType)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, like)
}

// GetLikers lists users holding like_type (default like) on a post
func (h *LikeHandler) GetLikers(c echo.Context) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}
	users, err := h.likeService.ListLikers(requestContext(c), postID, likeTypeParam(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *LikeHandler) DeleteLike(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	likeID, err := parseIDParam(c, "id", "like")
	if err != nil {
		return err
	}
	if err := h.likeService.RemoveLike(requestContext(c), userID, likeID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikedPosts lists the posts a user liked, optionally narrowed to one hash tag
func (h *LikeHandler) GetLikedPosts(c echo.Context) error {
	viewerID, err := requireUserID(c)
	if err != nil {
		return err
	}
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	posts, err := h.likeService.LikedPosts(requestContext(c), viewerID, userID, likeTypeParam(c), c.QueryParam("tag"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func likeTypeParam(c echo.Context) models.LikeType {
	if t := c.QueryParam("like_type"); t != "" {
		return models.LikeType(t)
	}
	return models.LikeTypeLike
}
