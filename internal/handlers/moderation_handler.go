package handlers

import (
	"net/http"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ModerationHandler receives verdicts from the image-analysis worker
type ModerationHandler struct {
	moderationService services.ModerationService
}

func NewModerationHandler(moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterModerationRoutes expects a group already guarded by the moderation token
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.POST("/moderation/:postId", h.RecordResult)
	g.GET("/moderation/:postId", h.GetHistory)
}

func (h *ModerationHandler) RecordResult(c echo.Context) error {
	postID, err := parseIDParam(c, "postId", "post")
	if err != nil {
		return err
	}
	var req models.RecordModerationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := h.moderationService.Record(requestContext(c), postID, req)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *ModerationHandler) GetHistory(c echo.Context) error {
	postID, err := parseIDParam(c, "postId", "post")
	if err != nil {
		return err
	}
	results, err := h.moderationService.History(requestContext(c), postID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, results)
}
