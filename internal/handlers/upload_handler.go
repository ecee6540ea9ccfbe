package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/anonto42/promptswipe/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

// Uploader stores an image and returns its "bucket/key" reference
type Uploader interface {
	Upload(ctx context.Context, kind storage.Kind, r io.Reader, size int64, contentType string) (string, error)
}

// UploadHandler accepts avatar and post images
type UploadHandler struct {
	uploader Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

// Upload stores the multipart "file" in the bucket selected by "kind" (user or post)
func (h *UploadHandler) Upload(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	kind := storage.Kind(c.FormValue("kind"))
	if kind == "" {
		kind = storage.KindPost
	}
	if kind != storage.KindPost && kind != storage.KindUser {
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be user or post")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only images can be uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer f.Close()

	ref, err := h.uploader.Upload(requestContext(c), kind, f, fh.Size, contentType)
	if err != nil {
		h.log.Error("upload failed", zap.Uint("user_id", userID), zap.String("kind", string(kind)), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"image_key": ref})
}
