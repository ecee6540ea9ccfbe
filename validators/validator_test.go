package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func TestValidateLikeRequest(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(models.SetLikeRequest{LikeType: models.LikeTypeSuperLike}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	err := v.Validate(models.SetLikeRequest{LikeType: "love"})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestValidateCreatePostTags(t *testing.T) {
	v := NewValidator()
	req := models.CreatePostRequest{ImageKey: "b/k", ImageName: "n", ImageAge: "1", Prompt: "p", HashTags: []string{"ok", ""}}
	if err := v.Validate(req); err == nil {
		t.Fatal("empty hash tag accepted")
	}
	req.HashTags = []string{"ok"}
	if err := v.Validate(req); err != nil {
		t.Fatalf("valid post rejected: %v", err)
	}
}
