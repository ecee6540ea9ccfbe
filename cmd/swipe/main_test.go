package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/swipe"
)

type scripted struct {
	liked []models.LikeType
}

func (s *scripted) Fetch(_ context.Context, feed swipe.FeedType) ([]models.SerializedPost, error) {
	if feed == swipe.FeedFollowings {
		return nil, nil
	}
	return []models.SerializedPost{
		{ID: 1, ImageName: "Nova", Prompt: "neon portrait", User: models.UserSummary{Name: "alice"}},
		{ID: 2, ImageName: "Iris", User: models.UserSummary{Name: "bob"}},
	}, nil
}

func (s *scripted) SetLike(_ context.Context, _ uint, likeType models.LikeType) error {
	s.liked = append(s.liked, likeType)
	return nil
}

func TestRunDrivesSession(t *testing.T) {
	backend := &scripted{}
	var out bytes.Buffer
	in := strings.NewReader("j\nj\nl\nt\nl\nq\n")

	if err := run(context.Background(), swipe.NewSession(backend, backend), in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(backend.liked) != 1 || backend.liked[0] != models.LikeTypeLike {
		t.Fatalf("likes = %v", backend.liked)
	}
	for _, want := range []string{"Nova by alice", "neon portrait", "Iris by bob", "[followings] no more candidates"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}

type offline struct{}

func (offline) Fetch(context.Context, swipe.FeedType) ([]models.SerializedPost, error) {
	return nil, errors.New("backend unavailable")
}

func (offline) SetLike(context.Context, uint, models.LikeType) error {
	return errors.New("backend unavailable")
}

func TestRunSurvivesFetchFailure(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("t\nl\nq\n")

	if err := run(context.Background(), swipe.NewSession(offline{}, offline{}), in, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"error: fetch recommended: backend unavailable",
		"[recommended] no more candidates",
		"[followings] no more candidates",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}
