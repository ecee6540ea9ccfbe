package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
)

type memModerationRepo struct {
	mu      sync.Mutex
	results []models.ModerationResult
}

func (r *memModerationRepo) CreateResult(_ context.Context, result *models.ModerationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, *result)
	return nil
}

func (r *memModerationRepo) GetResultsByPostID(_ context.Context, postID uint, limit int64) ([]models.ModerationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ModerationResult
	for i := len(r.results) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.results[i].PostID == postID {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

func TestRecordModerationFlipsPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	viewer := env.user(t, "viewer")
	post := env.post(t, owner, nil)
	repo := &memModerationRepo{}
	svc := NewModerationService(env.deps, repo)
	feed := NewFeedService(env.deps)

	before, err := feed.Recommended(ctx, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != 0 {
		t.Fatalf("pending post in feed: %v", postIDs(before))
	}

	if _, err := svc.Record(ctx, post.ID, models.RecordModerationRequest{Score: 0.1, Approved: approved(true), ModelVersion: "v1"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	after, err := feed.Recommended(ctx, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint{post.ID}; !sameIDs(postIDs(after), want) {
		t.Fatalf("feed after approval = %v", postIDs(after))
	}

	if _, err := svc.Record(ctx, post.ID, models.RecordModerationRequest{Score: 0.9, Approved: approved(false), ModelVersion: "v2"}); err != nil {
		t.Fatal(err)
	}
	history, err := svc.History(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].ModelVersion != "v2" {
		t.Fatalf("history = %+v", history)
	}
}

func TestRecordModerationErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModerationService(env.deps, &memModerationRepo{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, 999, models.RecordModerationRequest{Approved: approved(true)}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing post: err = %v", err)
	}
	post := env.post(t, env.user(t, "owner"), nil)
	if _, err := svc.Record(ctx, post.ID, models.RecordModerationRequest{}); !apperr.Is(err, apperr.KindInvalid) {
		t.Fatalf("missing verdict: err = %v", err)
	}
}
