package services

import (
	"context"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
)

func TestFollowTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "a")
	b := env.user(t, "b")
	svc := NewFollowService(env.deps)

	if err := svc.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := svc.Follow(ctx, a.ID, b.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second Follow: err = %v, want conflict", err)
	}
	var edges int64
	env.db.Model(&models.Follow{}).Count(&edges)
	if edges != 1 {
		t.Fatalf("edges = %d, want 1", edges)
	}
	if got := env.countNotifications(t, b); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
}

func TestFollowValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "a")
	svc := NewFollowService(env.deps)

	if err := svc.Follow(ctx, a.ID, a.ID); !apperr.Is(err, apperr.KindInvalid) {
		t.Fatalf("self follow: err = %v", err)
	}
	if err := svc.Follow(ctx, a.ID, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing target: err = %v", err)
	}
	if got := env.countNotifications(t, a); got != 0 {
		t.Fatalf("notifications = %d, want 0", got)
	}
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "a")
	b := env.user(t, "b")
	svc := NewFollowService(env.deps)

	if err := svc.Unfollow(ctx, a.ID, b.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("unfollow without edge: err = %v", err)
	}
	env.follow(t, a, b)
	if err := svc.Unfollow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if err := svc.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("refollow: %v", err)
	}
}

func TestListFollowersFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.user(t, "v")
	a := env.user(t, "a")
	b := env.user(t, "b")
	env.follow(t, a, v)
	env.follow(t, b, v)
	env.follow(t, v, a)

	got, err := NewFollowService(env.deps).ListFollowers(ctx, v.ID, v.ID)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("followers = %+v", got)
	}
	byID := map[uint]models.FollowUser{}
	for _, f := range got {
		byID[f.ID] = f
	}
	if f := byID[a.ID]; !f.IsFollowee || !f.IsFollower {
		t.Fatalf("a = %+v, want followee and follower", f)
	}
	if f := byID[b.ID]; f.IsFollowee || !f.IsFollower {
		t.Fatalf("b = %+v, want follower only", f)
	}
}

func TestListFolloweesOfAnotherUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.user(t, "v")
	u := env.user(t, "u")
	a := env.user(t, "a")
	env.follow(t, u, a)
	env.follow(t, u, v)
	env.follow(t, a, v)

	got, err := NewFollowService(env.deps).ListFollowees(ctx, v.ID, u.ID)
	if err != nil {
		t.Fatalf("ListFollowees: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("followees = %+v", got)
	}
	for _, f := range got {
		switch f.ID {
		case a.ID:
			if f.IsFollowee || !f.IsFollower {
				t.Fatalf("a = %+v", f)
			}
		case v.ID:
			if f.IsFollowee || f.IsFollower {
				t.Fatalf("viewer flagged against itself: %+v", f)
			}
		default:
			t.Fatalf("unexpected followee %d", f.ID)
		}
	}
	if _, err := NewFollowService(env.deps).ListFollowees(ctx, v.ID, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing user: err = %v", err)
	}
}
