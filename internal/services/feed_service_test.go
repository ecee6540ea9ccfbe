package services

import (
	"context"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
)

func TestRecommendedSkipsSeenUnapprovedAndOwnPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	viewer := env.user(t, "viewer")
	author := env.user(t, "author")

	fresh := env.post(t, author, approved(true))
	liked := env.post(t, author, approved(true))
	unliked := env.post(t, author, approved(true))
	env.post(t, author, nil)
	env.post(t, author, approved(false))
	env.post(t, viewer, approved(true))
	newest := env.post(t, author, approved(true))

	env.like(t, viewer, liked, models.LikeTypeLike)
	env.like(t, viewer, unliked, models.LikeTypeUnlike)

	got, err := NewFeedService(env.deps).Recommended(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Recommended: %v", err)
	}
	if want := []uint{newest.ID, fresh.ID}; !sameIDs(postIDs(got), want) {
		t.Fatalf("Recommended = %v, want %v", postIDs(got), want)
	}
	if got[0].User.ID != author.ID || got[0].ImageURL == "" {
		t.Fatalf("card not decorated: %+v", got[0])
	}
}

func TestRecommendedUnknownViewer(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewFeedService(env.deps).Recommended(context.Background(), 999)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestFollowingsOrdersSuperLikedFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	viewer := env.user(t, "viewer")
	friend := env.user(t, "friend")
	stranger := env.user(t, "stranger")
	env.follow(t, viewer, friend)

	friendPost := env.post(t, friend, approved(true))
	strangerPost := env.post(t, stranger, approved(true))
	env.post(t, stranger, approved(true))
	ownPost := env.post(t, viewer, approved(true))
	seenPost := env.post(t, friend, approved(true))

	env.like(t, friend, strangerPost, models.LikeTypeSuperLike)
	env.like(t, friend, ownPost, models.LikeTypeSuperLike)
	env.like(t, viewer, seenPost, models.LikeTypeLike)

	got, err := NewFeedService(env.deps).Followings(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Followings: %v", err)
	}
	if want := []uint{strangerPost.ID, friendPost.ID}; !sameIDs(postIDs(got), want) {
		t.Fatalf("Followings = %v, want %v", postIDs(got), want)
	}
	for _, p := range got {
		if p.UserID == viewer.ID {
			t.Fatalf("own post %d in followings feed", p.ID)
		}
	}
	if got[0].SuperLikeUser == nil || got[0].SuperLikeUser.ID != friend.ID {
		t.Fatalf("super-like user = %+v, want friend", got[0].SuperLikeUser)
	}
	if got[0].SuperLikeCount != 1 {
		t.Fatalf("super-like count = %d", got[0].SuperLikeCount)
	}
	if got[1].SuperLikeUser != nil {
		t.Fatalf("plain followee post carries a super-like user")
	}
}

func TestFollowingsEmptyWithoutFollowees(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.user(t, "viewer")
	other := env.user(t, "other")
	env.post(t, other, approved(true))

	got, err := NewFeedService(env.deps).Followings(context.Background(), viewer.ID)
	if err != nil {
		t.Fatalf("Followings: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Followings = %v, want empty", postIDs(got))
	}
}

func TestFeedsAreCapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	viewer := env.user(t, "viewer")
	friend := env.user(t, "friend")
	stranger := env.user(t, "stranger")
	env.follow(t, viewer, friend)

	var friendPosts, superLiked []*models.Post
	for i := 0; i < 30; i++ {
		friendPosts = append(friendPosts, env.post(t, friend, approved(true)))
	}
	for i := 0; i < 30; i++ {
		p := env.post(t, stranger, approved(true))
		env.like(t, friend, p, models.LikeTypeSuperLike)
		superLiked = append(superLiked, p)
	}

	svc := NewFeedService(env.deps)
	recommended, err := svc.Recommended(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Recommended: %v", err)
	}
	if len(recommended) != RecommendedLimit {
		t.Fatalf("recommended = %d posts, want %d", len(recommended), RecommendedLimit)
	}

	followings, err := svc.Followings(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Followings: %v", err)
	}
	if len(followings) != 2*FollowingsPartLimit {
		t.Fatalf("followings = %d posts, want %d", len(followings), 2*FollowingsPartLimit)
	}
	for i, p := range followings {
		boosted := p.SuperLikeUser != nil
		if i < FollowingsPartLimit && (!boosted || p.UserID != stranger.ID) {
			t.Fatalf("followings[%d] = post %d by %d, want a super-liked post", i, p.ID, p.UserID)
		}
		if i >= FollowingsPartLimit && (boosted || p.UserID != friend.ID) {
			t.Fatalf("followings[%d] = post %d by %d, want a followee post", i, p.ID, p.UserID)
		}
	}
	if followings[0].ID != superLiked[len(superLiked)-1].ID {
		t.Fatalf("first super-liked card = %d, want newest %d", followings[0].ID, superLiked[len(superLiked)-1].ID)
	}
	if followings[FollowingsPartLimit].ID != friendPosts[len(friendPosts)-1].ID {
		t.Fatalf("first followee card = %d, want newest %d", followings[FollowingsPartLimit].ID, friendPosts[len(friendPosts)-1].ID)
	}
}
