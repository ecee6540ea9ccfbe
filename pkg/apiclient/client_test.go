package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/swipe"
)

func TestFetchAndLike(t *testing.T) {
	var likeBody, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/feed/followings":
			io.WriteString(w, `[{"id":3,"prompt":"p","user":{"id":9,"name":"n","image_url":""}}]`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/posts/3/like":
			b, _ := io.ReadAll(r.Body)
			likeBody = string(b)
			io.WriteString(w, `{"id":1}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Post not found"}`)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx := context.Background()
	posts, err := c.Fetch(ctx, swipe.FeedFollowings)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 3 || posts[0].User.ID != 9 {
		t.Fatalf("posts = %+v", posts)
	}
	if auth != "Bearer tok" {
		t.Fatalf("Authorization = %q", auth)
	}
	if err := c.SetLike(ctx, 3, models.LikeTypeSuperLike); err != nil {
		t.Fatalf("SetLike: %v", err)
	}
	if !strings.Contains(likeBody, `"like_type":"super_like"`) {
		t.Fatalf("like body = %s", likeBody)
	}

	err = c.SetLike(ctx, 4, models.LikeTypeLike)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Message != "Post not found" {
		t.Fatalf("err = %#v", err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/v1/auth/firebase-login" {
			io.WriteString(w, `{"token":"session"}`)
			return
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	token, err := c.Login(context.Background(), "id-token")
	if err != nil || token != "session" {
		t.Fatalf("Login = %q, %v", token, err)
	}
	if _, err := c.Fetch(context.Background(), swipe.FeedRecommended); err != nil {
		t.Fatal(err)
	}
	if seen[0] != "" || seen[1] != "Bearer session" {
		t.Fatalf("Authorization headers = %q", seen)
	}
}

func TestFetchRejectsUnknownFeed(t *testing.T) {
	if _, err := New("http://127.0.0.1:1", "").Fetch(context.Background(), "trending"); !errors.Is(err, swipe.ErrUnknownFeed) {
		t.Fatalf("err = %v", err)
	}
}
