package apiclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/swipe"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Client talks to the /api/v1 surface on behalf of one signed-in user.
// It satisfies swipe.Fetcher and swipe.Liker.
type Client struct {
	http *resty.Client
}

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

var (
	_ swipe.Fetcher = (*Client)(nil)
	_ swipe.Liker   = (*Client)(nil)
)

func New(baseURL, token string) *Client {
	client := resty.New().
		SetBaseURL(baseURL+"/api/v1").
		SetTimeout(15*time.Second).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &Client{http: client}
}

// Login exchanges a Firebase ID token for a session token and keeps it for later calls
func (c *Client) Login(ctx context.Context, idToken string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"idToken": idToken}).
		SetResult(&out).
		SetError(&APIError{}).
		Post("/auth/firebase-login")
	if err := check(resp, err); err != nil {
		return "", err
	}
	c.http.SetAuthToken(out.Token)
	return out.Token, nil
}

func (c *Client) Fetch(ctx context.Context, feed swipe.FeedType) ([]models.SerializedPost, error) {
	if !feed.Valid() {
		return nil, swipe.ErrUnknownFeed
	}
	var posts []models.SerializedPost
	resp, err := c.http.R().SetContext(ctx).
		SetResult(&posts).
		SetError(&APIError{}).
		Get("/feed/" + string(feed))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) SetLike(ctx context.Context, postID uint, likeType models.LikeType) error {
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("id", strconv.FormatUint(uint64(postID), 10)).
		SetBody(models.SetLikeRequest{LikeType: likeType}).
		SetError(&APIError{}).
		Put("/posts/{id}/like")
	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr.Message == "" {
		apiErr = &APIError{Message: resp.Status()}
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}
