package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/pkg/events"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSigner struct{}

func (fakeSigner) SignedURL(_ context.Context, ref string) (string, error) {
	if strings.Contains(ref, "broken") {
		return "", errors.New("signing unavailable")
	}
	return "https://cdn.test/" + ref + "?sig=1", nil
}

type fakeCache struct {
	mu          sync.Mutex
	counts      map[uint]int64
	invalidated []uint
}

func newFakeCache() *fakeCache { return &fakeCache{counts: map[uint]int64{}} }

func (c *fakeCache) Get(_ context.Context, userID uint) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counts[userID]
	return n, ok, nil
}

func (c *fakeCache) Set(_ context.Context, userID uint, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[userID] = count
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.NotificationCreated
}

func (p *fakePublisher) PublishNotificationCreated(evt events.NotificationCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type testEnv struct {
	db        *gorm.DB
	deps      Deps
	cache     *fakeCache
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a second connection would open a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}, &models.Follow{}, &models.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{db: db, cache: newFakeCache(), publisher: &fakePublisher{}}
	env.deps = Deps{
		DB:               db,
		Signer:           fakeSigner{},
		UnreadCache:      env.cache,
		Publisher:        env.publisher,
		AutoApprovePosts: true,
	}
	return env
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{FirebaseUID: "uid-" + name, Email: name + "@example.com", Name: name}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func approved(v bool) *bool { return &v }

func (e *testEnv) post(t *testing.T, author *models.User, state *bool, tags ...string) *models.Post {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	p := &models.Post{
		UserID:    author.ID,
		ImageKey:  "posts/" + author.Name + ".png",
		ImageName: "image",
		ImageAge:  "20",
		Prompt:    "a prompt",
		HashTags:  tags,
		Approved:  state,
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func (e *testEnv) like(t *testing.T, u *models.User, p *models.Post, likeType models.LikeType) {
	t.Helper()
	if err := e.db.Create(&models.Like{UserID: u.ID, PostID: p.ID, LikeType: likeType}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}
}

func (e *testEnv) follow(t *testing.T, follower, followee *models.User) {
	t.Helper()
	if err := e.db.Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}
}

func (e *testEnv) countNotifications(t *testing.T, recipient *models.User) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&models.Notification{}).Where("recipient_id = ?", recipient.ID).Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}

func postIDs(posts []models.SerializedPost) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func sameIDs(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
