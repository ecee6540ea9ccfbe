package swipe

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/promptswipe/backend/internal/models"
)

type call struct {
	postID   uint
	likeType models.LikeType
}

type fakeBackend struct {
	pages   map[FeedType][][]models.SerializedPost
	fetches map[FeedType]int
	calls   []call
	likeErr error
	feedErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{pages: map[FeedType][][]models.SerializedPost{}, fetches: map[FeedType]int{}}
}

func cards(ids ...uint) []models.SerializedPost {
	out := make([]models.SerializedPost, len(ids))
	for i, id := range ids {
		out[i] = models.SerializedPost{ID: id}
	}
	return out
}

func (b *fakeBackend) Fetch(_ context.Context, feed FeedType) ([]models.SerializedPost, error) {
	if b.feedErr != nil {
		return nil, b.feedErr
	}
	n := b.fetches[feed]
	b.fetches[feed]++
	pages := b.pages[feed]
	if n >= len(pages) {
		return nil, nil
	}
	return pages[n], nil
}

func (b *fakeBackend) SetLike(_ context.Context, postID uint, likeType models.LikeType) error {
	if b.likeErr != nil {
		return b.likeErr
	}
	b.calls = append(b.calls, call{postID, likeType})
	return nil
}

func loadedDeck(t *testing.T, b *fakeBackend) *Deck {
	t.Helper()
	d := NewDeck(FeedRecommended, b, b)
	if fetched, err := d.Tick(context.Background()); err != nil || !fetched {
		t.Fatalf("initial Tick = %v, %v", fetched, err)
	}
	return d
}

func TestThreeCardDeck(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.pages[FeedRecommended] = [][]models.SerializedPost{cards(10, 11, 12), cards(20)}
	d := loadedDeck(t, b)

	if err := d.Scroll(Down); err != nil {
		t.Fatal(err)
	}
	if err := d.Like(ctx); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if d.CardIndex() != 1 || d.ScrollIndex() != 0 {
		t.Fatalf("after like: card %d scroll %d, want 1, 0", d.CardIndex(), d.ScrollIndex())
	}
	if err := d.SuperLike(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Nope(ctx); err != nil {
		t.Fatal(err)
	}
	if d.CardIndex() != 0 || !d.NeedsRefetch() {
		t.Fatalf("after last card: card %d refetch %v, want 0, true", d.CardIndex(), d.NeedsRefetch())
	}

	want := []call{{10, models.LikeTypeLike}, {11, models.LikeTypeSuperLike}, {12, models.LikeTypeUnlike}}
	if len(b.calls) != len(want) {
		t.Fatalf("calls = %+v", b.calls)
	}
	for i := range want {
		if b.calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, b.calls[i], want[i])
		}
	}

	if err := d.Like(ctx); !errors.Is(err, ErrNoCard) {
		t.Fatalf("like while refetch pending: err = %v", err)
	}
	fetched, err := d.Tick(ctx)
	if err != nil || !fetched {
		t.Fatalf("Tick = %v, %v", fetched, err)
	}
	if c, ok := d.Current(); !ok || c.ID != 20 || d.NeedsRefetch() {
		t.Fatalf("after refetch: current %+v ok %v", c, ok)
	}
	if fetched, _ := d.Tick(ctx); fetched {
		t.Fatal("Tick refetched without a pending refetch")
	}
}

func TestScrollIsClamped(t *testing.T) {
	b := newFakeBackend()
	b.pages[FeedRecommended] = [][]models.SerializedPost{cards(1)}
	d := loadedDeck(t, b)

	d.Scroll(Up)
	if d.ScrollIndex() != ScrollImage {
		t.Fatalf("scroll = %d, want 0", d.ScrollIndex())
	}
	for n := 0; n < 5; n++ {
		d.Scroll(Down)
	}
	if d.ScrollIndex() != ScrollPrompt {
		t.Fatalf("scroll = %d, want 2", d.ScrollIndex())
	}
	d.Scroll(Up)
	if d.ScrollIndex() != ScrollTags {
		t.Fatalf("scroll = %d, want 1", d.ScrollIndex())
	}
}

func TestEmptyFeedIsNoOp(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	d := loadedDeck(t, b)

	if _, ok := d.Current(); ok {
		t.Fatal("empty deck has a current card")
	}
	if err := d.Like(ctx); !errors.Is(err, ErrNoCard) {
		t.Fatalf("Like: err = %v", err)
	}
	if err := d.Scroll(Down); !errors.Is(err, ErrNoCard) {
		t.Fatalf("Scroll: err = %v", err)
	}
	if len(b.calls) != 0 {
		t.Fatalf("calls = %+v", b.calls)
	}
}

func TestFailedLikeKeepsPosition(t *testing.T) {
	b := newFakeBackend()
	b.pages[FeedRecommended] = [][]models.SerializedPost{cards(1, 2)}
	d := loadedDeck(t, b)
	d.Scroll(Down)

	b.likeErr = errors.New("offline")
	if err := d.Like(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if d.CardIndex() != 0 || d.ScrollIndex() != ScrollTags {
		t.Fatalf("card %d scroll %d, want unchanged", d.CardIndex(), d.ScrollIndex())
	}
}

func TestReloadResetsPosition(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.pages[FeedRecommended] = [][]models.SerializedPost{cards(1, 2, 3), cards(7, 8)}
	d := loadedDeck(t, b)
	d.Like(ctx)
	d.Scroll(Down)

	if err := d.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if c, _ := d.Current(); c.ID != 7 || d.CardIndex() != 0 || d.ScrollIndex() != 0 {
		t.Fatalf("after reload: current %d card %d scroll %d", c.ID, d.CardIndex(), d.ScrollIndex())
	}

	b.feedErr = errors.New("offline")
	if err := d.Reload(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if !d.NeedsRefetch() {
		t.Fatal("failed reload must leave a pending refetch")
	}
}

func TestSessionKeepsTabsApart(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.pages[FeedRecommended] = [][]models.SerializedPost{cards(1, 2)}
	b.pages[FeedFollowings] = [][]models.SerializedPost{cards(5, 6)}
	s := NewSession(b, b)

	rec := s.Active()
	rec.Tick(ctx)
	rec.Like(ctx)

	fol, err := s.Switch(FeedFollowings)
	if err != nil {
		t.Fatal(err)
	}
	fol.Tick(ctx)
	if c, _ := fol.Current(); c.ID != 5 {
		t.Fatalf("followings current = %d, want 5", c.ID)
	}
	if c, _ := rec.Current(); c.ID != 2 {
		t.Fatalf("recommended current = %d, want 2", c.ID)
	}
	if _, err := s.Switch("trending"); !errors.Is(err, ErrUnknownFeed) {
		t.Fatalf("unknown feed: err = %v", err)
	}
}
