package swipe

import (
	"context"
	"errors"
	"sync"

	"github.com/anonto42/promptswipe/backend/internal/models"
)

// FeedType names a swipe tab
type FeedType string

const (
	FeedRecommended FeedType = "recommended"
	FeedFollowings  FeedType = "followings"
)

func (f FeedType) Valid() bool {
	switch f {
	case FeedRecommended, FeedFollowings:
		return true
	}
	return false
}

// Scroll positions within a card
const (
	ScrollImage = iota
	ScrollTags
	ScrollPrompt
)

type Direction int

const (
	Up Direction = iota
	Down
)

var (
	ErrNoCard      = errors.New("swipe: no current card")
	ErrUnknownFeed = errors.New("swipe: unknown feed")
)

// Fetcher loads one page of a feed
type Fetcher interface {
	Fetch(ctx context.Context, feed FeedType) ([]models.SerializedPost, error)
}

// Liker records the viewer's state on a post
type Liker interface {
	SetLike(ctx context.Context, postID uint, likeType models.LikeType) error
}

// Deck is the swipe state of one feed tab.
// While a refetch is pending there is no current card.
type Deck struct {
	mu      sync.Mutex
	feed    FeedType
	fetcher Fetcher
	liker   Liker

	posts        []models.SerializedPost
	cardIndex    int
	scrollIndex  int
	needsRefetch bool
}

// NewDeck returns an empty deck that loads on its first Tick
func NewDeck(feed FeedType, fetcher Fetcher, liker Liker) *Deck {
	return &Deck{feed: feed, fetcher: fetcher, liker: liker, needsRefetch: true}
}

func (d *Deck) Feed() FeedType { return d.feed }

func (d *Deck) CardIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cardIndex
}

func (d *Deck) ScrollIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollIndex
}

func (d *Deck) NeedsRefetch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.needsRefetch
}

// Current returns the card on screen
func (d *Deck) Current() (models.SerializedPost, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasCard() {
		return models.SerializedPost{}, false
	}
	return d.posts[d.cardIndex], true
}

func (d *Deck) hasCard() bool {
	return !d.needsRefetch && d.cardIndex < len(d.posts)
}

func (d *Deck) Like(ctx context.Context) error {
	return d.act(ctx, models.LikeTypeLike)
}

func (d *Deck) SuperLike(ctx context.Context) error {
	return d.act(ctx, models.LikeTypeSuperLike)
}

func (d *Deck) Nope(ctx context.Context) error {
	return d.act(ctx, models.LikeTypeUnlike)
}

// act records likeType on the current card and moves to the next one.
// A failed call leaves the deck where it was.
func (d *Deck) act(ctx context.Context, likeType models.LikeType) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasCard() {
		return ErrNoCard
	}
	if err := d.liker.SetLike(ctx, d.posts[d.cardIndex].ID, likeType); err != nil {
		return err
	}
	d.scrollIndex = ScrollImage
	d.cardIndex++
	if d.cardIndex >= len(d.posts) {
		d.cardIndex = 0
		d.needsRefetch = true
	}
	return nil
}

// Scroll moves between image, tags and prompt. Moving past either end does nothing.
func (d *Deck) Scroll(dir Direction) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasCard() {
		return ErrNoCard
	}
	switch dir {
	case Up:
		if d.scrollIndex > ScrollImage {
			d.scrollIndex--
		}
	case Down:
		if d.scrollIndex < ScrollPrompt {
			d.scrollIndex++
		}
	}
	return nil
}

// Reload refetches the feed and shows its first card
func (d *Deck) Reload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reload(ctx)
}

func (d *Deck) reload(ctx context.Context) error {
	posts, err := d.fetcher.Fetch(ctx, d.feed)
	if err != nil {
		d.needsRefetch = true
		return err
	}
	d.posts = posts
	d.cardIndex = 0
	d.scrollIndex = ScrollImage
	d.needsRefetch = false
	return nil
}

// Tick runs a pending refetch and reports whether one happened
func (d *Deck) Tick(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.needsRefetch {
		return false, nil
	}
	return true, d.reload(ctx)
}
