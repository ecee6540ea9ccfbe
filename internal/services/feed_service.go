package services

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
)

const (
	RecommendedLimit    = 50
	FollowingsPartLimit = 25
)

// FeedService builds the two swipe feeds
type FeedService interface {
	Recommended(ctx context.Context, viewerID uint) ([]models.SerializedPost, error)
	Followings(ctx context.Context, viewerID uint) ([]models.SerializedPost, error)
}

type feedServiceImpl struct {
	repos      repos
	serializer *Serializer
	log        *zap.Logger
}

func NewFeedService(d Deps) FeedService {
	return &feedServiceImpl{repos: reposFor(d.DB), serializer: d.serializer(), log: d.logger()}
}

func (s *feedServiceImpl) requireViewer(ctx context.Context, viewerID uint) error {
	if _, err := s.repos.users.GetUserByID(ctx, viewerID); err != nil {
		return lookupErr(err, "User not found")
	}
	return nil
}

// Recommended lists approved posts from other users the viewer has not swiped yet
func (s *feedServiceImpl) Recommended(ctx context.Context, viewerID uint) ([]models.SerializedPost, error) {
	if err := s.requireViewer(ctx, viewerID); err != nil {
		return nil, err
	}
	posts, err := s.repos.posts.FindRecommended(ctx, viewerID, RecommendedLimit)
	if err != nil {
		return nil, apperr.Internal("load recommended posts", err)
	}
	return s.decorate(ctx, posts)
}

// Followings lists posts super-liked by followees first, then other posts by followees
func (s *feedServiceImpl) Followings(ctx context.Context, viewerID uint) ([]models.SerializedPost, error) {
	if err := s.requireViewer(ctx, viewerID); err != nil {
		return nil, err
	}
	superLiked, err := s.repos.posts.FindSuperLikedByFollowees(ctx, viewerID, FollowingsPartLimit)
	if err != nil {
		return nil, apperr.Internal("load super-liked followee posts", err)
	}
	plain, err := s.repos.posts.FindByFollowees(ctx, viewerID, FollowingsPartLimit)
	if err != nil {
		return nil, apperr.Internal("load followee posts", err)
	}
	s.log.Debug("followings feed",
		zap.Uint("viewer_id", viewerID),
		zap.Int("super_liked", len(superLiked)),
		zap.Int("plain", len(plain)))
	return s.decorate(ctx, append(superLiked, plain...))
}

// decorate attaches the most recent super-like actor of each post and serializes the page
func (s *feedServiceImpl) decorate(ctx context.Context, posts []models.Post) ([]models.SerializedPost, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	superLikes, err := s.repos.likes.LatestSuperLikes(ctx, ids, nil)
	if err != nil {
		return nil, apperr.Internal("load super-likes", err)
	}
	return s.serializer.Posts(ctx, posts, superLikes)
}

