package services

import (
	"context"
	"errors"
	"slices"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LikeService owns the per-(user, post) like state
type LikeService interface {
	SetLike(ctx context.Context, viewerID, postID uint, likeType models.LikeType) (*models.Like, error)
	RemoveLike(ctx context.Context, viewerID, likeID uint) error
	ListLikers(ctx context.Context, postID uint, likeType models.LikeType) ([]models.UserSummary, error)
	LikedPosts(ctx context.Context, viewerID, userID uint, likeType models.LikeType, tag string) ([]models.SerializedPost, error)
}

type likeServiceImpl struct {
	db         *gorm.DB
	repos      repos
	serializer *Serializer
	fanout     *fanout
	log        *zap.Logger
}

func NewLikeService(d Deps) LikeService {
	return &likeServiceImpl{
		db:         d.DB,
		repos:      reposFor(d.DB),
		serializer: d.serializer(),
		fanout:     d.fanout(),
		log:        d.logger(),
	}
}

// SetLike upserts the viewer's state on a post and notifies the author on a positive state
func (s *likeServiceImpl) SetLike(ctx context.Context, viewerID, postID uint, likeType models.LikeType) (*models.Like, error) {
	if !likeType.Valid() {
		return nil, apperr.Invalid("Invalid like type")
	}

	var (
		like  *models.Like
		notif *models.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		post, err := r.posts.GetPostByID(ctx, postID)
		if err != nil {
			return lookupErr(err, "Post not found")
		}

		like, err = r.likes.UpsertLike(ctx, viewerID, postID, likeType)
		if err != nil {
			return apperr.Internal("upsert like", err)
		}

		notifType, positive := models.NotificationTypeForLike(likeType)
		if !positive || post.UserID == viewerID {
			return nil
		}
		notif = &models.Notification{
			Type:        notifType,
			ActorID:     viewerID,
			RecipientID: post.UserID,
			PostID:      &post.ID,
		}
		if err := r.notifications.CreateNotification(ctx, notif); err != nil {
			return apperr.Internal("create like notification", err)
		}
		return nil
	})
	if err != nil {
		if !apperr.IsDomain(err) {
			err = apperr.Internal("set like", err)
		}
		if apperr.Is(err, apperr.KindInternal) {
			s.log.Error("set like failed", zap.Uint("viewer_id", viewerID), zap.Uint("post_id", postID), zap.Error(err))
		}
		return nil, err
	}

	if notif != nil {
		s.fanout.notificationCreated(ctx, notif)
	}
	return like, nil
}

// RemoveLike deletes one of the viewer's like rows outright
func (s *likeServiceImpl) RemoveLike(ctx context.Context, viewerID, likeID uint) error {
	like, err := s.repos.likes.GetLikeByID(ctx, likeID)
	if err != nil {
		return lookupErr(err, "Like not found")
	}
	if like.UserID != viewerID {
		return apperr.NotFound("Like not found")
	}
	if err := s.repos.likes.DeleteLike(ctx, likeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Like not found")
		}
		return apperr.Internal("delete like", err)
	}
	return nil
}

// ListLikers returns the users holding a positive state on a post
func (s *likeServiceImpl) ListLikers(ctx context.Context, postID uint, likeType models.LikeType) ([]models.UserSummary, error) {
	if !likeType.Positive() {
		return nil, apperr.Invalid("like_type must be like or super_like")
	}
	if _, err := s.repos.posts.GetPostByID(ctx, postID); err != nil {
		return nil, lookupErr(err, "Post not found")
	}
	users, err := s.repos.likes.GetLikersByType(ctx, postID, likeType)
	if err != nil {
		return nil, apperr.Internal("load likers", err)
	}
	return s.serializer.UserSummaries(ctx, users)
}

// LikedPosts lists the approved posts on which userID holds likeType.
// "like" also matches super-likes. tag, when set, must equal one of the post's hash tags.
func (s *likeServiceImpl) LikedPosts(ctx context.Context, viewerID, userID uint, likeType models.LikeType, tag string) ([]models.SerializedPost, error) {
	if !likeType.Valid() {
		return nil, apperr.Invalid("Invalid like type")
	}
	if _, err := s.repos.users.GetUserByID(ctx, userID); err != nil {
		return nil, lookupErr(err, "User not found")
	}

	types := []models.LikeType{likeType}
	if likeType == models.LikeTypeLike {
		types = append(types, models.LikeTypeSuperLike)
	}
	posts, err := s.repos.posts.FindLikedByUser(ctx, userID, types)
	if err != nil {
		return nil, apperr.Internal("load liked posts", err)
	}

	if tag != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if slices.Contains(p.HashTags, tag) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	mine, err := s.repos.likes.LatestSuperLikes(ctx, ids, &viewerID)
	if err != nil {
		return nil, apperr.Internal("load super-likes", err)
	}
	return s.serializer.Posts(ctx, posts, mine)
}
