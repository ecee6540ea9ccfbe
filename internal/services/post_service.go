package services

import (
	"context"
	"errors"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService manages uploads and per-user post listings
type PostService interface {
	Create(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, userID, postID uint) error
	Index(ctx context.Context, viewerID, userID uint) ([]models.SerializedPost, error)
	Detail(ctx context.Context, postID uint) (*models.SerializedPost, error)
}

type postServiceImpl struct {
	repos       repos
	serializer  *Serializer
	autoApprove bool
	log         *zap.Logger
}

func NewPostService(d Deps) PostService {
	return &postServiceImpl{
		repos:       reposFor(d.DB),
		serializer:  d.serializer(),
		autoApprove: d.AutoApprovePosts,
		log:         d.logger(),
	}
}

func (s *postServiceImpl) Create(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:          userID,
		ImageKey:        req.ImageKey,
		ImageName:       req.ImageName,
		ImageAge:        req.ImageAge,
		ImageBirthplace: req.ImageBirthplace,
		Prompt:          req.Prompt,
		HashTags:        req.HashTags,
	}
	if s.autoApprove {
		approved := true
		post.Approved = &approved
	}
	if post.HashTags == nil {
		post.HashTags = []string{}
	}
	if err := s.repos.posts.CreatePost(ctx, post); err != nil {
		return nil, apperr.Internal("create post", err)
	}
	s.log.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", userID),
		zap.String("moderation", string(post.ModerationState())))
	return post, nil
}

// Delete removes a post owned by userID; someone else's post reads as missing
func (s *postServiceImpl) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.repos.posts.GetPostByID(ctx, postID)
	if err != nil {
		return lookupErr(err, "Post not found")
	}
	if post.UserID != userID {
		return apperr.NotFound("Post not found")
	}
	if err := s.repos.posts.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("delete post", err)
	}
	return nil
}

// Index lists userID's posts; pending placeholders are only shown to the owner
func (s *postServiceImpl) Index(ctx context.Context, viewerID, userID uint) ([]models.SerializedPost, error) {
	if _, err := s.repos.users.GetUserByID(ctx, userID); err != nil {
		return nil, lookupErr(err, "User not found")
	}
	posts, err := s.repos.posts.GetPostsByUserID(ctx, userID, viewerID == userID)
	if err != nil {
		return nil, apperr.Internal("load user posts", err)
	}
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

func (s *postServiceImpl) Detail(ctx context.Context, postID uint) (*models.SerializedPost, error) {
	post, err := s.repos.posts.GetApprovedPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "Post not found")
	}
	superLikes, err := s.repos.likes.LatestSuperLikes(ctx, []uint{post.ID}, nil)
	if err != nil {
		return nil, apperr.Internal("load super-likes", err)
	}
	out, err := s.serializer.Posts(ctx, []models.Post{*post}, superLikes)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
