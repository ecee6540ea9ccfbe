package services

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/repositories"
	"go.uber.org/zap"
)

const moderationHistoryLimit = 20

// ModerationService records image-analysis verdicts and applies them to posts
type ModerationService interface {
	Record(ctx context.Context, postID uint, req models.RecordModerationRequest) (*models.ModerationResult, error)
	History(ctx context.Context, postID uint) ([]models.ModerationResult, error)
}

type moderationServiceImpl struct {
	repos   repos
	results repositories.ModerationRepository
	log     *zap.Logger
}

func NewModerationService(d Deps, results repositories.ModerationRepository) ModerationService {
	return &moderationServiceImpl{repos: reposFor(d.DB), results: results, log: d.logger()}
}

// Record stores the verdict, then flips the post's moderation flag
func (s *moderationServiceImpl) Record(ctx context.Context, postID uint, req models.RecordModerationRequest) (*models.ModerationResult, error) {
	if req.Approved == nil {
		return nil, apperr.Invalid("approved is required")
	}
	post, err := s.repos.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "Post not found")
	}

	result := &models.ModerationResult{
		PostID:       post.ID,
		ImageKey:     post.ImageKey,
		Score:        req.Score,
		Approved:     *req.Approved,
		ModelVersion: req.ModelVersion,
	}
	if err := s.results.CreateResult(ctx, result); err != nil {
		return nil, apperr.Internal("store moderation result", err)
	}
	if err := s.repos.posts.SetApproved(ctx, post.ID, *req.Approved); err != nil {
		return nil, lookupErr(err, "Post not found")
	}
	s.log.Info("post moderated",
		zap.Uint("post_id", post.ID),
		zap.Bool("approved", *req.Approved),
		zap.Float64("score", req.Score),
		zap.String("model_version", req.ModelVersion))
	return result, nil
}

func (s *moderationServiceImpl) History(ctx context.Context, postID uint) ([]models.ModerationResult, error) {
	if _, err := s.repos.posts.GetPostByID(ctx, postID); err != nil {
		return nil, lookupErr(err, "Post not found")
	}
	results, err := s.results.GetResultsByPostID(ctx, postID, moderationHistoryLimit)
	if err != nil {
		return nil, apperr.Internal("load moderation results", err)
	}
	return results, nil
}
