package services

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/repositories"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// signConcurrency bounds the signed-URL calls in flight for one page
const signConcurrency = 8

// Serializer turns rows into API payloads. Image URLs are signed on every call.
type Serializer struct {
	signer ImageSigner
	likes  repositories.LikeRepository
	log    *zap.Logger
}

func NewSerializer(signer ImageSigner, likes repositories.LikeRepository, log *zap.Logger) *Serializer {
	return &Serializer{signer: signer, likes: likes, log: log}
}

// imageURL signs ref, falling back to fallback when there is nothing to sign.
// A signing failure degrades to the fallback rather than failing the page.
func (s *Serializer) imageURL(ctx context.Context, ref, fallback string) string {
	if ref == "" || s.signer == nil {
		return fallback
	}
	u, err := s.signer.SignedURL(ctx, ref)
	if err != nil {
		s.log.Warn("image signing failed", zap.String("ref", ref), zap.Error(err))
		return fallback
	}
	if u == "" {
		return fallback
	}
	return u
}

func (s *Serializer) UserSummary(ctx context.Context, u *models.User) models.UserSummary {
	return models.UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		ImageURL: s.imageURL(ctx, u.ImageKey, u.Image),
	}
}

func (s *Serializer) UserSummaries(ctx context.Context, users []models.User) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)
	for i := range users {
		i := i
		g.Go(func() error {
			out[i] = s.UserSummary(gctx, &users[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Posts serializes a page of posts. superLikes maps post id to the super-like shown on the card.
func (s *Serializer) Posts(ctx context.Context, posts []models.Post, superLikes map[uint]models.Like) ([]models.SerializedPost, error) {
	out := make([]models.SerializedPost, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.likes.CountsByPostIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("count likes", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)
	for i := range posts {
		i := i
		g.Go(func() error {
			p := &posts[i]
			var sp models.SerializedPost
			if err := copier.Copy(&sp, p); err != nil {
				return err
			}
			sp.HashTags = append([]string{}, p.HashTags...)
			sp.ImageURL = s.imageURL(gctx, p.ImageKey, "")
			sp.LikeCount = counts[p.ID].Like
			sp.SuperLikeCount = counts[p.ID].SuperLike
			sp.User = s.UserSummary(gctx, &p.User)
			if l, ok := superLikes[p.ID]; ok {
				liker := s.UserSummary(gctx, &l.User)
				sp.SuperLikeUser = &liker
			}
			out[i] = sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("serialize posts", err)
	}
	return out, nil
}

func (s *Serializer) Notification(ctx context.Context, n *models.Notification) models.SerializedNotification {
	return models.SerializedNotification{
		ID:               n.ID,
		NotificationType: n.Type,
		Message:          n.Type.Message(n.Actor.Name),
		PostID:           n.PostID,
		Read:             n.IsRead,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		NotifierUser:     s.UserSummary(ctx, &n.Actor),
	}
}
