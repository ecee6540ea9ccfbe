package services

import (
	"context"
	"errors"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/repositories"
	"github.com/anonto42/promptswipe/backend/pkg/events"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageSigner resolves an object-storage reference into a time-limited URL
type ImageSigner interface {
	SignedURL(ctx context.Context, ref string) (string, error)
}

// UnreadCache caches unread notification counts
type UnreadCache interface {
	Get(ctx context.Context, userID uint) (int64, bool, error)
	Set(ctx context.Context, userID uint, count int64) error
	Invalidate(ctx context.Context, userID uint) error
}

// NotificationPublisher announces committed notifications
type NotificationPublisher interface {
	PublishNotificationCreated(evt events.NotificationCreated) error
}

// repos bundles the repositories bound to one *gorm.DB, either the pool or a transaction.
type repos struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
}

func reposFor(db *gorm.DB) repos {
	return repos{
		users:         repositories.NewPostgresUserRepository(db),
		posts:         repositories.NewPostgresPostRepository(db),
		likes:         repositories.NewPostgresLikeRepository(db),
		follows:       repositories.NewPostgresFollowRepository(db),
		notifications: repositories.NewPostgresNotificationRepository(db),
	}
}

// lookupErr maps a missing row to not_found and anything else to internal.
func lookupErr(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Internal(notFoundMsg, err)
}

// fanout runs the best-effort side effects of a committed notification.
type fanout struct {
	cache     UnreadCache
	publisher NotificationPublisher
	log       *zap.Logger
}

func (f *fanout) notificationCreated(ctx context.Context, n *models.Notification) {
	if f == nil {
		return
	}
	if f.cache != nil {
		if err := f.cache.Invalidate(ctx, n.RecipientID); err != nil {
			f.log.Warn("unread cache invalidation failed", zap.Uint("recipient_id", n.RecipientID), zap.Error(err))
		}
	}
	if f.publisher != nil {
		if err := f.publisher.PublishNotificationCreated(events.NewNotificationCreated(n)); err != nil {
			f.log.Warn("notification event publish failed", zap.Uint("notification_id", n.ID), zap.Error(err))
		}
	}
}

// Deps carries the collaborators shared by all services
type Deps struct {
	DB               *gorm.DB
	Signer           ImageSigner
	UnreadCache      UnreadCache
	Publisher        NotificationPublisher
	Logger           *zap.Logger
	AutoApprovePosts bool
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) fanout() *fanout {
	return &fanout{cache: d.UnreadCache, publisher: d.Publisher, log: d.logger()}
}

func (d Deps) serializer() *Serializer {
	return NewSerializer(d.Signer, repositories.NewPostgresLikeRepository(d.DB), d.logger())
}
