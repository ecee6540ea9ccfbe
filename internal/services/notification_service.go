package services

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
)

// NotificationService serves the recipient's notification list
type NotificationService interface {
	List(ctx context.Context, viewerID uint) ([]models.SerializedNotification, error)
	UnreadCount(ctx context.Context, viewerID uint) (int64, error)
}

type notificationServiceImpl struct {
	repos      repos
	serializer *Serializer
	cache      UnreadCache
	log        *zap.Logger
}

func NewNotificationService(d Deps) NotificationService {
	return &notificationServiceImpl{
		repos:      reposFor(d.DB),
		serializer: d.serializer(),
		cache:      d.UnreadCache,
		log:        d.logger(),
	}
}

// List returns every notification newest first and marks the unread ones as read.
// Anything outside the error taxonomy is reported as a generic internal error.
func (s *notificationServiceImpl) List(ctx context.Context, viewerID uint) (_ []models.SerializedNotification, err error) {
	defer func() {
		if err != nil && !apperr.IsDomain(err) {
			s.log.Error("list notifications failed", zap.Uint("viewer_id", viewerID), zap.Error(err))
			err = apperr.Internal("Internal server error", err)
		}
	}()

	if _, err := s.repos.users.GetUserByID(ctx, viewerID); err != nil {
		return nil, lookupErr(err, "User not found")
	}
	notifications, err := s.repos.notifications.GetByRecipientID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	var unread []uint
	for _, n := range notifications {
		if !n.IsRead {
			unread = append(unread, n.ID)
		}
	}
	if err := s.repos.notifications.MarkAsRead(ctx, unread); err != nil {
		return nil, err
	}
	if s.cache != nil {
		// a notification committed after MarkAsRead must still be counted
		if err := s.cache.Invalidate(ctx, viewerID); err != nil {
			s.log.Warn("unread cache invalidation failed", zap.Uint("viewer_id", viewerID), zap.Error(err))
		}
	}

	out := make([]models.SerializedNotification, len(notifications))
	for i := range notifications {
		// read state as it was before this listing
		out[i] = s.serializer.Notification(ctx, &notifications[i])
	}
	return out, nil
}

// UnreadCount reads through the cache when one is configured
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, viewerID uint) (int64, error) {
	if s.cache != nil {
		n, ok, err := s.cache.Get(ctx, viewerID)
		if err != nil {
			s.log.Warn("unread cache read failed", zap.Uint("viewer_id", viewerID), zap.Error(err))
		} else if ok {
			return n, nil
		}
	}
	n, err := s.repos.notifications.GetUnreadCount(ctx, viewerID)
	if err != nil {
		return 0, apperr.Internal("count unread notifications", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, viewerID, n); err != nil {
			s.log.Warn("unread cache write failed", zap.Uint("viewer_id", viewerID), zap.Error(err))
		}
	}
	return n, nil
}
