package services

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FollowService maintains the directed follow graph
type FollowService interface {
	Follow(ctx context.Context, actorID, targetID uint) error
	Unfollow(ctx context.Context, actorID, targetID uint) error
	ListFollowers(ctx context.Context, viewerID, userID uint) ([]models.FollowUser, error)
	ListFollowees(ctx context.Context, viewerID, userID uint) ([]models.FollowUser, error)
}

type followServiceImpl struct {
	db         *gorm.DB
	repos      repos
	serializer *Serializer
	fanout     *fanout
	log        *zap.Logger
}

func NewFollowService(d Deps) FollowService {
	return &followServiceImpl{
		db:         d.DB,
		repos:      reposFor(d.DB),
		serializer: d.serializer(),
		fanout:     d.fanout(),
		log:        d.logger(),
	}
}

// Follow creates the actor -> target edge and notifies the target
func (s *followServiceImpl) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return apperr.Invalid("Cannot follow yourself")
	}

	var notif *models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		if _, err := r.users.GetUserByID(ctx, targetID); err != nil {
			return lookupErr(err, "User not found")
		}
		created, err := r.follows.CreateFollow(ctx, actorID, targetID)
		if err != nil {
			return apperr.Internal("create follow", err)
		}
		if !created {
			return apperr.Conflict("Follow already exists")
		}
		notif = &models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     actorID,
			RecipientID: targetID,
		}
		if err := r.notifications.CreateNotification(ctx, notif); err != nil {
			return apperr.Internal("create follow notification", err)
		}
		return nil
	})
	if err != nil {
		if !apperr.IsDomain(err) {
			err = apperr.Internal("follow", err)
		}
		if apperr.Is(err, apperr.KindInternal) {
			s.log.Error("follow failed", zap.Uint("actor_id", actorID), zap.Uint("target_id", targetID), zap.Error(err))
		}
		return err
	}

	s.fanout.notificationCreated(ctx, notif)
	return nil
}

// Unfollow deletes the actor -> target edge
func (s *followServiceImpl) Unfollow(ctx context.Context, actorID, targetID uint) error {
	deleted, err := s.repos.follows.DeleteFollow(ctx, actorID, targetID)
	if err != nil {
		return apperr.Internal("delete follow", err)
	}
	if !deleted {
		return apperr.NotFound("Follow not found")
	}
	return nil
}

// ListFollowers lists who follows userID, flagged against the viewer's own edges
func (s *followServiceImpl) ListFollowers(ctx context.Context, viewerID, userID uint) ([]models.FollowUser, error) {
	if err := s.requireUsers(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	users, err := s.repos.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("load followers", err)
	}
	return s.flag(ctx, viewerID, users)
}

// ListFollowees lists whom userID follows, flagged against the viewer's own edges
func (s *followServiceImpl) ListFollowees(ctx context.Context, viewerID, userID uint) ([]models.FollowUser, error) {
	if err := s.requireUsers(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	users, err := s.repos.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("load followees", err)
	}
	return s.flag(ctx, viewerID, users)
}

func (s *followServiceImpl) requireUsers(ctx context.Context, ids ...uint) error {
	for _, id := range ids {
		if _, err := s.repos.users.GetUserByID(ctx, id); err != nil {
			return lookupErr(err, "User not found")
		}
	}
	return nil
}

// flag marks each user with isFollowee (viewer follows them) and isFollower (they follow viewer)
func (s *followServiceImpl) flag(ctx context.Context, viewerID uint, users []models.User) ([]models.FollowUser, error) {
	followeeIDs, err := s.repos.follows.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, apperr.Internal("load viewer followees", err)
	}
	followerIDs, err := s.repos.follows.GetFollowerIDs(ctx, viewerID)
	if err != nil {
		return nil, apperr.Internal("load viewer followers", err)
	}
	followees := toSet(followeeIDs)
	followers := toSet(followerIDs)

	summaries, err := s.serializer.UserSummaries(ctx, users)
	if err != nil {
		return nil, apperr.Internal("serialize users", err)
	}
	out := make([]models.FollowUser, len(users))
	for i, u := range users {
		_, isFollowee := followees[u.ID]
		_, isFollower := followers[u.ID]
		out[i] = models.FollowUser{
			UserSummary: summaries[i],
			IsFollowee:  isFollowee,
			IsFollower:  isFollower,
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		}
	}
	return out, nil
}

func toSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
