package services

import (
	"context"
	"errors"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService provisions users and builds profiles
type UserService interface {
	SignIn(ctx context.Context, identity models.Identity) (*models.User, error)
	Current(ctx context.Context, viewerID uint) (*models.UserProfile, error)
	Show(ctx context.Context, viewerID, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, viewerID uint, req models.UpdateProfileRequest) (*models.UserProfile, error)
}

type userServiceImpl struct {
	repos         repos
	serializer    *Serializer
	notifications NotificationService
	log           *zap.Logger
}

func NewUserService(d Deps, notifications NotificationService) UserService {
	return &userServiceImpl{
		repos:         reposFor(d.DB),
		serializer:    d.serializer(),
		notifications: notifications,
		log:           d.logger(),
	}
}

// SignIn finds the user by provider UID, then by email, and creates one on first sign-in
func (s *userServiceImpl) SignIn(ctx context.Context, identity models.Identity) (*models.User, error) {
	if identity.FirebaseUID == "" {
		return nil, apperr.Unauthorized("Identity has no subject")
	}

	user, err := s.repos.users.GetUserByFirebaseUID(ctx, identity.FirebaseUID)
	if err == nil {
		if identity.Email != "" {
			user.Email = identity.Email
		}
		if user.Image == "" && identity.Picture != "" {
			user.Image = identity.Picture
		}
		if err := s.repos.users.UpdateUser(ctx, user); err != nil {
			return nil, apperr.Internal("update user", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("find user by uid", err)
	}

	if identity.Email != "" {
		user, err = s.repos.users.GetUserByEmail(ctx, identity.Email)
		if err == nil {
			user.FirebaseUID = identity.FirebaseUID
			if err := s.repos.users.UpdateUser(ctx, user); err != nil {
				return nil, apperr.Internal("link user", err)
			}
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("find user by email", err)
		}
	}

	user = &models.User{
		FirebaseUID: identity.FirebaseUID,
		Email:       identity.Email,
		Name:        identity.Name,
		Image:       identity.Picture,
	}
	if err := s.repos.users.CreateUser(ctx, user); err != nil {
		return nil, apperr.Internal("create user", err)
	}
	s.log.Info("user created on first sign-in", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *userServiceImpl) Current(ctx context.Context, viewerID uint) (*models.UserProfile, error) {
	return s.Show(ctx, viewerID, viewerID)
}

// Show builds userID's profile as seen by viewerID
func (s *userServiceImpl) Show(ctx context.Context, viewerID, userID uint) (*models.UserProfile, error) {
	user, err := s.repos.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "User not found")
	}
	if viewerID != userID {
		if _, err := s.repos.users.GetUserByID(ctx, viewerID); err != nil {
			return nil, lookupErr(err, "User not found")
		}
	}
	return s.profile(ctx, viewerID, user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, viewerID uint, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	user, err := s.repos.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, lookupErr(err, "User not found")
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ImageKey != nil {
		user.ImageKey = *req.ImageKey
	}
	if err := s.repos.users.UpdateUser(ctx, user); err != nil {
		return nil, apperr.Internal("update user", err)
	}
	return s.profile(ctx, viewerID, user)
}

func (s *userServiceImpl) profile(ctx context.Context, viewerID uint, user *models.User) (*models.UserProfile, error) {
	p := &models.UserProfile{
		UserSummary: s.serializer.UserSummary(ctx, user),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	var err error
	if p.PostCount, err = s.repos.posts.CountVisiblePostsByUserID(ctx, user.ID); err != nil {
		return nil, apperr.Internal("count posts", err)
	}
	if p.LikeCount, err = s.repos.likes.CountByUser(ctx, user.ID, models.LikeTypeLike); err != nil {
		return nil, apperr.Internal("count likes", err)
	}
	if p.SuperLikeCount, err = s.repos.likes.CountByUser(ctx, user.ID, models.LikeTypeSuperLike); err != nil {
		return nil, apperr.Internal("count super-likes", err)
	}
	if p.FollowerCount, err = s.repos.follows.GetFollowersCount(ctx, user.ID); err != nil {
		return nil, apperr.Internal("count followers", err)
	}
	if p.FollowingCount, err = s.repos.follows.GetFollowingCount(ctx, user.ID); err != nil {
		return nil, apperr.Internal("count followees", err)
	}
	if p.IsFollowee, err = s.repos.follows.IsFollowing(ctx, viewerID, user.ID); err != nil {
		return nil, apperr.Internal("check followee", err)
	}
	if p.IsFollower, err = s.repos.follows.IsFollowing(ctx, user.ID, viewerID); err != nil {
		return nil, apperr.Internal("check follower", err)
	}

	if viewerID == user.ID {
		unread, err := s.notifications.UnreadCount(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		p.UnreadNotificationCount = &unread
	}
	return p, nil
}
