package repositories

import (
	"context"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations,
// including the candidate queries behind the two feeds.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetApprovedPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, includePending bool) ([]models.Post, error)
	CountVisiblePostsByUserID(ctx context.Context, userID uint) (int64, error)
	SetApproved(ctx context.Context, id uint, approved bool) error
	DeletePost(ctx context.Context, id uint) error

	FindRecommended(ctx context.Context, viewerID uint, limit int) ([]models.Post, error)
	FindSuperLikedByFollowees(ctx context.Context, viewerID uint, limit int) ([]models.Post, error)
	FindByFollowees(ctx context.Context, viewerID uint, limit int) ([]models.Post, error)
	FindLikedByUser(ctx context.Context, userID uint, types []models.LikeType) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post with its author regardless of moderation state
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetApprovedPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("User").
		Where("approved = ?", true).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID lists a user's approved posts, plus pending ones when includePending is set
func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID uint, includePending bool) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID)
	if includePending {
		q = q.Where("approved IS NULL OR approved = ?", true)
	} else {
		q = q.Where("approved = ?", true)
	}
	err := q.Order("id DESC").Find(&posts).Error
	return posts, err
}

// CountVisiblePostsByUserID counts approved and pending posts
func (r *PostgresPostRepository) CountVisiblePostsByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ? AND (approved IS NULL OR approved = ?)", userID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePost deletes a post together with its likes and post-scoped notifications
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// seenBy selects every post the user already holds a like row on, in any state.
func seenBy(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Like{}).Select("post_id").Where("user_id = ?", userID)
}

func followeesOf(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID)
}

func superLikedByFollowees(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Like{}).Distinct("post_id").
		Where("like_type = ? AND user_id IN (?)", models.LikeTypeSuperLike, followeesOf(db, userID))
}

// FindRecommended returns approved posts by other users the viewer has not acted on, newest first
func (r *PostgresPostRepository) FindRecommended(ctx context.Context, viewerID uint, limit int) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	var posts []models.Post
	err := db.Preload("User").
		Where("approved = ?", true).
		Where("user_id <> ?", viewerID).
		Where("id NOT IN (?)", seenBy(db, viewerID)).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindSuperLikedByFollowees returns approved posts super-liked by anyone the viewer follows
func (r *PostgresPostRepository) FindSuperLikedByFollowees(ctx context.Context, viewerID uint, limit int) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	var posts []models.Post
	err := db.Preload("User").
		Where("approved = ?", true).
		Where("id IN (?)", superLikedByFollowees(db, viewerID)).
		Where("user_id <> ?", viewerID).
		Where("id NOT IN (?)", seenBy(db, viewerID)).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindByFollowees returns approved posts authored by followees that are not in the super-liked set
func (r *PostgresPostRepository) FindByFollowees(ctx context.Context, viewerID uint, limit int) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	var posts []models.Post
	err := db.Preload("User").
		Where("approved = ?", true).
		Where("user_id IN (?)", followeesOf(db, viewerID)).
		Where("id NOT IN (?)", superLikedByFollowees(db, viewerID)).
		Where("user_id <> ?", viewerID).
		Where("id NOT IN (?)", seenBy(db, viewerID)).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindLikedByUser returns approved posts on which the user holds one of the given states
func (r *PostgresPostRepository) FindLikedByUser(ctx context.Context, userID uint, types []models.LikeType) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	var posts []models.Post
	err := db.Preload("User").
		Where("approved = ?", true).
		Where("id IN (?)", db.Model(&models.Like{}).Select("post_id").
			Where("user_id = ? AND like_type IN ?", userID, types)).
		Order("id DESC").
		Find(&posts).Error
	return posts, err
}
