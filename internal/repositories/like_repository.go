package repositories

import (
	"context"
	"time"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeCounts aggregates the positive like states of one post
type LikeCounts struct {
	Like      int64
	SuperLike int64
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	UpsertLike(ctx context.Context, userID, postID uint, likeType models.LikeType) (*models.Like, error)
	GetLike(ctx context.Context, userID, postID uint) (*models.Like, error)
	GetLikeByID(ctx context.Context, id uint) (*models.Like, error)
	DeleteLike(ctx context.Context, id uint) error
	GetLikersByType(ctx context.Context, postID uint, likeType models.LikeType) ([]models.User, error)
	CountsByPostIDs(ctx context.Context, postIDs []uint) (map[uint]LikeCounts, error)
	LatestSuperLikes(ctx context.Context, postIDs []uint, byUserID *uint) (map[uint]models.Like, error)
	CountByUser(ctx context.Context, userID uint, likeType models.LikeType) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// UpsertLike inserts the (user, post) row or overwrites its state in one statement
func (r *PostgresLikeRepository) UpsertLike(ctx context.Context, userID, postID uint, likeType models.LikeType) (*models.Like, error) {
	now := time.Now()
	like := &models.Like{
		UserID:    userID,
		PostID:    postID,
		LikeType:  likeType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"like_type", "updated_at"}),
	}).Create(like).Error
	if err != nil {
		return nil, err
	}
	// the returned id is unreliable on the update path
	return r.GetLike(ctx, userID, postID)
}

// GetLike retrieves the like row of a user on a post
func (r *PostgresLikeRepository) GetLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *PostgresLikeRepository) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// DeleteLike removes the row outright
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLikersByType returns the distinct users holding likeType on a post
func (r *PostgresLikeRepository) GetLikersByType(ctx context.Context, postID uint, likeType models.LikeType) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	var users []models.User
	err := db.Where("id IN (?)",
		db.Model(&models.Like{}).Select("user_id").Where("post_id = ? AND like_type = ?", postID, likeType),
	).Order("id").Find(&users).Error
	return users, err
}

// CountsByPostIDs aggregates like and super-like counts per post
func (r *PostgresLikeRepository) CountsByPostIDs(ctx context.Context, postIDs []uint) (map[uint]LikeCounts, error) {
	counts := make(map[uint]LikeCounts, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID   uint
		LikeType models.LikeType
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, like_type, COUNT(*) AS total").
		Where("post_id IN ? AND like_type IN ?", postIDs, []models.LikeType{models.LikeTypeLike, models.LikeTypeSuperLike}).
		Group("post_id, like_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		c := counts[row.PostID]
		switch row.LikeType {
		case models.LikeTypeLike:
			c.Like = row.Total
		case models.LikeTypeSuperLike:
			c.SuperLike = row.Total
		}
		counts[row.PostID] = c
	}
	return counts, nil
}

// LatestSuperLikes returns, per post, the most recent super-like with its user preloaded.
// byUserID restricts the candidates to a single liker.
func (r *PostgresLikeRepository) LatestSuperLikes(ctx context.Context, postIDs []uint, byUserID *uint) (map[uint]models.Like, error) {
	latest := make(map[uint]models.Like, len(postIDs))
	if len(postIDs) == 0 {
		return latest, nil
	}
	q := r.db.WithContext(ctx).Preload("User").
		Where("post_id IN ? AND like_type = ?", postIDs, models.LikeTypeSuperLike)
	if byUserID != nil {
		q = q.Where("user_id = ?", *byUserID)
	}
	var likes []models.Like
	if err := q.Order("updated_at DESC").Order("id DESC").Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		if _, ok := latest[l.PostID]; !ok {
			latest[l.PostID] = l
		}
	}
	return latest, nil
}

func (r *PostgresLikeRepository) CountByUser(ctx context.Context, userID uint, likeType models.LikeType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND like_type = ?", userID, likeType).
		Count(&count).Error
	return count, err
}
