package repositories

import (
	"context"
	"time"

	"github.com/anonto42/promptswipe/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModerationRepository stores image-analysis verdicts
type ModerationRepository interface {
	CreateResult(ctx context.Context, result *models.ModerationResult) error
	GetResultsByPostID(ctx context.Context, postID uint, limit int64) ([]models.ModerationResult, error)
}

// MongoModerationRepository implements ModerationRepository for MongoDB
type MongoModerationRepository struct {
	collection *mongo.Collection
}

// NewMongoModerationRepository creates a new MongoModerationRepository
func NewMongoModerationRepository(db *mongo.Database) *MongoModerationRepository {
	return &MongoModerationRepository{collection: db.Collection("moderation_results")}
}

// CreateResult inserts a verdict document
func (r *MongoModerationRepository) CreateResult(ctx context.Context, result *models.ModerationResult) error {
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// GetResultsByPostID lists verdicts for a post, newest first
func (r *MongoModerationRepository) GetResultsByPostID(ctx context.Context, postID uint, limit int64) ([]models.ModerationResult, error) {
	results := []models.ModerationResult{}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
