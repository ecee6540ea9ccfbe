package router

import (
	"fmt"

	"github.com/anonto42/promptswipe/backend/internal/handlers"
	"github.com/anonto42/promptswipe/backend/internal/middleware"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/repositories"
	"github.com/anonto42/promptswipe/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ObjectStore signs and stores images
type ObjectStore interface {
	services.ImageSigner
	handlers.Uploader
}

// Dependencies are the connections and clients the routes are built from.
// Mongo, Storage, UnreadCache and Publisher are optional.
type Dependencies struct {
	Postgres         *gorm.DB
	Mongo            *mongo.Database
	Verifier         handlers.IdentityVerifier
	Storage          ObjectStore
	UnreadCache      services.UnreadCache
	Publisher        services.NotificationPublisher
	Logger           *zap.Logger
	JWTSecret        string
	ModerationToken  string
	AutoApprovePosts bool
}

// Migrate creates or updates the relational schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Dependencies) error {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if d.JWTSecret == "" {
		return fmt.Errorf("JWT secret not configured")
	}

	e.JSONSerializer = JSONSerializer{}

	sqlDB, err := d.Postgres.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	e.GET("/health", handlers.NewHealthHandler(sqlDB).HealthCheck)

	deps := services.Deps{
		DB:               d.Postgres,
		UnreadCache:      d.UnreadCache,
		Publisher:        d.Publisher,
		Logger:           log,
		AutoApprovePosts: d.AutoApprovePosts,
	}
	if d.Storage != nil {
		deps.Signer = d.Storage
	}

	// --- Services ---
	notificationService := services.NewNotificationService(deps)
	userService := services.NewUserService(deps, notificationService)
	feedService := services.NewFeedService(deps)
	likeService := services.NewLikeService(deps)
	followService := services.NewFollowService(deps)
	postService := services.NewPostService(deps)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(userService, d.Verifier, d.JWTSecret, log).RegisterAuthRoutes(authGroup)
	log.Debug("Auth routes configured")

	// --- Moderation worker routes, guarded by a shared token ---
	if d.Mongo != nil {
		moderationService := services.NewModerationService(deps, repositories.NewMongoModerationRepository(d.Mongo))
		internal := e.Group("/api/v1/internal")
		internal.Use(middleware.ModerationTokenMiddleware(d.ModerationToken))
		handlers.NewModerationHandler(moderationService).RegisterModerationRoutes(internal)
		log.Debug("Moderation routes configured")
	} else {
		log.Info("MongoDB not configured, moderation routes disabled")
	}

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(d.JWTSecret))

	handlers.NewUserHandler(userService).RegisterProfileRoutes(api)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	if d.Storage != nil {
		handlers.NewUploadHandler(d.Storage, log).RegisterUploadRoutes(api)
	} else {
		log.Info("Object storage not configured, uploads disabled")
	}

	log.Info("All routes configured")
	return nil
}
