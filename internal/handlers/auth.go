package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/anonto42/promptswipe/backend/internal/apperr"
	"github.com/anonto42/promptswipe/backend/internal/models"
	"github.com/anonto42/promptswipe/backend/internal/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionTTL = 72 * time.Hour

// IdentityVerifier checks an identity-provider ID token
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (models.Identity, error)
}

// AuthHandler exchanges identity-provider tokens for local session tokens
type AuthHandler struct {
	userService services.UserService
	verifier    IdentityVerifier
	jwtSecret   []byte
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserService, verifier IdentityVerifier, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		verifier:    verifier,
		jwtSecret:   []byte(jwtSecret),
		log:         log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies the ID token, provisions the user on first sign-in and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := requestContext(c)
	identity, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		h.log.Info("firebase token rejected", zap.Error(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	user, err := h.userService.SignIn(ctx, identity)
	if err != nil {
		return apperr.HTTP(err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		h.log.Error("jwt signing failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}
