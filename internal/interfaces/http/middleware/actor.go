package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aquaflow/backend/internal/infrastructure/auth"
	"github.com/aquaflow/backend/internal/infrastructure/logger"
	"github.com/aquaflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor context keys
const (
	ActorIDKey    = "actor_id"
	ActorNameKey  = "actor_name"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) (*auth.Claims, error)
}

// ActorConfig holds configuration for the actor middleware
type ActorConfig struct {
	Verifier TokenVerifier
	// Required rejects mutating requests that carry no token
	Required bool
	Logger   *zap.Logger
}

// Actor resolves the acting user from the bearer token. A present but
// invalid token is always rejected. Without a token the request continues
// anonymously unless Required is set and the method mutates state.
func Actor(cfg ActorConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Verifier == nil || !cfg.Verifier.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			if cfg.Required && isMutating(c.Request.Method) {
				abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
				return
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}
		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token carries no user")
			return
		}

		c.Set(ActorIDKey, actor)
		c.Set(ActorNameKey, claims.Username)

		ctx := c.Request.Context()
		reqLogger := logger.FromContext(ctx).With(zap.String("actor_id", actor.String()))
		c.Request = c.Request.WithContext(logger.WithContext(ctx, reqLogger))
		c.Set(logger.GinContextKey, reqLogger)

		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func abortUnauthorized(c *gin.Context, cfg ActorConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Bearer token rejected",
			zap.Error(err),
			zap.String("reason", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	msg := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingUserID):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, msg, c.GetString(RequestIDKey)))
}

// GetActor returns the authenticated user, or nil for anonymous requests
func GetActor(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(ActorIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}
