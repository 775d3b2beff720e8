package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// ActorResolver loads the company context of an authenticated user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (*domain.Actor, error)
}

// ActorMiddleware resolves the acting user's company membership after AuthMiddleware.
func ActorMiddleware(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Warn("Authenticated user no longer exists")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.Error("Failed to resolve actor", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}

		if actor.HasCompany() {
			logger = logger.With(slog.String("company_id", actor.CompanyID))
		}
		ctx := context.WithValue(c.Request.Context(), actorKey, *actor)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger))
		c.Next()
	}
}
