package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/services"
	"github.com/soumya813/SwaadGharKa/pkg/token"
)

const actorKey = "actor"

// Protect requires a valid bearer credential and an active account. The
// resolved actor is stored on the context for handlers.
func Protect(maker *token.Maker, userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, maker)
		if err != nil {
			message := "Not authorized to access this route"
			if errors.Is(err, token.ErrExpiredToken) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
			return
		}

		user, err := userService.GetByID(claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account has been deactivated"})
			return
		}

		c.Set(actorKey, services.Actor{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// AdminOnly must run after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the actor when a credential is present but never
// rejects the request.
func OptionalAuth(maker *token.Maker, userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, maker)
		if err == nil {
			if user, uerr := userService.GetByID(claims.UserID); uerr == nil && user != nil && user.IsActive {
				c.Set(actorKey, services.Actor{ID: user.ID, Role: user.Role})
			}
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor set by Protect or OptionalAuth.
func GetActor(c *gin.Context) (services.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := v.(services.Actor)
	return actor, ok
}

func claimsFromHeader(c *gin.Context, maker *token.Maker) (*token.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, token.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, token.ErrInvalidToken
	}
	return maker.Verify(tokenString)
}
