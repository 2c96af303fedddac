package auth

import (
	"fmt"
	"net/http"
	"strings"

	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const actorKey = "actor"

// Middleware requires a valid bearer token and resolves it to an actor
// (identity plus role) stored on the request context.
func Middleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveActor(c, db, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "Not authorized to access this route", "statusCode": http.StatusUnauthorized},
			})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalMiddleware resolves an actor if a valid token is present but does
// not fail when it is missing or invalid. Public read endpoints use this.
func OptionalMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := resolveActor(c, db, secret); ok {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. It must run after
// Middleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "Not authorized to access this route", "statusCode": http.StatusUnauthorized},
			})
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"message": fmt.Sprintf("User role %s is not authorized to access this route", actor.Role), "statusCode": http.StatusForbidden},
		})
	}
}

// ActorFrom retrieves the resolved actor from the request context.
func ActorFrom(c *gin.Context) (policy.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}

func resolveActor(c *gin.Context, db *gorm.DB, secret string) (policy.Actor, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return policy.Actor{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Actor{}, false
	}

	token, err := gojwt.Parse(parts[1], func(token *gojwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return policy.Actor{}, false
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return policy.Actor{}, false
	}
	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return policy.Actor{}, false
	}

	var user models.User
	if err := db.First(&user, uint(userIDFloat)).Error; err != nil {
		return policy.Actor{}, false
	}

	return policy.Actor{ID: user.ID, Role: user.Role}, true
}
