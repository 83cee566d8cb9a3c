package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

// AuthMiddleware verifies the bearer token (header first, auth_token cookie
// as fallback) and loads the user row. Role and organization always come from
// the database, never from token claims.
func AuthMiddleware(cfg *config.Config, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}
		if tokenString == "" {
			abortUnauthorized(c, "Authorization header or auth_token cookie required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid claims")
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "Invalid token subject")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil || !user.IsActive {
			abortUnauthorized(c, "User not found")
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), string(user.Role))
		if user.OrganizationID != nil {
			c.Set(string(domain.KeyUserOrgID), *user.OrganizationID)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	response.Error(c, apperror.Unauthorized(detail))
	c.Abort()
}

// RequireRole guards a route group behind one of the allowed roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := domain.Role(c.GetString(string(domain.KeyUserRole)))
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		response.Error(c, apperror.Forbidden("Not authorized."))
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's id from the context.
func CurrentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(string(domain.KeyUserID)); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// CurrentOrgID returns the authenticated user's organization, or nil for
// users without one.
func CurrentOrgID(c *gin.Context) *uuid.UUID {
	if v, ok := c.Get(string(domain.KeyUserOrgID)); ok {
		if id, ok := v.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}
