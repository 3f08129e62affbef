// Authentication middleware.
// Checks for a valid bearer session token in the Authorization header.
// If valid, sets the user id and role in the context.
// If invalid, returns 401 Unauthorized.
package routes

import (
	"errors"
	"log/slog"
	"strings"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/timeclock"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound      = errors.New("user not found in context")
	ErrMissingBearer     = errors.New("missing bearer token")
	ErrMalformedAuthHead = errors.New("malformed authorization header")
)

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingBearer
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedAuthHead
	}
	return parts[1], nil
}

func verifyAuth(c *gin.Context) (string, auth.Role, error) {
	token, err := bearerToken(c)
	if err != nil {
		return "", auth.RoleUnknown, err
	}

	claims, err := auth.DecodeSessionJWT(token)
	if err != nil {
		return "", auth.RoleUnknown, err
	}

	role, err := auth.ParseRole(claims.Role)
	if err != nil {
		return "", auth.RoleUnknown, err
	}

	return claims.Subject, role, nil
}

// Requester builds the service-level caller identity from the context set by
// AuthMiddleware.
func Requester(c *gin.Context) (timeclock.Requester, error) {
	uid := c.GetString("userID")
	if uid == "" {
		return timeclock.Requester{}, ErrUserNotFound
	}

	role, ok := c.MustGet("role").(auth.Role)
	if !ok {
		return timeclock.Requester{}, ErrUserNotFound
	}

	return timeclock.Requester{UserID: uid, Role: role}, nil
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, role, err := verifyAuth(c)
		if err != nil {
			slog.Warn("AuthMiddleware: Invalid or missing session token", "error", err)
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set("userID", uid)
		c.Set("role", role)
		c.Next()
	}
}
