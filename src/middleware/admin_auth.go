package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/franes/franes-backend/src/config"
	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/services"
)

// AdminKey is the context key under which guards store the authenticated
// admin identity (a models.PublicUser, never the internal record).
const AdminKey = "admin_user"

// CurrentAdmin retrieves the authenticated admin from the request context
func CurrentAdmin(c *gin.Context) (models.PublicUser, bool) {
	v, exists := c.Get(AdminKey)
	if !exists {
		return models.PublicUser{}, false
	}
	admin, ok := v.(models.PublicUser)
	return admin, ok
}

// NewAdminGuard returns the admin authentication middleware selected by
// configuration: bearer-token (per-user accounts) or HTTP Basic (single
// configured identity). The two are a deployment choice, never combined.
func NewAdminGuard(cfg *config.Config, issuer *services.TokenIssuer, users *services.UserService) gin.HandlerFunc {
	if cfg.AuthMode == config.AuthModeBasic {
		return BasicGuard(cfg)
	}
	return BearerGuard(issuer, users)
}

// unauthorized aborts with 401 and a deliberately generic message; the cause
// (missing token, expiry, inactive account, bad password) is never revealed.
func unauthorized(c *gin.Context, challenge string) {
	c.Header("WWW-Authenticate", challenge)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
	c.Abort()
}

// BearerGuard authenticates requests by bearer token: the token subject is
// resolved to a user who must still exist, be active and be an admin.
func BearerGuard(issuer *services.TokenIssuer, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c, "Bearer")
			return
		}

		userID, err := issuer.Validate(parts[1])
		if err != nil {
			unauthorized(c, "Bearer")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			unauthorized(c, "Bearer")
			return
		}
		if !user.IsActive || !user.IsAdmin {
			unauthorized(c, "Bearer")
			return
		}

		c.Set(AdminKey, user.Public())
		c.Next()
	}
}

// BasicGuard authenticates requests against a single configured admin
// identity. A bcrypt hash takes precedence over a plaintext password when
// both are configured. All comparisons are constant-time and both halves are
// always checked, so response timing does not reveal which one was wrong.
func BasicGuard(cfg *config.Config) gin.HandlerFunc {
	expectedUser := []byte(cfg.BasicUsername)

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, `Basic realm="admin"`)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(username), expectedUser) == 1

		var passMatch bool
		if cfg.BasicPasswordHash != "" {
			passMatch = bcrypt.CompareHashAndPassword(
				[]byte(cfg.BasicPasswordHash), []byte(password)) == nil
		} else {
			passMatch = subtle.ConstantTimeCompare(
				[]byte(password), []byte(cfg.BasicPassword)) == 1
		}

		if !userMatch || !passMatch {
			unauthorized(c, `Basic realm="admin"`)
			return
		}

		c.Set(AdminKey, models.PublicUser{
			Username: cfg.BasicUsername,
			IsActive: true,
			IsAdmin:  true,
		})
		c.Next()
	}
}
