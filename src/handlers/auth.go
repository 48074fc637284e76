package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/logging"
	"github.com/franes/franes-backend/src/services"
)

// AuthHandler handles login and first-admin bootstrap
type AuthHandler struct {
	users  *services.UserService
	issuer *services.TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, issuer *services.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// TokenResponse is the login/bootstrap response body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is the form-encoded login body
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// HandleLogin verifies credentials and issues an access token. The error
// message is identical for every failure cause.
func (ah *AuthHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}

	user, err := ah.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := ah.issuer.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// BootstrapRequest is the JSON body for first-admin creation
type BootstrapRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleBootstrap creates the first admin account and logs it in with one
// call. Refused once any admin exists.
func (ah *AuthHandler) HandleBootstrap(c *gin.Context) {
	var req BootstrapRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ah.users.Bootstrap(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminExists):
			c.JSON(http.StatusForbidden, gin.H{"error": "admin already initialized"})
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bootstrap failed"})
		}
		return
	}

	token, err := ah.issuer.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	logger := logging.NewLogger("auth")
	logger.Info().Str("username", user.Username).Msg("admin bootstrapped")

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
