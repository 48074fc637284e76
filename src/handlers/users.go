package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/services"
)

// UsersHandler handles admin account management
type UsersHandler struct {
	users *services.UserService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// CreateUserRequest is the JSON body for account creation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsActive *bool  `json:"is_active"`
	IsAdmin  *bool  `json:"is_admin"`
}

// UpdateUserRequest is the JSON body for partial account updates
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// userError maps service errors from user mutations to HTTP responses
func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, services.ErrLastAdmin):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot remove the last active admin user"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// HandleCreate creates a new account
func (uh *UsersHandler) HandleCreate(c *gin.Context) {
	var req CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isAdmin := false
	if req.IsAdmin != nil {
		isAdmin = *req.IsAdmin
	}

	user, err := uh.users.Create(c.Request.Context(), req.Username, req.Password, isActive, isAdmin)
	if err != nil {
		userError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// HandleList returns all accounts
func (uh *UsersHandler) HandleList(c *gin.Context) {
	users, err := uh.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	c.JSON(http.StatusOK, public)
}

// HandleGet returns one account by id
func (uh *UsersHandler) HandleGet(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := uh.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// HandleUpdate applies a partial update, guarded against removing the last
// active admin
func (uh *UsersHandler) HandleUpdate(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := uh.users.Update(c.Request.Context(), id, services.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		IsActive: req.IsActive,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		userError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated.Public())
}

// HandleDelete removes an account, guarded against deleting the last active
// admin
func (uh *UsersHandler) HandleDelete(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := uh.users.Delete(c.Request.Context(), id); err != nil {
		userError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
