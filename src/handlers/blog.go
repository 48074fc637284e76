package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/services"
)

// BlogHandler handles blog post CRUD
type BlogHandler struct {
	blog *services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// BlogPostRequest is the JSON body for creating or replacing a post
type BlogPostRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	ReadingTime int    `json:"reading_time" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// contentError maps content service errors to HTTP responses
func contentError(c *gin.Context, err error, kind string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": kind + " not found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// HandleCreate creates a blog post
func (bh *BlogHandler) HandleCreate(c *gin.Context) {
	var req BlogPostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := bh.blog.Create(c.Request.Context(), req.Title, req.ReadingTime, req.Content)
	if err != nil {
		contentError(c, err, "blog post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// HandleList returns all blog posts
func (bh *BlogHandler) HandleList(c *gin.Context) {
	posts, err := bh.blog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blog posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// HandleGet returns one blog post
func (bh *BlogHandler) HandleGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	post, err := bh.blog.GetByID(c.Request.Context(), id)
	if err != nil {
		contentError(c, err, "blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// HandleUpdate replaces a blog post
func (bh *BlogHandler) HandleUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req BlogPostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := bh.blog.Update(c.Request.Context(), id, req.Title, req.ReadingTime, req.Content)
	if err != nil {
		contentError(c, err, "blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// HandleDelete removes a blog post
func (bh *BlogHandler) HandleDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := bh.blog.Delete(c.Request.Context(), id); err != nil {
		contentError(c, err, "blog post")
		return
	}
	c.Status(http.StatusNoContent)
}
