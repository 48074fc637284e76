package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/services"
)

// StoryScriptHandler handles story script CRUD
type StoryScriptHandler struct {
	stories *services.StoryScriptService
}

// NewStoryScriptHandler creates a new story script handler
func NewStoryScriptHandler(stories *services.StoryScriptService) *StoryScriptHandler {
	return &StoryScriptHandler{stories: stories}
}

// StoryScriptRequest is the JSON body for creating or replacing a story script
type StoryScriptRequest struct {
	Title              string             `json:"title" binding:"required,max=60"`
	SubTitle           string             `json:"sub_title" binding:"required,max=120"`
	AuthorNote         *string            `json:"author_note" binding:"omitempty,max=300"`
	Content            string             `json:"content" binding:"required"`
	AuthorFinalComment *string            `json:"author_final_comment"`
	CoverImage         *models.MediaAsset `json:"cover_image"`
}

func (r *StoryScriptRequest) input() services.StoryScriptInput {
	return services.StoryScriptInput{
		Title:              r.Title,
		SubTitle:           r.SubTitle,
		AuthorNote:         r.AuthorNote,
		Content:            r.Content,
		AuthorFinalComment: r.AuthorFinalComment,
		CoverImage:         r.CoverImage,
	}
}

// HandleCreate creates a story script
func (sh *StoryScriptHandler) HandleCreate(c *gin.Context) {
	var req StoryScriptRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	script, err := sh.stories.Create(c.Request.Context(), req.input())
	if err != nil {
		contentError(c, err, "story script")
		return
	}
	c.JSON(http.StatusCreated, script)
}

// HandleList returns all story scripts
func (sh *StoryScriptHandler) HandleList(c *gin.Context) {
	scripts, err := sh.stories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list story scripts"})
		return
	}
	c.JSON(http.StatusOK, scripts)
}

// HandleGet returns one story script
func (sh *StoryScriptHandler) HandleGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	script, err := sh.stories.GetByID(c.Request.Context(), id)
	if err != nil {
		contentError(c, err, "story script")
		return
	}
	c.JSON(http.StatusOK, script)
}

// HandleUpdate replaces a story script
func (sh *StoryScriptHandler) HandleUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req StoryScriptRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	script, err := sh.stories.Update(c.Request.Context(), id, req.input())
	if err != nil {
		contentError(c, err, "story script")
		return
	}
	c.JSON(http.StatusOK, script)
}

// HandleDelete removes a story script
func (sh *StoryScriptHandler) HandleDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := sh.stories.Delete(c.Request.Context(), id); err != nil {
		contentError(c, err, "story script")
		return
	}
	c.Status(http.StatusNoContent)
}
