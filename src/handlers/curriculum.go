package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/services"
)

// CurriculumHandler handles curriculum file CRUD and downloads
type CurriculumHandler struct {
	curriculum *services.CurriculumService
}

// NewCurriculumHandler creates a new curriculum handler
func NewCurriculumHandler(curriculum *services.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculum: curriculum}
}

// CreateCurriculumRequest is the JSON body for uploading a curriculum file.
// ContentType defaults to text/csv; PDF uploads send base64 in Content.
type CreateCurriculumRequest struct {
	Title       string  `json:"title" binding:"required,max=120"`
	Description *string `json:"description" binding:"omitempty,max=300"`
	FileName    string  `json:"file_name" binding:"required,max=255"`
	ContentType string  `json:"content_type"`
	Content     string  `json:"content" binding:"required"`
}

// UpdateCurriculumRequest is the JSON body for partial curriculum updates
type UpdateCurriculumRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=120"`
	Description *string `json:"description" binding:"omitempty,max=300"`
	FileName    *string `json:"file_name" binding:"omitempty,max=255"`
	ContentType *string `json:"content_type"`
	Content     *string `json:"content"`
}

// HandleCreate uploads a curriculum file
func (ch *CurriculumHandler) HandleCreate(c *gin.Context) {
	var req CreateCurriculumRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.ContentType == "" {
		req.ContentType = models.CurriculumTypeCSV
	}

	entry, err := ch.curriculum.Create(c.Request.Context(), &models.CurriculumFile{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Content:     req.Content,
	})
	if err != nil {
		contentError(c, err, "curriculum entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// HandleList returns all curriculum entries
func (ch *CurriculumHandler) HandleList(c *gin.Context) {
	entries, err := ch.curriculum.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list curriculum entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// HandleGetLatest returns the most recent curriculum entry
func (ch *CurriculumHandler) HandleGetLatest(c *gin.Context) {
	entry, err := ch.curriculum.GetLatest(c.Request.Context())
	if err != nil {
		contentError(c, err, "curriculum entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HandleDownloadLatest streams the most recent curriculum file. CSV content
// is sent as-is; PDF content is base64-decoded into raw bytes.
func (ch *CurriculumHandler) HandleDownloadLatest(c *gin.Context) {
	filename, contentType, data, err := ch.curriculum.DownloadPayload(c.Request.Context())
	if err != nil {
		contentError(c, err, "curriculum entry")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// HandleGet returns one curriculum entry
func (ch *CurriculumHandler) HandleGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	entry, err := ch.curriculum.GetByID(c.Request.Context(), id)
	if err != nil {
		contentError(c, err, "curriculum entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HandleUpdate applies a partial update to a curriculum entry
func (ch *CurriculumHandler) HandleUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateCurriculumRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := ch.curriculum.Update(c.Request.Context(), id, services.CurriculumUpdate{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Content:     req.Content,
	})
	if err != nil {
		contentError(c, err, "curriculum entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HandleDelete removes a curriculum entry
func (ch *CurriculumHandler) HandleDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ch.curriculum.Delete(c.Request.Context(), id); err != nil {
		contentError(c, err, "curriculum entry")
		return
	}
	c.Status(http.StatusNoContent)
}
