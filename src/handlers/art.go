package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/services"
)

// ArtHandler handles art piece CRUD
type ArtHandler struct {
	art *services.ArtService
}

// NewArtHandler creates a new art handler
func NewArtHandler(art *services.ArtService) *ArtHandler {
	return &ArtHandler{art: art}
}

// ArtPieceRequest is the JSON body for creating or replacing an art piece
type ArtPieceRequest struct {
	Title       string             `json:"title" binding:"required,max=50"`
	Description string             `json:"description" binding:"required,max=300"`
	Image       *models.MediaAsset `json:"image"`
}

// HandleCreate creates an art piece
func (ah *ArtHandler) HandleCreate(c *gin.Context) {
	var req ArtPieceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	piece, err := ah.art.Create(c.Request.Context(), req.Title, req.Description, req.Image)
	if err != nil {
		contentError(c, err, "art piece")
		return
	}
	c.JSON(http.StatusCreated, piece)
}

// HandleList returns all art pieces
func (ah *ArtHandler) HandleList(c *gin.Context) {
	pieces, err := ah.art.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list art pieces"})
		return
	}
	c.JSON(http.StatusOK, pieces)
}

// HandleGet returns one art piece
func (ah *ArtHandler) HandleGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	piece, err := ah.art.GetByID(c.Request.Context(), id)
	if err != nil {
		contentError(c, err, "art piece")
		return
	}
	c.JSON(http.StatusOK, piece)
}

// HandleUpdate replaces an art piece
func (ah *ArtHandler) HandleUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ArtPieceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	piece, err := ah.art.Update(c.Request.Context(), id, req.Title, req.Description, req.Image)
	if err != nil {
		contentError(c, err, "art piece")
		return
	}
	c.JSON(http.StatusOK, piece)
}

// HandleDelete removes an art piece
func (ah *ArtHandler) HandleDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ah.art.Delete(c.Request.Context(), id); err != nil {
		contentError(c, err, "art piece")
		return
	}
	c.Status(http.StatusNoContent)
}
