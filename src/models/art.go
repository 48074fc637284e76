package models

import "time"

// ArtPiece is a gallery entry with an optional hosted image
type ArtPiece struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       *MediaAsset `json:"image"`
	CreatedAt   time.Time   `json:"created_at"`
}
