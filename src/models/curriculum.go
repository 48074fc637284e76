package models

import "time"

// Curriculum content types. CSV content is stored raw, PDF content is stored
// base64-encoded and decoded on download.
const (
	CurriculumTypeCSV = "text/csv"
	CurriculumTypePDF = "application/pdf"
)

// CurriculumFile is an uploaded curriculum document
type CurriculumFile struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
