package models

import "time"

// MediaAsset describes an uploaded image hosted on the media CDN. Stored as a
// jsonb column; unknown fields from the upload widget are dropped.
type MediaAsset struct {
	PublicID     string     `json:"public_id"`
	URL          string     `json:"url"`
	SecureURL    string     `json:"secure_url,omitempty"`
	Format       string     `json:"format,omitempty"`
	Width        int        `json:"width,omitempty"`
	Height       int        `json:"height,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
	Bytes        int64      `json:"bytes,omitempty"`
	Folder       string     `json:"folder,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
