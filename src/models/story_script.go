package models

import "time"

// StoryScript is a long-form story entry with optional author commentary and
// cover image
type StoryScript struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	SubTitle           string      `json:"sub_title"`
	AuthorNote         *string     `json:"author_note"`
	Content            string      `json:"content"`
	AuthorFinalComment *string     `json:"author_final_comment"`
	CoverImage         *MediaAsset `json:"cover_image"`
	CreatedAt          time.Time   `json:"created_at"`
}
