package models

import "time"

// BlogPost is a published blog entry
type BlogPost struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	ReadingTime int       `json:"reading_time"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
