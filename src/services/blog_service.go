package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franes/franes-backend/src/models"
)

// BlogService handles blog post persistence
type BlogService struct {
	pool *pgxpool.Pool
}

// NewBlogService creates a new blog service
func NewBlogService(pool *pgxpool.Pool) *BlogService {
	return &BlogService{pool: pool}
}

const blogColumns = "id, title, reading_time, content, created_at"

func scanBlogPost(row pgx.Row) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	err := row.Scan(&post.ID, &post.Title, &post.ReadingTime, &post.Content, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Create inserts a new blog post
func (bs *BlogService) Create(ctx context.Context, title string, readingTime int, content string) (*models.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (title, reading_time, content)
		VALUES ($1, $2, $3)
		RETURNING ` + blogColumns

	post, err := scanBlogPost(bs.pool.QueryRow(ctx, query, title, readingTime, content))
	if err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return post, nil
}

// GetByID retrieves a blog post
func (bs *BlogService) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	query := "SELECT " + blogColumns + " FROM blog_posts WHERE id = $1"
	post, err := scanBlogPost(bs.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return post, nil
}

// List returns all blog posts, newest first
func (bs *BlogService) List(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := bs.pool.Query(ctx, "SELECT "+blogColumns+" FROM blog_posts ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.ReadingTime, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update replaces a blog post's fields
func (bs *BlogService) Update(ctx context.Context, id int, title string, readingTime int, content string) (*models.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET title = $1, reading_time = $2, content = $3
		WHERE id = $4
		RETURNING ` + blogColumns

	post, err := scanBlogPost(bs.pool.QueryRow(ctx, query, title, readingTime, content, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	return post, nil
}

// Delete removes a blog post
func (bs *BlogService) Delete(ctx context.Context, id int) error {
	result, err := bs.pool.Exec(ctx, "DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
