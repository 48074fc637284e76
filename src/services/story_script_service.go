package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franes/franes-backend/src/models"
)

// StoryScriptService handles story script persistence
type StoryScriptService struct {
	pool *pgxpool.Pool
}

// NewStoryScriptService creates a new story script service
func NewStoryScriptService(pool *pgxpool.Pool) *StoryScriptService {
	return &StoryScriptService{pool: pool}
}

const storyColumns = "id, title, sub_title, author_note, content, author_final_comment, cover_image, created_at"

// StoryScriptInput carries the full set of writable story script fields
type StoryScriptInput struct {
	Title              string
	SubTitle           string
	AuthorNote         *string
	Content            string
	AuthorFinalComment *string
	CoverImage         *models.MediaAsset
}

func scanStoryScript(row pgx.Row) (*models.StoryScript, error) {
	script := &models.StoryScript{}
	var cover []byte
	err := row.Scan(
		&script.ID, &script.Title, &script.SubTitle, &script.AuthorNote,
		&script.Content, &script.AuthorFinalComment, &cover, &script.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(cover) > 0 {
		script.CoverImage = &models.MediaAsset{}
		if err := json.Unmarshal(cover, script.CoverImage); err != nil {
			return nil, fmt.Errorf("failed to decode cover image: %w", err)
		}
	}
	return script, nil
}

// Create inserts a new story script
func (ss *StoryScriptService) Create(ctx context.Context, in StoryScriptInput) (*models.StoryScript, error) {
	cover, err := assetJSON(in.CoverImage)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO story_scripts (title, sub_title, author_note, content, author_final_comment, cover_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + storyColumns

	script, err := scanStoryScript(ss.pool.QueryRow(ctx, query,
		in.Title, in.SubTitle, in.AuthorNote, in.Content, in.AuthorFinalComment, cover))
	if err != nil {
		return nil, fmt.Errorf("failed to create story script: %w", err)
	}
	return script, nil
}

// GetByID retrieves a story script
func (ss *StoryScriptService) GetByID(ctx context.Context, id int) (*models.StoryScript, error) {
	query := "SELECT " + storyColumns + " FROM story_scripts WHERE id = $1"
	script, err := scanStoryScript(ss.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get story script: %w", err)
	}
	return script, nil
}

// List returns all story scripts, newest first
func (ss *StoryScriptService) List(ctx context.Context) ([]models.StoryScript, error) {
	rows, err := ss.pool.Query(ctx, "SELECT "+storyColumns+" FROM story_scripts ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list story scripts: %w", err)
	}
	defer rows.Close()

	var scripts []models.StoryScript
	for rows.Next() {
		var s models.StoryScript
		var cover []byte
		err := rows.Scan(&s.ID, &s.Title, &s.SubTitle, &s.AuthorNote,
			&s.Content, &s.AuthorFinalComment, &cover, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story script: %w", err)
		}
		if len(cover) > 0 {
			s.CoverImage = &models.MediaAsset{}
			if err := json.Unmarshal(cover, s.CoverImage); err != nil {
				return nil, fmt.Errorf("failed to decode cover image: %w", err)
			}
		}
		scripts = append(scripts, s)
	}
	return scripts, rows.Err()
}

// Update replaces a story script's fields
func (ss *StoryScriptService) Update(ctx context.Context, id int, in StoryScriptInput) (*models.StoryScript, error) {
	cover, err := assetJSON(in.CoverImage)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE story_scripts
		SET title = $1, sub_title = $2, author_note = $3, content = $4, author_final_comment = $5, cover_image = $6
		WHERE id = $7
		RETURNING ` + storyColumns

	script, err := scanStoryScript(ss.pool.QueryRow(ctx, query,
		in.Title, in.SubTitle, in.AuthorNote, in.Content, in.AuthorFinalComment, cover, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update story script: %w", err)
	}
	return script, nil
}

// Delete removes a story script
func (ss *StoryScriptService) Delete(ctx context.Context, id int) error {
	result, err := ss.pool.Exec(ctx, "DELETE FROM story_scripts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete story script: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
