package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories"
)

// CurriculumService handles curriculum file persistence and download payload
// preparation. CSV content is stored raw; PDF content is stored base64-encoded
// and decoded when downloaded.
type CurriculumService struct {
	pool *pgxpool.Pool
	repo repositories.CurriculumRepository
}

// NewCurriculumService creates a curriculum service backed by the connection pool
func NewCurriculumService(pool *pgxpool.Pool) *CurriculumService {
	return &CurriculumService{pool: pool}
}

// NewCurriculumServiceWithRepo creates a curriculum service backed by a repository (for testing)
func NewCurriculumServiceWithRepo(repo repositories.CurriculumRepository) *CurriculumService {
	return &CurriculumService{repo: repo}
}

const curriculumColumns = "id, title, description, file_name, content_type, content, created_at, updated_at"

// CurriculumUpdate carries a partial update; nil fields are left untouched
type CurriculumUpdate struct {
	Title       *string
	Description *string
	FileName    *string
	ContentType *string
	Content     *string
}

func validateContentType(contentType string) error {
	if contentType != models.CurriculumTypeCSV && contentType != models.CurriculumTypePDF {
		return fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, contentType)
	}
	return nil
}

func scanCurriculum(row pgx.Row) (*models.CurriculumFile, error) {
	entry := &models.CurriculumFile{}
	err := row.Scan(
		&entry.ID, &entry.Title, &entry.Description, &entry.FileName,
		&entry.ContentType, &entry.Content, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Create inserts a new curriculum entry. PDF content must already be base64.
func (cs *CurriculumService) Create(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error) {
	if err := validateContentType(entry.ContentType); err != nil {
		return nil, err
	}
	if entry.ContentType == models.CurriculumTypePDF {
		if _, err := base64.StdEncoding.DecodeString(entry.Content); err != nil {
			return nil, fmt.Errorf("%w: pdf content is not valid base64", ErrInvalidInput)
		}
	}

	if cs.repo != nil {
		return cs.repo.Create(ctx, entry)
	}

	query := `
		INSERT INTO curriculum_files (title, description, file_name, content_type, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + curriculumColumns

	created, err := scanCurriculum(cs.pool.QueryRow(ctx, query,
		entry.Title, entry.Description, entry.FileName, entry.ContentType, entry.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to create curriculum entry: %w", err)
	}
	return created, nil
}

// GetByID retrieves a curriculum entry
func (cs *CurriculumService) GetByID(ctx context.Context, id int) (*models.CurriculumFile, error) {
	var entry *models.CurriculumFile
	var err error

	if cs.repo != nil {
		entry, err = cs.repo.GetByID(ctx, id)
	} else {
		query := "SELECT " + curriculumColumns + " FROM curriculum_files WHERE id = $1"
		entry, err = scanCurriculum(cs.pool.QueryRow(ctx, query, id))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get curriculum entry: %w", err)
	}
	return entry, nil
}

// GetLatest returns the most recently created entry
func (cs *CurriculumService) GetLatest(ctx context.Context) (*models.CurriculumFile, error) {
	var entry *models.CurriculumFile
	var err error

	if cs.repo != nil {
		entry, err = cs.repo.GetLatest(ctx)
	} else {
		query := "SELECT " + curriculumColumns + " FROM curriculum_files ORDER BY created_at DESC LIMIT 1"
		entry, err = scanCurriculum(cs.pool.QueryRow(ctx, query))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest curriculum entry: %w", err)
	}
	return entry, nil
}

// List returns all curriculum entries, newest first
func (cs *CurriculumService) List(ctx context.Context) ([]models.CurriculumFile, error) {
	if cs.repo != nil {
		return cs.repo.List(ctx)
	}

	rows, err := cs.pool.Query(ctx, "SELECT "+curriculumColumns+" FROM curriculum_files ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list curriculum entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CurriculumFile
	for rows.Next() {
		var e models.CurriculumFile
		err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.FileName,
			&e.ContentType, &e.Content, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan curriculum entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Update applies a partial update
func (cs *CurriculumService) Update(ctx context.Context, id int, upd CurriculumUpdate) (*models.CurriculumFile, error) {
	if upd.ContentType != nil {
		if err := validateContentType(*upd.ContentType); err != nil {
			return nil, err
		}
	}

	existing, err := cs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	if upd.Title != nil {
		next.Title = *upd.Title
	}
	if upd.Description != nil {
		next.Description = upd.Description
	}
	if upd.FileName != nil {
		next.FileName = *upd.FileName
	}
	if upd.ContentType != nil {
		next.ContentType = *upd.ContentType
	}
	if upd.Content != nil {
		next.Content = *upd.Content
	}

	if next.ContentType == models.CurriculumTypePDF {
		if _, err := base64.StdEncoding.DecodeString(next.Content); err != nil {
			return nil, fmt.Errorf("%w: pdf content is not valid base64", ErrInvalidInput)
		}
	}

	if cs.repo != nil {
		return cs.repo.Update(ctx, &next)
	}

	query := `
		UPDATE curriculum_files
		SET title = $1, description = $2, file_name = $3, content_type = $4, content = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + curriculumColumns

	updated, err := scanCurriculum(cs.pool.QueryRow(ctx, query,
		next.Title, next.Description, next.FileName, next.ContentType, next.Content, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update curriculum entry: %w", err)
	}
	return updated, nil
}

// Delete removes a curriculum entry
func (cs *CurriculumService) Delete(ctx context.Context, id int) error {
	if cs.repo != nil {
		if _, err := cs.repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return cs.repo.Delete(ctx, id)
	}

	result, err := cs.pool.Exec(ctx, "DELETE FROM curriculum_files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete curriculum entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DownloadPayload resolves the latest entry into raw bytes for streaming:
// CSV passes through as UTF-8, PDF is base64-decoded.
func (cs *CurriculumService) DownloadPayload(ctx context.Context) (filename, contentType string, data []byte, err error) {
	entry, err := cs.GetLatest(ctx)
	if err != nil {
		return "", "", nil, err
	}

	filename = entry.FileName
	if filename == "" {
		filename = "curriculum.csv"
	}

	switch entry.ContentType {
	case models.CurriculumTypePDF:
		data, err = base64.StdEncoding.DecodeString(entry.Content)
		if err != nil {
			return "", "", nil, fmt.Errorf("stored pdf content is not valid base64: %w", err)
		}
	default:
		data = []byte(entry.Content)
	}

	return filename, entry.ContentType, data, nil
}
