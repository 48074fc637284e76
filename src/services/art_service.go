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

// ArtService handles art piece persistence
type ArtService struct {
	pool *pgxpool.Pool
}

// NewArtService creates a new art service
func NewArtService(pool *pgxpool.Pool) *ArtService {
	return &ArtService{pool: pool}
}

const artColumns = "id, title, description, image, created_at"

// assetJSON marshals an optional media asset for a jsonb column; nil stays NULL
func assetJSON(asset *models.MediaAsset) (interface{}, error) {
	if asset == nil {
		return nil, nil
	}
	data, err := json.Marshal(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media asset: %w", err)
	}
	return data, nil
}

func scanArtPiece(row pgx.Row) (*models.ArtPiece, error) {
	piece := &models.ArtPiece{}
	var image []byte
	err := row.Scan(&piece.ID, &piece.Title, &piece.Description, &image, &piece.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(image) > 0 {
		piece.Image = &models.MediaAsset{}
		if err := json.Unmarshal(image, piece.Image); err != nil {
			return nil, fmt.Errorf("failed to decode media asset: %w", err)
		}
	}
	return piece, nil
}

// Create inserts a new art piece
func (as *ArtService) Create(ctx context.Context, title, description string, image *models.MediaAsset) (*models.ArtPiece, error) {
	imageData, err := assetJSON(image)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO art_pieces (title, description, image)
		VALUES ($1, $2, $3)
		RETURNING ` + artColumns

	piece, err := scanArtPiece(as.pool.QueryRow(ctx, query, title, description, imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to create art piece: %w", err)
	}
	return piece, nil
}

// GetByID retrieves an art piece
func (as *ArtService) GetByID(ctx context.Context, id int) (*models.ArtPiece, error) {
	query := "SELECT " + artColumns + " FROM art_pieces WHERE id = $1"
	piece, err := scanArtPiece(as.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get art piece: %w", err)
	}
	return piece, nil
}

// List returns all art pieces, newest first
func (as *ArtService) List(ctx context.Context) ([]models.ArtPiece, error) {
	rows, err := as.pool.Query(ctx, "SELECT "+artColumns+" FROM art_pieces ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list art pieces: %w", err)
	}
	defer rows.Close()

	var pieces []models.ArtPiece
	for rows.Next() {
		var p models.ArtPiece
		var image []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan art piece: %w", err)
		}
		if len(image) > 0 {
			p.Image = &models.MediaAsset{}
			if err := json.Unmarshal(image, p.Image); err != nil {
				return nil, fmt.Errorf("failed to decode media asset: %w", err)
			}
		}
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

// Update replaces an art piece's fields
func (as *ArtService) Update(ctx context.Context, id int, title, description string, image *models.MediaAsset) (*models.ArtPiece, error) {
	imageData, err := assetJSON(image)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE art_pieces
		SET title = $1, description = $2, image = $3
		WHERE id = $4
		RETURNING ` + artColumns

	piece, err := scanArtPiece(as.pool.QueryRow(ctx, query, title, description, imageData, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update art piece: %w", err)
	}
	return piece, nil
}

// Delete removes an art piece
func (as *ArtService) Delete(ctx context.Context, id int) error {
	result, err := as.pool.Exec(ctx, "DELETE FROM art_pieces WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete art piece: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
