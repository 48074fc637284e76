package repositories

import (
	"context"

	"github.com/franes/franes-backend/src/models"
)

// UserRepository defines the interface for account data access. Lookups
// return pgx.ErrNoRows (wrapped or bare) when the row is absent; the service
// layer maps that to its own sentinel errors.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int) error

	// HasAdmins reports whether any admin account exists (active or not);
	// gates the bootstrap endpoint.
	HasAdmins(ctx context.Context) (bool, error)

	// CountOtherActiveAdmins counts active admin accounts excluding the
	// given id. Backs the last-admin guard.
	CountOtherActiveAdmins(ctx context.Context, excludeID int) (int, error)
}

// CurriculumRepository defines the interface for curriculum file data access
type CurriculumRepository interface {
	Create(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error)
	GetByID(ctx context.Context, id int) (*models.CurriculumFile, error)
	GetLatest(ctx context.Context) (*models.CurriculumFile, error)
	List(ctx context.Context) ([]models.CurriculumFile, error)
	Update(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error)
	Delete(ctx context.Context, id int) error
}
