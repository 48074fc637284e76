package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories"
)

// UserService handles admin account management: creation, bootstrap, login
// verification and the last-admin guard on mutations.
type UserService struct {
	pool   *pgxpool.Pool
	repo   repositories.UserRepository
	hasher *PasswordHasher
}

// NewUserService creates a user service backed by the connection pool
func NewUserService(pool *pgxpool.Pool, hasher *PasswordHasher) *UserService {
	return &UserService{pool: pool, hasher: hasher}
}

// NewUserServiceWithRepo creates a user service backed by a repository (for testing)
func NewUserServiceWithRepo(repo repositories.UserRepository, hasher *PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

const userColumns = "id, username, password_hash, is_active, is_admin, created_at, updated_at"

// UserUpdate carries a partial update; nil fields are left untouched
type UserUpdate struct {
	Username *string
	Password *string
	IsActive *bool
	IsAdmin  *bool
}

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 150 {
		return fmt.Errorf("%w: username must be between 3 and 150 characters", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 128 {
		return fmt.Errorf("%w: password must be between 8 and 128 characters", ErrInvalidInput)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Conflicts are detected here rather than with a pre-check so two
// concurrent creates cannot both pass.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.IsActive, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a new account with a hashed password
func (us *UserService) Create(ctx context.Context, username, password string, isActive, isAdmin bool) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := us.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     isActive,
		IsAdmin:      isAdmin,
	}

	if us.repo != nil {
		created, err := us.repo.Create(ctx, user)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return created, nil
	}

	query := `
		INSERT INTO users (username, password_hash, is_active, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(us.pool.QueryRow(ctx, query, username, hash, isActive, isAdmin))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Bootstrap creates the first admin account. It fails with ErrAdminExists
// once any admin account is present, regardless of its active flag.
func (us *UserService) Bootstrap(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := us.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	if us.repo != nil {
		hasAdmins, err := us.repo.HasAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing admins: %w", err)
		}
		if hasAdmins {
			return nil, ErrAdminExists
		}
		created, err := us.repo.Create(ctx, &models.User{
			Username:     username,
			PasswordHash: hash,
			IsActive:     true,
			IsAdmin:      true,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("failed to create admin: %w", err)
		}
		return created, nil
	}

	var created *models.User
	err = us.serializable(ctx, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE is_admin = true").Scan(&count); err != nil {
			return fmt.Errorf("failed to check for existing admins: %w", err)
		}
		if count > 0 {
			return ErrAdminExists
		}

		query := `
			INSERT INTO users (username, password_hash, is_active, is_admin)
			VALUES ($1, $2, true, true)
			RETURNING ` + userColumns

		var scanErr error
		created, scanErr = scanUser(tx.QueryRow(ctx, query, username, hash))
		return scanErr
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, ErrAdminExists) {
			return nil, ErrAdminExists
		}
		return nil, err
	}
	return created, nil
}

// Authenticate verifies username and password for login. Every failure mode
// collapses into ErrInvalidCredentials so callers cannot enumerate accounts.
func (us *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user *models.User
	var err error

	if us.repo != nil {
		user, err = us.repo.GetByUsername(ctx, username)
	} else {
		query := "SELECT " + userColumns + " FROM users WHERE username = $1"
		user, err = scanUser(us.pool.QueryRow(ctx, query, username))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a comparison so a miss takes as long as a mismatch
			us.hasher.Verify(password, us.hasher.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !us.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || !user.IsAdmin {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves an account by id
func (us *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user *models.User
	var err error

	if us.repo != nil {
		user, err = us.repo.GetByID(ctx, id)
	} else {
		query := "SELECT " + userColumns + " FROM users WHERE id = $1"
		user, err = scanUser(us.pool.QueryRow(ctx, query, id))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List returns all accounts
func (us *UserService) List(ctx context.Context) ([]models.User, error) {
	if us.repo != nil {
		return us.repo.List(ctx)
	}

	rows, err := us.pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies a partial update. Demoting or deactivating an active admin
// consults the last-admin guard; the check and the write happen inside one
// serializable transaction so concurrent demotions cannot both slip through.
func (us *UserService) Update(ctx context.Context, id int, upd UserUpdate) (*models.User, error) {
	if upd.Username != nil {
		if err := validateUsername(*upd.Username); err != nil {
			return nil, err
		}
	}

	var hash *string
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return nil, err
		}
		h, err := us.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	if us.repo != nil {
		return us.updateWithRepo(ctx, id, upd, hash)
	}

	var updated *models.User
	err := us.serializable(ctx, func(tx pgx.Tx) error {
		existing, err := scanUser(tx.QueryRow(ctx,
			"SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		next := applyUpdate(existing, upd, hash)

		if demotesActiveAdmin(existing, next) {
			var others int
			err := tx.QueryRow(ctx,
				"SELECT COUNT(*) FROM users WHERE is_admin = true AND is_active = true AND id != $1",
				id).Scan(&others)
			if err != nil {
				return fmt.Errorf("failed to count admins: %w", err)
			}
			if others == 0 {
				return ErrLastAdmin
			}
		}

		query := `
			UPDATE users
			SET username = $1, password_hash = $2, is_active = $3, is_admin = $4, updated_at = now()
			WHERE id = $5
			RETURNING ` + userColumns

		updated, err = scanUser(tx.QueryRow(ctx, query,
			next.Username, next.PasswordHash, next.IsActive, next.IsAdmin, id))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return updated, nil
}

// updateWithRepo is the repository-backed update path used by unit tests.
// The check-then-act sequence here is not transactional; only the pool path
// carries the serializable guarantee.
func (us *UserService) updateWithRepo(ctx context.Context, id int, upd UserUpdate, hash *string) (*models.User, error) {
	existing, err := us.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	next := applyUpdate(existing, upd, hash)

	if demotesActiveAdmin(existing, next) {
		others, err := us.repo.CountOtherActiveAdmins(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count admins: %w", err)
		}
		if others == 0 {
			return nil, ErrLastAdmin
		}
	}

	updated, err := us.repo.Update(ctx, next)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// Delete removes an account, refusing to delete the last active admin
func (us *UserService) Delete(ctx context.Context, id int) error {
	if us.repo != nil {
		existing, err := us.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		if existing.IsAdmin && existing.IsActive {
			others, err := us.repo.CountOtherActiveAdmins(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to count admins: %w", err)
			}
			if others == 0 {
				return ErrLastAdmin
			}
		}
		return us.repo.Delete(ctx, id)
	}

	return us.serializable(ctx, func(tx pgx.Tx) error {
		existing, err := scanUser(tx.QueryRow(ctx,
			"SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if existing.IsAdmin && existing.IsActive {
			var others int
			err := tx.QueryRow(ctx,
				"SELECT COUNT(*) FROM users WHERE is_admin = true AND is_active = true AND id != $1",
				id).Scan(&others)
			if err != nil {
				return fmt.Errorf("failed to count admins: %w", err)
			}
			if others == 0 {
				return ErrLastAdmin
			}
		}

		_, err = tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// applyUpdate overlays the partial update onto the existing record
func applyUpdate(existing *models.User, upd UserUpdate, hash *string) *models.User {
	next := *existing
	if upd.Username != nil {
		next.Username = *upd.Username
	}
	if hash != nil {
		next.PasswordHash = *hash
	}
	if upd.IsActive != nil {
		next.IsActive = *upd.IsActive
	}
	if upd.IsAdmin != nil {
		next.IsAdmin = *upd.IsAdmin
	}
	return &next
}

// demotesActiveAdmin reports whether the transition strips admin capability
// from a currently active admin
func demotesActiveAdmin(existing, next *models.User) bool {
	return existing.IsAdmin && existing.IsActive && (!next.IsAdmin || !next.IsActive)
}

func (us *UserService) serializable(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := us.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
