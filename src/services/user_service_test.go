package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories/mock"
)

func testHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := mock.NewUserRepository()
	us := NewUserServiceWithRepo(repo, testHasher())

	user, err := us.Create(context.Background(), "alice", "password123", true, false)
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, testHasher().Verify("password123", user.PasswordHash))
}

func TestUserService_Create_Validation(t *testing.T) {
	us := NewUserServiceWithRepo(mock.NewUserRepository(), testHasher())

	_, err := us.Create(context.Background(), "ab", "password123", true, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = us.Create(context.Background(), "alice", "short", true, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = us.Create(context.Background(), strings.Repeat("x", 151), "password123", true, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.CreateFunc = func(ctx context.Context, user *models.User) (*models.User, error) {
		return nil, uniqueViolation()
	}
	us := NewUserServiceWithRepo(repo, testHasher())

	_, err := us.Create(context.Background(), "alice", "password123", true, false)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_Bootstrap_FirstAdmin(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.HasAdminsFunc = func(ctx context.Context) (bool, error) { return false, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	user, err := us.Bootstrap(context.Background(), "root", "password123")
	require.NoError(t, err)

	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsActive)
}

func TestUserService_Bootstrap_AdminExists(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.HasAdminsFunc = func(ctx context.Context) (bool, error) { return true, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	_, err := us.Bootstrap(context.Background(), "root", "password123")
	assert.ErrorIs(t, err, ErrAdminExists)
	assert.Empty(t, repo.Calls["Create"], "bootstrap must not create a user when an admin exists")
}

func activeAdmin(id int, username, password string) *models.User {
	hash, _ := testHasher().Hash(password)
	return &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	}
}

func TestUserService_Authenticate(t *testing.T) {
	admin := activeAdmin(1, "alice", "password123")

	tests := []struct {
		name    string
		stored  *models.User
		found   bool
		pass    string
		wantErr error
	}{
		{"valid credentials", admin, true, "password123", nil},
		{"unknown user", nil, false, "password123", ErrInvalidCredentials},
		{"wrong password", admin, true, "nope-nope-nope", ErrInvalidCredentials},
		{
			"inactive account",
			&models.User{ID: 2, Username: "alice", PasswordHash: admin.PasswordHash, IsActive: false, IsAdmin: true},
			true, "password123", ErrInvalidCredentials,
		},
		{
			"non-admin account",
			&models.User{ID: 3, Username: "alice", PasswordHash: admin.PasswordHash, IsActive: true, IsAdmin: false},
			true, "password123", ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewUserRepository()
			repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
				if !tt.found {
					return nil, pgx.ErrNoRows
				}
				return tt.stored, nil
			}
			us := NewUserServiceWithRepo(repo, testHasher())

			user, err := us.Authenticate(context.Background(), "alice", tt.pass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored.ID, user.ID)
		})
	}
}

func TestUserService_Update_LastAdminDemotion(t *testing.T) {
	admin := activeAdmin(1, "alice", "password123")

	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) { return admin, nil }
	repo.CountOtherActiveAdminsFunc = func(ctx context.Context, excludeID int) (int, error) { return 0, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	demote := false
	_, err := us.Update(context.Background(), 1, UserUpdate{IsAdmin: &demote})
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.Empty(t, repo.Calls["Update"], "a blocked demotion must not reach storage")

	// Deactivation is guarded the same way
	_, err = us.Update(context.Background(), 1, UserUpdate{IsActive: &demote})
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestUserService_Update_DemotionWithSecondAdmin(t *testing.T) {
	admin := activeAdmin(1, "alice", "password123")

	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) { return admin, nil }
	repo.CountOtherActiveAdminsFunc = func(ctx context.Context, excludeID int) (int, error) { return 1, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	demote := false
	updated, err := us.Update(context.Background(), 1, UserUpdate{IsAdmin: &demote})
	require.NoError(t, err)
	assert.False(t, updated.IsAdmin)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	admin := activeAdmin(1, "alice", "password123")

	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) { return admin, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	newPassword := "fresh-password"
	updated, err := us.Update(context.Background(), 1, UserUpdate{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, admin.PasswordHash, updated.PasswordHash)
	assert.True(t, testHasher().Verify(newPassword, updated.PasswordHash))
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) { return nil, pgx.ErrNoRows }
	us := NewUserServiceWithRepo(repo, testHasher())

	username := "bob"
	_, err := us.Update(context.Background(), 99, UserUpdate{Username: &username})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_LastAdmin(t *testing.T) {
	admin := activeAdmin(1, "alice", "password123")

	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) { return admin, nil }
	repo.CountOtherActiveAdminsFunc = func(ctx context.Context, excludeID int) (int, error) { return 0, nil }
	us := NewUserServiceWithRepo(repo, testHasher())

	err := us.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.Empty(t, repo.Calls["Delete"], "a blocked deletion must not reach storage")
}

func TestUserService_Delete_NonAdmin(t *testing.T) {
	repo := mock.NewUserRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int) (*models.User, error) {
		return &models.User{ID: 5, Username: "bob", IsActive: true, IsAdmin: false}, nil
	}
	us := NewUserServiceWithRepo(repo, testHasher())

	require.NoError(t, us.Delete(context.Background(), 5))
	assert.Len(t, repo.Calls["Delete"], 1)
	assert.Empty(t, repo.Calls["CountOtherActiveAdmins"], "non-admin deletion needs no admin count")
}
