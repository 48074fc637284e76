package mock

import (
	"context"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories"
)

// UserRepository is a mock implementation of repositories.UserRepository
type UserRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc                 func(ctx context.Context, user *models.User) (*models.User, error)
	GetByIDFunc                func(ctx context.Context, id int) (*models.User, error)
	GetByUsernameFunc          func(ctx context.Context, username string) (*models.User, error)
	ListFunc                   func(ctx context.Context) ([]models.User, error)
	UpdateFunc                 func(ctx context.Context, user *models.User) (*models.User, error)
	DeleteFunc                 func(ctx context.Context, id int) error
	HasAdminsFunc              func(ctx context.Context) (bool, error)
	CountOtherActiveAdminsFunc func(ctx context.Context, excludeID int) (int, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewUserRepository creates a new mock user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.Calls["Create"] = append(m.Calls["Create"], user)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return user, nil
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *UserRepository) List(ctx context.Context) ([]models.User, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	m.Calls["Update"] = append(m.Calls["Update"], user)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return user, nil
}

func (m *UserRepository) Delete(ctx context.Context, id int) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *UserRepository) HasAdmins(ctx context.Context) (bool, error) {
	m.Calls["HasAdmins"] = append(m.Calls["HasAdmins"], nil)
	if m.HasAdminsFunc != nil {
		return m.HasAdminsFunc(ctx)
	}
	return false, nil
}

func (m *UserRepository) CountOtherActiveAdmins(ctx context.Context, excludeID int) (int, error) {
	m.Calls["CountOtherActiveAdmins"] = append(m.Calls["CountOtherActiveAdmins"], excludeID)
	if m.CountOtherActiveAdminsFunc != nil {
		return m.CountOtherActiveAdminsFunc(ctx, excludeID)
	}
	return 0, nil
}

// Ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)
