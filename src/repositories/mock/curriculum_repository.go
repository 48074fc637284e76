package mock

import (
	"context"

	"github.com/franes/franes-backend/src/models"
	"github.com/franes/franes-backend/src/repositories"
)

// CurriculumRepository is a mock implementation of repositories.CurriculumRepository
type CurriculumRepository struct {
	CreateFunc    func(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error)
	GetByIDFunc   func(ctx context.Context, id int) (*models.CurriculumFile, error)
	GetLatestFunc func(ctx context.Context) (*models.CurriculumFile, error)
	ListFunc      func(ctx context.Context) ([]models.CurriculumFile, error)
	UpdateFunc    func(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error)
	DeleteFunc    func(ctx context.Context, id int) error

	Calls map[string][]interface{}
}

// NewCurriculumRepository creates a new mock curriculum repository
func NewCurriculumRepository() *CurriculumRepository {
	return &CurriculumRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *CurriculumRepository) Create(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error) {
	m.Calls["Create"] = append(m.Calls["Create"], entry)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return entry, nil
}

func (m *CurriculumRepository) GetByID(ctx context.Context, id int) (*models.CurriculumFile, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *CurriculumRepository) GetLatest(ctx context.Context) (*models.CurriculumFile, error) {
	m.Calls["GetLatest"] = append(m.Calls["GetLatest"], nil)
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx)
	}
	return nil, nil
}

func (m *CurriculumRepository) List(ctx context.Context) ([]models.CurriculumFile, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *CurriculumRepository) Update(ctx context.Context, entry *models.CurriculumFile) (*models.CurriculumFile, error) {
	m.Calls["Update"] = append(m.Calls["Update"], entry)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	return entry, nil
}

func (m *CurriculumRepository) Delete(ctx context.Context, id int) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Ensure CurriculumRepository implements the interface
var _ repositories.CurriculumRepository = (*CurriculumRepository)(nil)
