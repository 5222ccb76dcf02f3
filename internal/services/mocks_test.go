package services_test

import (
	"context"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockConfigStore is a mock implementation of ConfigStoreInterface
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Load() (models.ConfigDocument, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ConfigDocument), args.Error(1)
}

func (m *MockConfigStore) Save(doc models.ConfigDocument) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *MockConfigStore) Exists() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockFormStore is a mock implementation of FormStoreInterface
type MockFormStore struct {
	mock.Mock
}

func (m *MockFormStore) Create(form *models.FormInstance) (string, error) {
	args := m.Called(form)
	return args.String(0), args.Error(1)
}

func (m *MockFormStore) Get(id string) (*models.FormInstance, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.FormInstance), args.Bool(1)
}

func (m *MockFormStore) List() ([]models.FormSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSummary), args.Error(1)
}

func (m *MockFormStore) Delete(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// MockBoardAPI is a mock implementation of monday.API
type MockBoardAPI struct {
	mock.Mock
}

func (m *MockBoardAPI) CreateItem(ctx context.Context, boardID, itemName string) (string, error) {
	args := m.Called(ctx, boardID, itemName)
	return args.String(0), args.Error(1)
}

func (m *MockBoardAPI) UpdateItemColumn(ctx context.Context, boardID, itemID, columnID, value string) error {
	args := m.Called(ctx, boardID, itemID, columnID, value)
	return args.Error(0)
}

func (m *MockBoardAPI) GetItemColumnValues(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
	args := m.Called(ctx, itemID, columnIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
