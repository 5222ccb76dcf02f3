package handlers_test

import (
	"context"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockConfigStore implements services.ConfigStoreInterface for testing
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

// MockFormService implements services.FormServiceInterface for testing
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) GetForm(id string) (*models.FormInstance, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormInstance), args.Error(1)
}

func (m *MockFormService) RenderForm(form *models.FormInstance) []models.WidgetDescriptor {
	args := m.Called(form)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.WidgetDescriptor)
}

func (m *MockFormService) ListForms() ([]models.FormSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSummary), args.Error(1)
}

func (m *MockFormService) DeleteForm(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// MockSubmissionService implements services.SubmissionServiceInterface for testing
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(formID string, answers models.SubmissionAnswers) error {
	args := m.Called(formID, answers)
	return args.Error(0)
}

// MockWebhookService implements services.WebhookServiceInterface for testing
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) HandleBoardEvent(ctx context.Context, formType string, payload *models.WebhookPayload) (string, error) {
	args := m.Called(ctx, formType, payload)
	return args.String(0), args.Error(1)
}
