package services

import (
	"context"

	"github.com/formsync/formsync-api/internal/models"
)

// ConfigStoreInterface defines access to the form-type configuration
// document. Implementations read fresh on every call; nothing caches the
// document between operations.
type ConfigStoreInterface interface {
	Load() (models.ConfigDocument, error)
	Save(doc models.ConfigDocument) error
	Exists() bool
}

// FormStoreInterface defines persistence for generated form instances
type FormStoreInterface interface {
	Create(form *models.FormInstance) (string, error)
	Get(id string) (*models.FormInstance, bool)
	List() ([]models.FormSummary, error)
	Delete(id string) bool
}

// FormServiceInterface defines form retrieval and management operations
type FormServiceInterface interface {
	GetForm(id string) (*models.FormInstance, error)
	RenderForm(form *models.FormInstance) []models.WidgetDescriptor
	ListForms() ([]models.FormSummary, error)
	DeleteForm(id string) bool
}

// SubmissionServiceInterface defines submission handling
type SubmissionServiceInterface interface {
	Submit(formID string, answers models.SubmissionAnswers) error
}

// WebhookServiceInterface defines webhook-driven form generation
type WebhookServiceInterface interface {
	HandleBoardEvent(ctx context.Context, formType string, payload *models.WebhookPayload) (string, error)
}
