package services

import (
	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/renderer"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
)

// FormService exposes stored form instances to the HTTP layer
type FormService struct {
	forms FormStoreInterface
}

// NewFormService creates a new form service instance
func NewFormService(forms FormStoreInterface) *FormService {
	return &FormService{forms: forms}
}

// GetForm returns the form with the given id
func (s *FormService) GetForm(id string) (*models.FormInstance, error) {
	form, ok := s.forms.Get(id)
	if !ok {
		return nil, apperrors.NotFoundError("form")
	}
	return form, nil
}

// RenderForm produces the widget descriptors for a form's submission page
func (s *FormService) RenderForm(form *models.FormInstance) []models.WidgetDescriptor {
	return renderer.Render(form)
}

// ListForms returns summaries of all stored forms, newest first
func (s *FormService) ListForms() ([]models.FormSummary, error) {
	return s.forms.List()
}

// DeleteForm removes a form and reports whether it existed
func (s *FormService) DeleteForm(id string) bool {
	return s.forms.Delete(id)
}
