package handlers

import (
	"net/http"

	"github.com/formsync/formsync-api/internal/services"
	"github.com/gin-gonic/gin"
)

// FormsHandler serves the form management API
type FormsHandler struct {
	service services.FormServiceInterface
}

// NewFormsHandler creates a new forms handler
func NewFormsHandler(service services.FormServiceInterface) *FormsHandler {
	return &FormsHandler{service: service}
}

// ListForms returns summaries of all stored forms, newest first
func (h *FormsHandler) ListForms(c *gin.Context) {
	forms, err := h.service.ListForms()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list forms", err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// DeleteForm removes a form instance
func (h *FormsHandler) DeleteForm(c *gin.Context) {
	formID := c.Param("id")

	if !h.service.DeleteForm(formID) {
		respondError(c, http.StatusNotFound, "Form not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}
