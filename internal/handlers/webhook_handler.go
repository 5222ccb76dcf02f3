package handlers

import (
	"net/http"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/services"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives Monday.com board events and creates form instances
type WebhookHandler struct {
	service services.WebhookServiceInterface
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service services.WebhookServiceInterface) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// HandleBoardEvent processes one webhook delivery for a form type.
// Monday.com verifies the endpoint with a challenge handshake that must be
// echoed back verbatim.
func (h *WebhookHandler) HandleBoardEvent(c *gin.Context) {
	formType := c.Param("formType")

	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	if payload.Challenge != "" {
		c.JSON(http.StatusOK, gin.H{"challenge": payload.Challenge})
		return
	}

	formID, err := h.service.HandleBoardEvent(c.Request.Context(), formType, &payload)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Unknown form type", err)
		case apperrors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, "Invalid payload", err)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to process webhook", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "form_id": formID})
}
