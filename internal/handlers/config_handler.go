package handlers

import (
	"net/http"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ConfigHandler serves the form-type configuration document and the admin page
type ConfigHandler struct {
	config services.ConfigStoreInterface
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(config services.ConfigStoreInterface) *ConfigHandler {
	return &ConfigHandler{config: config}
}

// AdminPage renders the configuration editor. Opening it for the first time
// creates the default configuration document.
func (h *ConfigHandler) AdminPage(c *gin.Context) {
	doc, err := h.config.Load()
	if err != nil {
		attachError(c, err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"config": doc,
	})
}

// GetConfig returns the configuration document as JSON, 404 when no
// document exists yet
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	if !h.config.Exists() {
		respondError(c, http.StatusNotFound, "Configuration file not found", nil)
		return
	}

	doc, err := h.config.Load()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SaveConfig replaces the configuration document wholesale
func (h *ConfigHandler) SaveConfig(c *gin.Context) {
	var doc models.ConfigDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid configuration document", err)
		return
	}

	if details := validateDocument(doc); len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid configuration document", details, nil)
		return
	}

	if err := h.config.Save(doc); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save configuration", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configuration saved successfully"})
}

// validateDocument checks every question spec of every form type.
// Gin's binding cannot see into map values, so this runs explicitly.
func validateDocument(doc models.ConfigDocument) []ValidationError {
	var details []ValidationError
	for formType, cfg := range doc {
		for _, q := range cfg.Questions {
			if err := validate.Struct(q); err != nil {
				for _, ve := range ParseValidationErrors(err) {
					ve.Field = formType + "." + q.ID + "." + ve.Field
					details = append(details, ve)
				}
			}
		}
	}
	return details
}
