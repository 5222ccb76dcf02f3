package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/services"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

// FormPageHandler serves the end-user submission pages
type FormPageHandler struct {
	forms       services.FormServiceInterface
	submissions services.SubmissionServiceInterface
}

// NewFormPageHandler creates a new form page handler
func NewFormPageHandler(forms services.FormServiceInterface, submissions services.SubmissionServiceInterface) *FormPageHandler {
	return &FormPageHandler{forms: forms, submissions: submissions}
}

// headerRow is one line of the trip-information block on the form page.
type headerRow struct {
	Label string
	Value string
}

// headerRows lays out the header data in the fixed field order; any extra
// operator-defined fields follow alphabetically.
func headerRows(data map[string]string) []headerRow {
	known := make(map[string]bool, len(services.HeaderFieldOrder))
	rows := make([]headerRow, 0, len(data))
	for _, name := range services.HeaderFieldOrder {
		known[name] = true
		if value := data[name]; value != "" {
			rows = append(rows, headerRow{Label: name, Value: value})
		}
	}

	extra := make([]string, 0, len(data))
	for name, value := range data {
		if !known[name] && value != "" {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		rows = append(rows, headerRow{Label: name, Value: data[name]})
	}
	return rows
}

// DisplayForm renders the submission page for a stored form
func (h *FormPageHandler) DisplayForm(c *gin.Context) {
	formID := c.Param("id")

	form, err := h.forms.GetForm(formID)
	if err != nil {
		attachError(c, err)
		c.String(http.StatusNotFound, "Form not found")
		return
	}

	c.HTML(http.StatusOK, "form.html", gin.H{
		"form":       form,
		"widgets":    h.forms.RenderForm(form),
		"headerRows": headerRows(form.HeaderData),
	})
}

// SubmitForm accepts a form-encoded submission. The success page is served
// as soon as the background propagation is scheduled; its outcome never
// reaches the submitter.
func (h *FormPageHandler) SubmitForm(c *gin.Context) {
	formID := c.Param("id")

	if err := c.Request.ParseForm(); err != nil {
		attachError(c, err)
		c.String(http.StatusBadRequest, "Invalid form data")
		return
	}

	answers := make(models.SubmissionAnswers, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			answers[key] = values[0]
		}
	}

	err := h.submissions.Submit(formID, answers)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			attachError(c, err)
			c.String(http.StatusNotFound, "Form not found")
		case errors.As(err, &validationErr):
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErr.Messages, err)
		default:
			attachError(c, err)
			c.String(http.StatusInternalServerError, "Error submitting form")
		}
		return
	}

	c.HTML(http.StatusOK, "success.html", gin.H{})
}
