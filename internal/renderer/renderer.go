// Package renderer turns a stored form's question snapshot into typed
// widget descriptors. Rendering is pure: the HTTP layer hands descriptors
// to the template without the template knowing about question types.
package renderer

import (
	"strings"

	"github.com/formsync/formsync-api/internal/models"
)

const (
	ratingScale       = 10
	selectPlaceholder = "Selecione uma opção"
)

// Render maps each question of the form to zero or one widget, preserving
// question order. Questions that cannot be rendered (monday_column with an
// empty or sentinel value) are dropped entirely.
func Render(form *models.FormInstance) []models.WidgetDescriptor {
	widgets := make([]models.WidgetDescriptor, 0, len(form.Questions))

	for _, q := range form.Questions {
		switch q.Type {
		case models.QuestionText:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:        models.WidgetTextInput,
				QuestionID:  q.ID,
				Label:       q.Text,
				Placeholder: q.Placeholder,
				Required:    q.Required,
			})

		case models.QuestionLongText:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:        models.WidgetTextArea,
				QuestionID:  q.ID,
				Label:       q.Text,
				Placeholder: q.Placeholder,
				Required:    q.Required,
			})

		case models.QuestionDropdown:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:       models.WidgetSelect,
				QuestionID: q.ID,
				Label:      q.Text,
				Required:   q.Required,
				Options:    dropdownOptions(q.DropdownOptions),
			})

		case models.QuestionYesNo:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:       models.WidgetRadioGroup,
				QuestionID: q.ID,
				Label:      q.Text,
				Required:   q.Required,
				Options: []models.WidgetOption{
					{Value: "yes", Label: "Sim"},
					{Value: "no", Label: "Não"},
				},
			})

		case models.QuestionRating:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:       models.WidgetRatingScale,
				QuestionID: q.ID,
				Label:      q.Text,
				Required:   q.Required,
				Scale:      ratingScale,
			})

		case models.QuestionMondayColumn:
			// Hidden entirely when the baked-in value never resolved.
			// Otherwise the display value IS the question label, rendered
			// as a rating scale. Kept as specified behavior.
			if models.IsSentinelColumnValue(q.ColumnValue) {
				continue
			}
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:       models.WidgetRatingScale,
				QuestionID: q.ID,
				Label:      strings.TrimSpace(q.ColumnValue),
				Required:   q.Required,
				Scale:      ratingScale,
			})

		case models.QuestionDivider:
			widgets = append(widgets, models.WidgetDescriptor{
				Kind: models.WidgetSectionBreak,
			})

		default:
			// Unknown types fall back to a plain text input, matching the
			// permissive behavior of the form generator
			widgets = append(widgets, models.WidgetDescriptor{
				Kind:        models.WidgetTextInput,
				QuestionID:  q.ID,
				Label:       q.Text,
				Placeholder: q.Placeholder,
				Required:    q.Required,
			})
		}
	}

	return widgets
}

// dropdownOptions parses a semicolon-separated option list, dropping
// entries that are empty after trimming. The placeholder option is
// always first.
func dropdownOptions(raw string) []models.WidgetOption {
	options := []models.WidgetOption{{Value: "", Label: selectPlaceholder}}

	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		options = append(options, models.WidgetOption{Value: part, Label: part})
	}

	return options
}
