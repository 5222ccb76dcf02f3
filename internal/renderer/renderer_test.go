package renderer_test

import (
	"testing"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderOne(t *testing.T, q models.QuestionSpec) models.WidgetDescriptor {
	t.Helper()
	widgets := renderer.Render(&models.FormInstance{Questions: []models.QuestionSpec{q}})
	require.Len(t, widgets, 1)
	return widgets[0]
}

func TestRender_TextQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{
		ID:          "q1",
		Type:        models.QuestionText,
		Text:        "Nome completo",
		Placeholder: "Digite seu nome",
		Required:    true,
	})

	assert.Equal(t, models.WidgetTextInput, widget.Kind)
	assert.Equal(t, "q1", widget.QuestionID)
	assert.Equal(t, "Nome completo", widget.Label)
	assert.Equal(t, "Digite seu nome", widget.Placeholder)
	assert.True(t, widget.Required)
}

func TestRender_LongTextQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "q1", Type: models.QuestionLongText, Text: "Comentários"})

	assert.Equal(t, models.WidgetTextArea, widget.Kind)
	assert.Equal(t, "Comentários", widget.Label)
}

func TestRender_DropdownQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{
		ID:              "q1",
		Type:            models.QuestionDropdown,
		Text:            "Cidade",
		DropdownOptions: "Bariloche; Ushuaia ;; El Calafate ",
	})

	assert.Equal(t, models.WidgetSelect, widget.Kind)
	assert.Equal(t, []models.WidgetOption{
		{Value: "", Label: "Selecione uma opção"},
		{Value: "Bariloche", Label: "Bariloche"},
		{Value: "Ushuaia", Label: "Ushuaia"},
		{Value: "El Calafate", Label: "El Calafate"},
	}, widget.Options)
}

func TestRender_DropdownQuestion_NoOptions(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "q1", Type: models.QuestionDropdown, Text: "Cidade"})

	// Only the placeholder remains
	assert.Equal(t, []models.WidgetOption{{Value: "", Label: "Selecione uma opção"}}, widget.Options)
}

func TestRender_YesNoQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "q1", Type: models.QuestionYesNo, Text: "Recomendaria?"})

	assert.Equal(t, models.WidgetRadioGroup, widget.Kind)
	assert.Equal(t, []models.WidgetOption{
		{Value: "yes", Label: "Sim"},
		{Value: "no", Label: "Não"},
	}, widget.Options)
}

func TestRender_RatingQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "q1", Type: models.QuestionRating, Text: "Nota geral"})

	assert.Equal(t, models.WidgetRatingScale, widget.Kind)
	assert.Equal(t, 10, widget.Scale)
}

func TestRender_MondayColumnQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{
		ID:          "q1",
		Type:        models.QuestionMondayColumn,
		ColumnValue: "  Guia João  ",
		Required:    true,
	})

	// The resolved display value is the label, rendered as a rating scale
	assert.Equal(t, models.WidgetRatingScale, widget.Kind)
	assert.Equal(t, "Guia João", widget.Label)
	assert.Equal(t, 10, widget.Scale)
	assert.True(t, widget.Required)
}

func TestRender_MondayColumnQuestion_SentinelValuesHidden(t *testing.T) {
	sentinels := []string{
		"",
		"   ",
		"Erro ao carregar dados",
		"Dados não encontrados",
		"Dados não disponíveis",
		"Configuração incompleta",
	}

	for _, value := range sentinels {
		t.Run(value, func(t *testing.T) {
			widgets := renderer.Render(&models.FormInstance{Questions: []models.QuestionSpec{
				{ID: "q1", Type: models.QuestionMondayColumn, ColumnValue: value},
			}})
			assert.Empty(t, widgets)
		})
	}
}

func TestRender_DividerQuestion(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "d1", Type: models.QuestionDivider})

	assert.Equal(t, models.WidgetSectionBreak, widget.Kind)
	assert.Empty(t, widget.QuestionID)
}

func TestRender_UnknownTypeFallsBackToTextInput(t *testing.T) {
	widget := renderOne(t, models.QuestionSpec{ID: "q1", Type: "checkbox", Text: "Aceito os termos"})

	assert.Equal(t, models.WidgetTextInput, widget.Kind)
	assert.Equal(t, "Aceito os termos", widget.Label)
}

func TestRender_PreservesQuestionOrder(t *testing.T) {
	form := &models.FormInstance{Questions: []models.QuestionSpec{
		{ID: "q1", Type: models.QuestionText},
		{Type: models.QuestionDivider},
		{ID: "q2", Type: models.QuestionMondayColumn, ColumnValue: "Dados não encontrados"},
		{ID: "q3", Type: models.QuestionRating},
	}}

	widgets := renderer.Render(form)

	require.Len(t, widgets, 3)
	assert.Equal(t, "q1", widgets[0].QuestionID)
	assert.Equal(t, models.WidgetSectionBreak, widgets[1].Kind)
	assert.Equal(t, "q3", widgets[2].QuestionID)
}
