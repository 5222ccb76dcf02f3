package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/internal/services"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func webhookTestConfig() models.ConfigDocument {
	return models.ConfigDocument{
		"guias": {
			BoardA: "100",
			BoardB: "200",
			HeaderColumns: map[string]string{
				services.HeaderTrip:        "col_trip",
				services.HeaderDestination: "col_dest",
			},
			Questions: []models.QuestionSpec{
				{ID: "q1", Type: models.QuestionText, Text: "Nome"},
				{ID: "q2", Type: models.QuestionMondayColumn, SourceColumn: "col_guide", DestinationColumn: "col_rating"},
			},
		},
	}
}

func webhookTestPayload() *models.WebhookPayload {
	return &models.WebhookPayload{
		Event: models.WebhookEvent{
			BoardID:   100,
			PulseID:   321,
			PulseName: "Viagem Bariloche",
			Type:      "create_pulse",
		},
	}
}

func TestWebhookService_HandleBoardEvent(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Once()
	mockClient.On("GetItemColumnValues", mock.Anything, "321", []string{"col_dest", "col_trip", "col_guide"}).
		Return(map[string]string{
			"col_trip":  "Viagem Bariloche",
			"col_dest":  "Bariloche",
			"col_guide": "Guia João",
		}, nil).Once()

	var created *models.FormInstance
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).
		Return("form-99", nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.FormInstance)
		})

	formID, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())

	require.NoError(t, err)
	assert.Equal(t, "form-99", formID)
	require.NotNil(t, created)
	assert.Equal(t, "guias", created.Type)
	assert.Equal(t, "Formulário de guias", created.Title)
	assert.Equal(t, "Viagem Bariloche", created.Subtitle)
	assert.Equal(t, "Viagem Bariloche", created.HeaderData[services.HeaderTrip])
	assert.Equal(t, "Bariloche", created.HeaderData[services.HeaderDestination])
	require.Len(t, created.Questions, 2)
	assert.Equal(t, "Guia João", created.Questions[1].ColumnValue)

	mockConfig.AssertExpectations(t)
	mockForms.AssertExpectations(t)
	mockClient.AssertExpectations(t)
}

func TestWebhookService_HandleBoardEvent_UnknownFormType(t *testing.T) {
	mockConfig := new(MockConfigStore)
	service := services.NewWebhookService(mockConfig, new(MockFormStore), new(MockBoardAPI), 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Once()

	_, err := service.HandleBoardEvent(context.Background(), "parceiros", webhookTestPayload())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWebhookService_HandleBoardEvent_MissingPulseID(t *testing.T) {
	mockConfig := new(MockConfigStore)
	service := services.NewWebhookService(mockConfig, new(MockFormStore), new(MockBoardAPI), 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Once()

	payload := webhookTestPayload()
	payload.Event.PulseID = 0

	_, err := service.HandleBoardEvent(context.Background(), "guias", payload)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWebhookService_HandleBoardEvent_BoardReadFailureDegradesToSentinel(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Once()
	mockClient.On("GetItemColumnValues", mock.Anything, "321", mock.Anything).
		Return(nil, errors.New("api down"))

	var created *models.FormInstance
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).
		Return("form-100", nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.FormInstance)
		})

	formID, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())

	// The form is still created; the unresolvable data degrades to sentinels
	require.NoError(t, err)
	assert.Equal(t, "form-100", formID)
	require.NotNil(t, created)
	assert.Empty(t, created.HeaderData)
	assert.Equal(t, "Erro ao carregar dados", created.Questions[1].ColumnValue)
}

func TestWebhookService_HandleBoardEvent_MissingSourceColumn(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	doc := models.ConfigDocument{
		"guias": {
			BoardA: "100",
			BoardB: "200",
			Questions: []models.QuestionSpec{
				{ID: "q1", Type: models.QuestionMondayColumn},
			},
		},
	}
	mockConfig.On("Load").Return(doc, nil).Once()

	var created *models.FormInstance
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).
		Return("form-101", nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.FormInstance)
		})

	_, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Configuração incompleta", created.Questions[0].ColumnValue)
	// No columns to read, so the board is never queried
	mockClient.AssertNotCalled(t, "GetItemColumnValues", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookService_HandleBoardEvent_BlankColumnValue(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Once()
	mockClient.On("GetItemColumnValues", mock.Anything, "321", mock.Anything).
		Return(map[string]string{"col_guide": "   "}, nil).Once()

	var created *models.FormInstance
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).
		Return("form-102", nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.FormInstance)
		})

	_, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Dados não encontrados", created.Questions[1].ColumnValue)
}

func TestWebhookService_HandleBoardEvent_WritesFormLink(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com/")

	doc := webhookTestConfig()
	cfg := doc["guias"]
	cfg.LinkColumn = "col_link"
	doc["guias"] = cfg

	mockConfig.On("Load").Return(doc, nil).Once()
	mockClient.On("GetItemColumnValues", mock.Anything, "321", mock.Anything).
		Return(map[string]string{}, nil).Once()
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).Return("form-103", nil).Once()

	done := make(chan struct{})
	mockClient.On("UpdateItemColumn", mock.Anything, "100", "321", "col_link", "https://forms.example.com/form/form-103").
		Return(nil).Once().
		Run(func(mock.Arguments) { close(done) })

	_, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("form link write did not run")
	}
	mockClient.AssertExpectations(t)
}

func TestWebhookService_HandleBoardEvent_FormLinkWriteRetries(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	doc := webhookTestConfig()
	cfg := doc["guias"]
	cfg.LinkColumn = "col_link"
	doc["guias"] = cfg

	mockConfig.On("Load").Return(doc, nil).Once()
	mockClient.On("GetItemColumnValues", mock.Anything, "321", mock.Anything).
		Return(map[string]string{}, nil).Once()
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).Return("form-105", nil).Once()

	// First write fails, the retried write lands
	done := make(chan struct{})
	mockClient.On("UpdateItemColumn", mock.Anything, "100", "321", "col_link", "https://forms.example.com/form/form-105").
		Return(errors.New("board unreachable")).Once()
	mockClient.On("UpdateItemColumn", mock.Anything, "100", "321", "col_link", "https://forms.example.com/form/form-105").
		Return(nil).Once().
		Run(func(mock.Arguments) { close(done) })

	_, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("form link write was not retried")
	}
	mockClient.AssertExpectations(t)
}

func TestWebhookService_HandleBoardEvent_ColumnReadsAreCached(t *testing.T) {
	mockConfig := new(MockConfigStore)
	mockForms := new(MockFormStore)
	mockClient := new(MockBoardAPI)
	service := services.NewWebhookService(mockConfig, mockForms, mockClient, 60, "https://forms.example.com")

	mockConfig.On("Load").Return(webhookTestConfig(), nil).Twice()
	// One remote read serves both events for the same item
	mockClient.On("GetItemColumnValues", mock.Anything, "321", mock.Anything).
		Return(map[string]string{"col_guide": "Guia João"}, nil).Once()
	mockForms.On("Create", mock.AnythingOfType("*models.FormInstance")).Return("form-104", nil).Twice()

	_, err := service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())
	require.NoError(t, err)
	_, err = service.HandleBoardEvent(context.Background(), "guias", webhookTestPayload())
	require.NoError(t, err)

	mockClient.AssertExpectations(t)
}
