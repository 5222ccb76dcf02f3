package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formsync/formsync-api/internal/handlers"
	"github.com/formsync/formsync-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormsRouter(service *MockFormService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewFormsHandler(service)
	router := gin.New()
	router.GET("/api/forms", handler.ListForms)
	router.DELETE("/api/forms/:id", handler.DeleteForm)
	return router
}

func TestFormsHandler_ListForms(t *testing.T) {
	mockService := new(MockFormService)
	router := newFormsRouter(mockService)

	summaries := []models.FormSummary{
		{ID: "form-2", Title: "Recente", Type: "guias", CreatedAt: time.Now().UTC()},
		{ID: "form-1", Title: "Antigo", Type: "clientes", CreatedAt: time.Now().UTC().Add(-time.Hour)},
	}
	mockService.On("ListForms").Return(summaries, nil)

	req := httptest.NewRequest("GET", "/api/forms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []models.FormSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "form-2", resp[0].ID)
}

func TestFormsHandler_ListForms_Error(t *testing.T) {
	mockService := new(MockFormService)
	router := newFormsRouter(mockService)

	mockService.On("ListForms").Return(nil, errors.New("storage error"))

	req := httptest.NewRequest("GET", "/api/forms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFormsHandler_DeleteForm(t *testing.T) {
	mockService := new(MockFormService)
	router := newFormsRouter(mockService)

	mockService.On("DeleteForm", "form-1").Return(true)

	req := httptest.NewRequest("DELETE", "/api/forms/form-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Form deleted successfully", resp["message"])
}

func TestFormsHandler_DeleteForm_NotFound(t *testing.T) {
	mockService := new(MockFormService)
	router := newFormsRouter(mockService)

	mockService.On("DeleteForm", "missing").Return(false)

	req := httptest.NewRequest("DELETE", "/api/forms/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
