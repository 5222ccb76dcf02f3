package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/formsync/formsync-api/internal/models"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormStore persists form instances, one JSON file per form keyed by its
// generated identifier. No locking: instances are written once and read-only
// afterwards, so concurrent access is safe in practice.
type FormStore struct {
	dir string
}

// NewFormStore creates a form store rooted at dir, creating it if needed
func NewFormStore(dir string) (*FormStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.StoreIOError("", err)
	}
	return &FormStore{dir: dir}, nil
}

// Create assigns a fresh identifier, stamps creation metadata and persists
// the form. Write failures propagate so the webhook intake can react.
func (s *FormStore) Create(form *models.FormInstance) (string, error) {
	form.ID = uuid.NewString()
	form.CreatedAt = time.Now().UTC()
	form.Status = models.FormStatusActive

	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return "", apperrors.StoreIOError(form.ID, err)
	}

	if err := os.WriteFile(s.formPath(form.ID), data, 0644); err != nil {
		return "", apperrors.StoreIOError(form.ID, err)
	}

	logger.Info("Saved form instance",
		zap.String("form_id", form.ID),
		zap.String("form_type", form.Type))

	return form.ID, nil
}

// Get returns the form with the given id, or ok=false when the id is
// unknown or the record cannot be read. Read failures are logged, not
// surfaced: a broken record is indistinguishable from an absent one.
func (s *FormStore) Get(id string) (*models.FormInstance, bool) {
	if uuid.Validate(id) != nil {
		return nil, false
	}

	data, err := os.ReadFile(s.formPath(id))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read form instance", zap.String("form_id", id), zap.Error(err))
		}
		return nil, false
	}

	var form models.FormInstance
	if err := json.Unmarshal(data, &form); err != nil {
		logger.Error("Failed to decode form instance", zap.String("form_id", id), zap.Error(err))
		return nil, false
	}

	return &form, true
}

// List enumerates all stored forms as summaries, newest first. Individual
// unreadable records are skipped with a log entry.
func (s *FormStore) List() ([]models.FormSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.StoreIOError("", err)
	}

	summaries := make([]models.FormSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		form, ok := s.Get(id)
		if !ok {
			logger.Warn("Skipping unreadable form record", zap.String("form_id", id))
			continue
		}

		title := form.Title
		if title == "" {
			title = "Formulário sem título"
		}

		summaries = append(summaries, models.FormSummary{
			ID:        form.ID,
			Title:     title,
			Type:      form.Type,
			CreatedAt: form.CreatedAt,
			ItemName:  form.ItemName,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	return summaries, nil
}

// Delete removes the form if present and reports whether removal occurred.
// Idempotent: deleting an unknown id is false, not an error.
func (s *FormStore) Delete(id string) bool {
	if uuid.Validate(id) != nil {
		return false
	}

	err := os.Remove(s.formPath(id))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to delete form instance", zap.String("form_id", id), zap.Error(err))
		}
		return false
	}

	logger.Info("Deleted form instance", zap.String("form_id", id))
	return true
}

func (s *FormStore) formPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}
