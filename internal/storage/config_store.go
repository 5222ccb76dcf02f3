package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/formsync/formsync-api/internal/models"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/formsync/formsync-api/pkg/logger"
	"go.uber.org/zap"
)

// DefaultFormTypes are the form types a fresh configuration document starts with
var DefaultFormTypes = []string{"guias", "clientes", "fornecedores"}

// ConfigStore reads and writes the form-type configuration document.
// The document is a single JSON file with whole-document overwrite
// semantics. Access is deliberately unlocked: concurrent saves are
// last-writer-wins, and a crash mid-write can leave a partial file.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a config store backed by the given file path
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Path returns the location of the configuration document
func (s *ConfigStore) Path() string {
	return s.path
}

// Exists reports whether the configuration document is present on disk
func (s *ConfigStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the configuration document. When the file is absent a default
// document with the three empty form types is synthesized and persisted.
// A present but unparsable file is a ConfigRead error, surfaced as-is.
func (s *ConfigStore) Load() (models.ConfigDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.createDefault()
		}
		return nil, apperrors.ConfigReadError(err)
	}

	var doc models.ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.ConfigReadError(err)
	}

	return doc, nil
}

// Save overwrites the whole configuration document
func (s *ConfigStore) Save(doc models.ConfigDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperrors.ConfigWriteError(err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.ConfigWriteError(err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return apperrors.ConfigWriteError(err)
	}

	return nil
}

func (s *ConfigStore) createDefault() (models.ConfigDocument, error) {
	doc := models.ConfigDocument{}
	for _, formType := range DefaultFormTypes {
		doc[formType] = models.FormTypeConfig{
			Questions: []models.QuestionSpec{},
		}
	}

	if err := s.Save(doc); err != nil {
		return nil, err
	}

	logger.Info("Created default form-type configuration", zap.String("path", s.path))
	return doc, nil
}
