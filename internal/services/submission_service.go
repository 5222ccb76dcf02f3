package services

import (
	"fmt"
	"strings"

	"github.com/formsync/formsync-api/internal/models"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	"go.uber.org/zap"
)

// ValidationError reports required questions missing from a submission
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission validation failed: %s", strings.Join(e.Messages, "; "))
}

// Unwrap lets callers match with errors.Is(err, apperrors.ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// SubmissionService accepts form submissions and schedules their
// propagation. The HTTP contract never waits on the destination board:
// the worker is spawned detached and its outcome is observable only in
// logs and metrics.
type SubmissionService struct {
	forms  FormStoreInterface
	worker *SyncWorker
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(forms FormStoreInterface, worker *SyncWorker) *SubmissionService {
	return &SubmissionService{forms: forms, worker: worker}
}

// Submit validates the answers against the stored form and fires the board
// sync worker. Returns nil as soon as the worker is scheduled.
func (s *SubmissionService) Submit(formID string, answers models.SubmissionAnswers) error {
	form, ok := s.forms.Get(formID)
	if !ok {
		metrics.FormSubmissions.WithLabelValues("unknown", "not_found").Inc()
		return apperrors.NotFoundError("form")
	}

	if err := validateAnswers(form, answers); err != nil {
		metrics.FormSubmissions.WithLabelValues(form.Type, "invalid").Inc()
		return err
	}

	logger.Info("Form submitted",
		zap.String("form_id", formID),
		zap.String("form_type", form.Type),
		zap.Int("answers", len(answers)),
		zap.Int("questions", len(form.Questions)))

	metrics.FormSubmissions.WithLabelValues(form.Type, "accepted").Inc()

	// Fire and forget: no join, no result channel, outcome never reaches
	// the submitter
	go s.worker.Run(form, answers)

	return nil
}

// validateAnswers checks that every required, renderable question has a
// non-blank answer. Answer ids that match no question are ignored.
func validateAnswers(form *models.FormInstance, answers models.SubmissionAnswers) error {
	var missing []string

	for _, q := range form.Questions {
		if !q.Required || q.Type == models.QuestionDivider {
			continue
		}
		// Hidden monday_column questions are never shown, so they cannot
		// be required of the submitter
		if q.Type == models.QuestionMondayColumn && models.IsSentinelColumnValue(q.ColumnValue) {
			continue
		}

		if strings.TrimSpace(answers[q.ID]) == "" {
			label := q.Text
			if q.Type == models.QuestionMondayColumn {
				label = strings.TrimSpace(q.ColumnValue)
			}
			missing = append(missing, fmt.Sprintf("O campo '%s' é obrigatório", label))
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Messages: missing}
	}
	return nil
}
