package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	"github.com/formsync/formsync-api/pkg/monday"
	"go.uber.org/zap"
)

// Header field names resolved at form-creation time
const (
	HeaderTrip        = "Viagem"
	HeaderDestination = "Destino"
	HeaderDate        = "Data"
	HeaderClient      = "Cliente"
)

// HeaderFieldOrder is the display order of the header fields, on the form
// page and in the destination column updates alike.
var HeaderFieldOrder = []string{HeaderTrip, HeaderDestination, HeaderDate, HeaderClient}

// Destination board columns the header fields are written to. The item name
// itself carries the trip, so it has no column here.
const (
	destinationColumnID = "text_mkrb17ct"
	dateColumnID        = "text_mksq2j87"
	clientColumnID      = "text_mkrjdnry"
)

// fallbackItemName is used when neither the trip header nor the webhook
// carries an item name
const fallbackItemName = "Resposta do Formulário"

// SyncWorker propagates one submission into the destination board. Each run
// is detached from the submitting request, owns its own config snapshot and
// shares no mutable state with concurrent runs. Everything is best-effort:
// failures are logged and counted, never retried, and never surfaced to
// the submitter, whose success response has already been sent.
type SyncWorker struct {
	config ConfigStoreInterface
	client monday.API
}

// NewSyncWorker creates a new board sync worker
func NewSyncWorker(config ConfigStoreInterface, client monday.API) *SyncWorker {
	return &SyncWorker{config: config, client: client}
}

// Run executes one propagation: reload config, create the destination item,
// then issue the column updates sequentially.
func (w *SyncWorker) Run(form *models.FormInstance, answers models.SubmissionAnswers) {
	ctx := context.Background()

	log := logger.With(
		zap.String("form_id", form.ID),
		zap.String("form_type", form.Type))

	doc, err := w.config.Load()
	if err != nil {
		log.Error("Board sync aborted: config reload failed", zap.Error(err))
		metrics.BoardSyncRuns.WithLabelValues("config_error").Inc()
		return
	}

	cfg, ok := doc[form.Type]
	if !ok || cfg.BoardB == "" {
		log.Warn("Board sync skipped: no destination board configured")
		metrics.BoardSyncRuns.WithLabelValues("no_destination").Inc()
		return
	}

	sourceItemID := form.WebhookData.Event.ItemID()
	if sourceItemID == "" {
		log.Error("Board sync aborted: webhook payload has no originating item id")
		metrics.BoardSyncRuns.WithLabelValues("missing_item").Inc()
		return
	}

	itemName := form.HeaderData[HeaderTrip]
	if itemName == "" {
		itemName = form.WebhookData.Event.PulseName
	}
	if itemName == "" {
		itemName = fallbackItemName
	}

	newItemID, err := w.client.CreateItem(ctx, cfg.BoardB, itemName)
	if err != nil {
		log.Error("Board sync aborted: destination item creation failed", zap.Error(err))
		metrics.BoardSyncRuns.WithLabelValues("create_failed").Inc()
		return
	}

	updates := BuildColumnUpdates(form, answers)
	log.Info("Processing column updates",
		zap.String("board_id", cfg.BoardB),
		zap.String("item_id", newItemID),
		zap.Int("updates", len(updates)))

	var succeeded, failed int
	for _, update := range updates {
		err := w.client.UpdateItemColumn(ctx, cfg.BoardB, newItemID, update.ColumnID, update.Value)
		if err != nil {
			// Per-column failures are terminal for that column only; the
			// remaining updates still run and the created item stays.
			log.Error("Column update failed",
				zap.String("column_id", update.ColumnID),
				zap.String("description", update.Description),
				zap.Error(err))
			metrics.BoardSyncColumnUpdates.WithLabelValues("error").Inc()
			failed++
			continue
		}
		metrics.BoardSyncColumnUpdates.WithLabelValues("success").Inc()
		succeeded++
	}

	log.Info("Board sync completed",
		zap.String("item_id", newItemID),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed))
	metrics.BoardSyncRuns.WithLabelValues("completed").Inc()
}

// BuildColumnUpdates assembles the pending destination board writes for one
// submission, in issue order: header fields first, then answered questions,
// then monday_column display values.
func BuildColumnUpdates(form *models.FormInstance, answers models.SubmissionAnswers) []models.ColumnUpdate {
	updates := make([]models.ColumnUpdate, 0, len(form.Questions)+3)

	headerColumns := []struct {
		key      string
		columnID string
	}{
		{HeaderDestination, destinationColumnID},
		{HeaderDate, dateColumnID},
		{HeaderClient, clientColumnID},
	}
	for _, h := range headerColumns {
		if value := form.HeaderData[h.key]; value != "" {
			updates = append(updates, models.ColumnUpdate{
				ColumnID:    h.columnID,
				Value:       value,
				Description: fmt.Sprintf("header %s", h.key),
			})
		}
	}

	for _, q := range form.Questions {
		// Dividers carry no answer and never reach the destination board,
		// even when a value for their id sneaks into the submission
		if q.Type == models.QuestionDivider {
			continue
		}

		if value, answered := answers[q.ID]; answered {
			value = strings.TrimSpace(value)
			destination := strings.TrimSpace(q.DestinationColumn)

			if value != "" && destination != "" {
				// Canonical yes/no answers are forwarded in display language
				switch value {
				case "yes":
					value = "Sim"
				case "no":
					value = "Não"
				}

				updates = append(updates, models.ColumnUpdate{
					ColumnID:    destination,
					Value:       value,
					Description: fmt.Sprintf("question %s (%s) response", q.ID, q.Type),
				})
			}
		}

		// A monday_column question's display text goes to its own secondary
		// column, independent of whether the question was answered
		if q.Type == models.QuestionMondayColumn {
			secondary := strings.TrimSpace(q.QuestionDestinationColumn)
			if secondary != "" && !models.IsSentinelColumnValue(q.ColumnValue) {
				updates = append(updates, models.ColumnUpdate{
					ColumnID:    secondary,
					Value:       q.ColumnValue,
					Description: fmt.Sprintf("question %s display value", q.ID),
				})
			}
		}
	}

	return updates
}
