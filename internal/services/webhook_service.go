package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/formsync/formsync-api/internal/cache"
	"github.com/formsync/formsync-api/internal/models"
	"github.com/formsync/formsync-api/pkg/circuitbreaker"
	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	"github.com/formsync/formsync-api/pkg/monday"
	"github.com/formsync/formsync-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Sentinel display values baked into monday_column questions when their
// source column cannot be resolved
const (
	sentinelLoadError     = "Erro ao carregar dados"
	sentinelNotFound      = "Dados não encontrados"
	sentinelMisconfigured = "Configuração incompleta"
)

// WebhookService turns a source-board webhook event into a stored form
// instance with all monday_column and header values resolved up front.
type WebhookService struct {
	config  ConfigStoreInterface
	forms   FormStoreInterface
	client  monday.API
	columns *cache.ColumnCache
	breaker *gobreaker.CircuitBreaker
	baseURL string
}

// NewWebhookService creates a new webhook service instance
func NewWebhookService(
	config ConfigStoreInterface,
	forms FormStoreInterface,
	client monday.API,
	columnCacheTTLSeconds int,
	baseURL string,
) *WebhookService {
	s := &WebhookService{
		config:  config,
		forms:   forms,
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("monday")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	s.columns = cache.NewColumnCache(s.fetchColumnValues, columnCacheTTLSeconds)
	return s
}

// HandleBoardEvent resolves the event against the current configuration and
// persists a new form instance. Returns the generated form id.
func (s *WebhookService) HandleBoardEvent(ctx context.Context, formType string, payload *models.WebhookPayload) (string, error) {
	doc, err := s.config.Load()
	if err != nil {
		return "", err
	}

	cfg, ok := doc[formType]
	if !ok {
		return "", apperrors.NotFoundError("form type " + formType)
	}

	itemID := payload.Event.ItemID()
	if itemID == "" {
		return "", apperrors.InvalidInputError("event", "missing pulseId")
	}

	headerData, questions := s.resolveSnapshot(ctx, cfg, itemID)

	form := &models.FormInstance{
		Type:        formType,
		Title:       fmt.Sprintf("Formulário de %s", formType),
		Subtitle:    payload.Event.PulseName,
		ItemName:    payload.Event.PulseName,
		HeaderData:  headerData,
		Questions:   questions,
		WebhookData: *payload,
	}

	formID, err := s.forms.Create(form)
	if err != nil {
		return "", err
	}

	metrics.FormsGenerated.WithLabelValues(formType).Inc()
	logger.Info("Form generated from webhook",
		zap.String("form_id", formID),
		zap.String("form_type", formType),
		zap.String("item_id", itemID),
		zap.String("item_name", payload.Event.PulseName))

	// Write the form URL back into the source item's link column.
	// Fire-and-forget: a failure costs the operator a convenience link,
	// nothing else.
	if cfg.LinkColumn != "" && cfg.BoardA != "" {
		formURL := fmt.Sprintf("%s/form/%s", s.baseURL, formID)
		go s.writeFormLink(cfg.BoardA, itemID, cfg.LinkColumn, formURL)
	}

	return formID, nil
}

// resolveSnapshot reads the source-board columns the form type needs and
// bakes their display values into the header data and question snapshot.
// Board read failures degrade to sentinel values; form creation proceeds.
func (s *WebhookService) resolveSnapshot(ctx context.Context, cfg models.FormTypeConfig, itemID string) (map[string]string, []models.QuestionSpec) {
	columnIDs := make([]string, 0, len(cfg.HeaderColumns)+len(cfg.Questions))
	for _, columnID := range cfg.HeaderColumns {
		if columnID != "" {
			columnIDs = append(columnIDs, columnID)
		}
	}
	// Header columns come from a map; sort them so the remote query is
	// deterministic
	sort.Strings(columnIDs)
	for _, q := range cfg.Questions {
		if q.Type == models.QuestionMondayColumn && q.SourceColumn != "" {
			columnIDs = append(columnIDs, q.SourceColumn)
		}
	}

	var values map[string]string
	var readErr error
	if len(columnIDs) > 0 {
		values, readErr = s.columns.Get(ctx, itemID, columnIDs)
		if readErr != nil {
			logger.LogError(readErr, "Failed to read source board columns",
				zap.String("item_id", itemID))
		}
	}

	headerData := make(map[string]string, len(cfg.HeaderColumns))
	for name, columnID := range cfg.HeaderColumns {
		if value := values[columnID]; value != "" {
			headerData[name] = value
		}
	}

	questions := make([]models.QuestionSpec, len(cfg.Questions))
	copy(questions, cfg.Questions)
	for i := range questions {
		if questions[i].Type != models.QuestionMondayColumn {
			continue
		}

		switch {
		case questions[i].SourceColumn == "":
			questions[i].ColumnValue = sentinelMisconfigured
		case readErr != nil:
			questions[i].ColumnValue = sentinelLoadError
		default:
			value, found := values[questions[i].SourceColumn]
			if !found || strings.TrimSpace(value) == "" {
				questions[i].ColumnValue = sentinelNotFound
			} else {
				questions[i].ColumnValue = value
			}
		}
	}

	return headerData, questions
}

// fetchColumnValues is the cache read-through: a retried, circuit-broken
// board read
func (s *WebhookService) fetchColumnValues(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
	return circuitbreaker.Execute(s.breaker, func() (map[string]string, error) {
		return retry.DoWithResult(ctx, retry.MondayConfig(), "getItemColumnValues", func() (map[string]string, error) {
			return s.client.GetItemColumnValues(ctx, itemID, columnIDs)
		})
	})
}

// writeFormLink puts the generated form URL on the source item. The write is
// retried like the column reads; losing it permanently leaves the operator
// with no path back to the form.
func (s *WebhookService) writeFormLink(boardID, itemID, columnID, formURL string) {
	err := retry.Do(context.Background(), retry.MondayConfig(), "writeFormLink", func() error {
		return s.client.UpdateItemColumn(context.Background(), boardID, itemID, columnID, formURL)
	})
	if err != nil {
		logger.Warn("Failed to write form link to source item",
			zap.String("board_id", boardID),
			zap.String("item_id", itemID),
			zap.String("column_id", columnID),
			zap.Error(err))
		return
	}

	logger.Info("Form link written to source item",
		zap.String("item_id", itemID),
		zap.String("url", formURL))
}
