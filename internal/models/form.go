package models

import (
	"strings"
	"time"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionText         QuestionType = "text"
	QuestionLongText     QuestionType = "longtext"
	QuestionDropdown     QuestionType = "dropdown"
	QuestionYesNo        QuestionType = "yesno"
	QuestionRating       QuestionType = "rating"
	QuestionMondayColumn QuestionType = "monday_column"
	QuestionDivider      QuestionType = "divider"
)

// Sentinel values a monday_column question carries when its source column
// could not be resolved at form-creation time. A question holding one of
// these is hidden from the form and never forwarded on submission.
var SentinelColumnValues = []string{
	"Erro ao carregar dados",
	"Dados não encontrados",
	"Dados não disponíveis",
	"Configuração incompleta",
}

// IsSentinelColumnValue reports whether a monday_column display value is
// empty or one of the fixed error placeholders.
func IsSentinelColumnValue(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	for _, s := range SentinelColumnValues {
		if value == s {
			return true
		}
	}
	return false
}

// QuestionSpec describes one question of a form type. In a stored form
// instance the question is a resolved snapshot: monday_column questions
// carry their display value baked into ColumnValue.
type QuestionSpec struct {
	ID          string       `json:"id" validate:"required_unless=Type divider"`
	Type        QuestionType `json:"type" validate:"required,oneof=text longtext dropdown yesno rating monday_column divider"`
	Text        string       `json:"text"`
	Placeholder string       `json:"placeholder,omitempty"`
	Required    bool         `json:"required"`

	// DropdownOptions is a semicolon-separated option list (dropdown only)
	DropdownOptions string `json:"dropdown_options,omitempty"`

	// DestinationColumn is the destination board column the answer is written to
	DestinationColumn string `json:"destination_column,omitempty"`

	// monday_column questions only
	SourceColumn string `json:"source_column,omitempty"`
	ColumnValue  string `json:"column_value,omitempty"`

	// QuestionDestinationColumn is the secondary destination column that
	// receives a monday_column question's display text itself
	QuestionDestinationColumn string `json:"question_destination_column,omitempty"`
}

// FormTypeConfig binds a form type to its boards and question set.
// board_a is the source board the webhook originates from, board_b the
// destination board submissions are forwarded to.
type FormTypeConfig struct {
	BoardA     string `json:"board_a"`
	BoardB     string `json:"board_b"`
	LinkColumn string `json:"link_column"`

	// HeaderColumns maps header field names (Viagem, Destino, Data, Cliente)
	// to source board column ids, resolved at form-creation time
	HeaderColumns map[string]string `json:"header_columns,omitempty"`

	Questions []QuestionSpec `json:"questions"`
}

// ConfigDocument is the whole form-type configuration document,
// keyed by form type name.
type ConfigDocument map[string]FormTypeConfig

// FormStatusActive is the status stamped on newly created form instances.
const FormStatusActive = "active"

// FormInstance is one generated form, persisted as a single JSON file.
// Immutable after creation except for status.
type FormInstance struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Title      string            `json:"title,omitempty"`
	Subtitle   string            `json:"subtitle,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Status     string            `json:"status"`
	ItemName   string            `json:"item_name,omitempty"`
	HeaderData map[string]string `json:"header_data,omitempty"`
	Questions  []QuestionSpec    `json:"questions"`
	WebhookData WebhookPayload   `json:"webhook_data"`
}

// FormSummary is the listing view of a stored form instance
type FormSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	ItemName  string    `json:"item_name"`
}

// SubmissionAnswers maps question ids to submitted values. Ephemeral:
// it exists only for the duration of submission handling.
type SubmissionAnswers map[string]string

// ColumnUpdate is one pending destination board column write built by the
// board sync worker. Never persisted.
type ColumnUpdate struct {
	ColumnID    string
	Value       string
	Description string
}
