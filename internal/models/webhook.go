package models

import "strconv"

// WebhookPayload is the raw Monday.com webhook body stored alongside the
// form instance it triggered.
type WebhookPayload struct {
	Event WebhookEvent `json:"event"`

	// Challenge is set on Monday.com's verification handshake and must be
	// echoed back instead of processing an event
	Challenge string `json:"challenge,omitempty"`
}

// WebhookEvent carries the originating board and item of a webhook
type WebhookEvent struct {
	BoardID   int64  `json:"boardId,omitempty"`
	PulseID   int64  `json:"pulseId,omitempty"`
	PulseName string `json:"pulseName,omitempty"`
	Type      string `json:"type,omitempty"`
}

// ItemID returns the originating item id as a string, empty when absent
func (e WebhookEvent) ItemID() string {
	if e.PulseID == 0 {
		return ""
	}
	return strconv.FormatInt(e.PulseID, 10)
}
