package models

// NotificationPayload is the per-send message handed to a channel notifier.
// Recipient is channel-specific: a professor ID for push, an email address
// for email, a phone number for WhatsApp. The event producer substitutes it
// before each channel dispatch. Its format is not validated here.
type NotificationPayload struct {
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Recipient string                 `json:"recipient"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
