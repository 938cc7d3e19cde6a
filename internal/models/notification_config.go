package models

import "time"

// NotificationConfig holds a professor's channel toggles and advance-notice
// window. The event producer consults it before dispatching; the channel
// notifiers themselves never re-check it.
type NotificationConfig struct {
	ProfessorID       string    `json:"professor_id"`
	WebPushEnabled    bool      `json:"web_push_enabled"`
	EmailEnabled      bool      `json:"email_enabled"`
	SMSEnabled        bool      `json:"sms_enabled"`
	AdvanceNoticeDays int       `json:"advance_notice_days"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultNotificationConfig is what a professor gets before saving any
// preferences: browser push and email on, WhatsApp off.
func DefaultNotificationConfig(professorID string) NotificationConfig {
	return NotificationConfig{
		ProfessorID:       professorID,
		WebPushEnabled:    true,
		EmailEnabled:      true,
		SMSEnabled:        false,
		AdvanceNoticeDays: 7,
	}
}

// NotificationConfigUpdate is the PUT body for preference changes.
type NotificationConfigUpdate struct {
	WebPushEnabled    *bool `json:"web_push_enabled,omitempty"`
	EmailEnabled      *bool `json:"email_enabled,omitempty"`
	SMSEnabled        *bool `json:"sms_enabled,omitempty"`
	AdvanceNoticeDays *int  `json:"advance_notice_days,omitempty"`
}
