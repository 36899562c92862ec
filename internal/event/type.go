package event

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
)

// NotificationMessage is the payload the notification service consumes and delivers.
// Delivery through an SMS or email provider happens downstream.
type NotificationMessage struct {
	ID        string              `json:"id"`
	Channel   NotificationChannel `json:"channel"`
	Type      string              `json:"type"`
	Recipient string              `json:"recipient"`
	Subject   string              `json:"subject,omitempty"`
	Body      string              `json:"body"`
	Metadata  map[string]any      `json:"metadata,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// NewNotificationMessage fills in the id and timestamp
func NewNotificationMessage(channel NotificationChannel, msgType, recipient, body string) NotificationMessage {
	return NotificationMessage{
		ID:        uuid.NewString(),
		Channel:   channel,
		Type:      msgType,
		Recipient: recipient,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}
