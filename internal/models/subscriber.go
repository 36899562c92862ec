package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSubscriptionPlan = "newsletter"

// Subscriber is a farmer or visitor signed up for updates by email and/or phone
type Subscriber struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Plan      string    `json:"plan" db:"plan"`
	Source    string    `json:"source" db:"source"`
	EmailSent bool      `json:"emailSent" db:"email_sent"`
	SMSSent   bool      `json:"smsSent" db:"sms_sent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type SubscribeRequest struct {
	Type  string `json:"type,omitempty" binding:"max=50"`
	Email string `json:"email,omitempty" binding:"max=254"`
	Phone string `json:"phone,omitempty" binding:"max=20"`
	Plan  string `json:"plan,omitempty" binding:"max=50"`
}

type SubscribeResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	SMSQueued            bool   `json:"smsQueued"`
	EmailQueued          bool   `json:"emailQueued"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// SMSRequest is the body of POST /sms
type SMSRequest struct {
	Type  string         `json:"type"`
	Phone string         `json:"phone"`
	Data  map[string]any `json:"data"`
}

type SMSResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}
