package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shamba-service/internal/event"
	"shamba-service/internal/models"
	"shamba-service/internal/worker"
	"shamba-service/utils"

	"github.com/google/uuid"
)

const notificationPublishTimeout = 10 * time.Second

const (
	SMSTypeWeatherAlert   = "weather-alert"
	SMSTypePriceAlert     = "price-alert"
	SMSTypePlantingAdvice = "planting-advice"
	SMSTypeCustom         = "custom"
	SMSTypeWelcome        = "welcome"
)

// NotificationSender hands a message to the notification queue
type NotificationSender interface {
	Publish(ctx context.Context, msg event.NotificationMessage) error
}

type SubscriberStore interface {
	FindByContact(ctx context.Context, email, phone string) (*models.Subscriber, error)
	Create(ctx context.Context, sub *models.Subscriber) error
	UpdateContact(ctx context.Context, sub *models.Subscriber) error
	MarkNotified(ctx context.Context, id uuid.UUID, channel string) error
}

type JobSubmitter interface {
	TrySubmit(job worker.Job) bool
}

type INotificationService interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscribeResponse, error)
	SendSMS(ctx context.Context, req models.SMSRequest) (*models.SMSResponse, error)
	NotificationsEnabled() bool
}

type NotificationService struct {
	subscribers SubscriberStore
	sender      NotificationSender
	jobs        JobSubmitter
	shortCode   string
}

// NewNotificationService wires subscriptions to the queue. sender may be nil when
// RabbitMQ is unavailable; subscriptions are then stored without welcome messages.
func NewNotificationService(subscribers SubscriberStore, sender NotificationSender, jobs JobSubmitter, shortCode string) *NotificationService {
	return &NotificationService{
		subscribers: subscribers,
		sender:      sender,
		jobs:        jobs,
		shortCode:   shortCode,
	}
}

func (s *NotificationService) NotificationsEnabled() bool {
	return s.sender != nil
}

func (s *NotificationService) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscribeResponse, error) {
	req = utils.TrimAllStringFields(req)
	if req.Email == "" && req.Phone == "" {
		return nil, fmt.Errorf("%w: Email or phone number is required", ErrValidation)
	}

	phone := ""
	if req.Phone != "" {
		if ok, _ := utils.ValidateKenyanPhone(req.Phone); !ok {
			return nil, fmt.Errorf("%w: Invalid Kenyan phone number. Use format +254...", ErrValidation)
		}
		phone = utils.NormalizeKenyanPhone(req.Phone)
	}
	if req.Email != "" {
		if ok, _ := utils.ValidateEmail(req.Email); !ok {
			return nil, fmt.Errorf("%w: Invalid email address", ErrValidation)
		}
	}

	existing, err := s.subscribers.FindByContact(ctx, req.Email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	resp := &models.SubscribeResponse{
		Success:              true,
		NotificationsEnabled: s.NotificationsEnabled(),
	}

	if existing != nil {
		if req.Email != "" {
			existing.Email = &req.Email
		}
		if phone != "" {
			existing.Phone = &phone
		}
		if req.Plan != "" {
			existing.Plan = req.Plan
		}
		if err := s.subscribers.UpdateContact(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update subscription: %w", err)
		}
		resp.Message = "Your subscription has been updated!"
		return resp, nil
	}

	sub := &models.Subscriber{
		Plan:   models.DefaultSubscriptionPlan,
		Source: "website",
	}
	if req.Email != "" {
		sub.Email = &req.Email
	}
	if phone != "" {
		sub.Phone = &phone
	}
	if req.Plan != "" {
		sub.Plan = req.Plan
	}
	if req.Type != "" {
		sub.Source = req.Type
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if s.sender != nil {
		if phone != "" {
			msg := event.NewNotificationMessage(event.ChannelSMS, SMSTypeWelcome, phone, welcomeSubscriberSMS(req.Plan, s.shortCode))
			resp.SMSQueued = s.queueWelcome(sub.ID, msg)
		}
		if req.Email != "" {
			subject, body := welcomeSubscriberEmail(req.Plan)
			msg := event.NewNotificationMessage(event.ChannelEmail, SMSTypeWelcome, req.Email, body)
			msg.Subject = subject
			resp.EmailQueued = s.queueWelcome(sub.ID, msg)
		}
	}

	resp.Message = "Thank you for subscribing!"
	return resp, nil
}

// queueWelcome publishes in the background so a slow broker never delays signup
func (s *NotificationService) queueWelcome(subscriberID uuid.UUID, msg event.NotificationMessage) bool {
	queued := s.jobs.TrySubmit(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, notificationPublishTimeout)
		defer cancel()

		if err := s.sender.Publish(ctx, msg); err != nil {
			return fmt.Errorf("failed to publish welcome %s: %w", msg.Channel, err)
		}
		return s.subscribers.MarkNotified(ctx, subscriberID, string(msg.Channel))
	})
	if !queued {
		slog.Warn("notification queue full, welcome message dropped", "channel", msg.Channel, "subscriber_id", subscriberID)
	}
	return queued
}

// SendSMS renders the requested template and publishes it right away
func (s *NotificationService) SendSMS(ctx context.Context, req models.SMSRequest) (*models.SMSResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: Phone number required", ErrValidation)
	}
	if ok, _ := utils.ValidateKenyanPhone(phone); !ok {
		return nil, fmt.Errorf("%w: Invalid Kenyan phone number. Use format +254...", ErrValidation)
	}
	if s.sender == nil {
		return nil, fmt.Errorf("%w: notification queue is not configured", ErrUpstreamUnavailable)
	}

	data := req.Data
	if data == nil {
		data = map[string]any{}
	}

	msgType := req.Type
	var body string
	switch req.Type {
	case SMSTypeWeatherAlert:
		body = weatherAlertSMS(
			stringField(data, "location", "Your Location"),
			stringField(data, "alert", "Weather conditions are changing. Check the app for details."),
			s.shortCode)
	case SMSTypePriceAlert:
		body = priceAlertSMS(stringField(data, "market", models.DefaultMarket), priceQuotes(data), s.shortCode)
	case SMSTypePlantingAdvice:
		body = plantingAdviceSMS(
			stringField(data, "crop", "Maize"),
			stringField(data, "recommendation", "Optimal planting conditions detected."),
			numberField(data, "confidence", 85),
			s.shortCode)
	case SMSTypeCustom:
		body = stringField(data, "message", "Hello from Shamba Smart!")
	default:
		msgType = SMSTypeWelcome
		body = registeredSMS(s.shortCode)
	}

	msg := event.NewNotificationMessage(event.ChannelSMS, msgType, utils.NormalizeKenyanPhone(phone), body)
	if err := s.sender.Publish(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: failed to queue SMS: %v", ErrUpstreamUnavailable, err)
	}

	return &models.SMSResponse{
		Success:   true,
		Message:   "SMS queued successfully",
		MessageID: msg.ID,
	}, nil
}
