package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/events"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/whatsapp"
)

// NotificationService delivers pipeline replies back to the sender's
// WhatsApp number. Delivery failures are logged, never retried here; the
// reply stays stored on the message either way.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     *whatsapp.Client
	settings   *SettingsService
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender *whatsapp.Client, settings *SettingsService, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		settings:   settings,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to pipeline events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAttendanceRecorded, n.handleAttendanceRecorded)
	n.dispatcher.Subscribe(events.EventMessageRejected, n.handleMessageRejected)
}

func (n *NotificationService) handleAttendanceRecorded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AttendanceRecordedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AttendanceRecorded",
		zap.Int64("employee_id", payload.EmployeeID),
		zap.String("kind", string(payload.Kind)),
	)
	n.deliver(ctx, payload.Phone, payload.Response)
	return nil
}

func (n *NotificationService) handleMessageRejected(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageRejectedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("MessageRejected",
		zap.String("phone", payload.Phone),
		zap.String("reason", payload.Reason),
	)
	n.deliver(ctx, payload.Phone, payload.Response)
	return nil
}

func (n *NotificationService) deliver(ctx context.Context, phone, text string) {
	if n.sender == nil {
		return
	}

	overrideURL := ""
	if n.settings != nil {
		url, err := n.settings.GetString(ctx, SettingReplyWebhookURL, "")
		if err != nil {
			n.logger.Warn("reply url setting lookup failed", zap.Error(err))
		} else {
			overrideURL = url
		}
	}

	if err := n.sender.SendText(ctx, phone, text, overrideURL); err != nil {
		n.logger.Warn("reply delivery failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
	}
}
