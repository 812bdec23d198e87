package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bloodlink-service/internal/events"
)

// NotificationService logs notifications for domain events. Outbound
// channels (email/SMS) are stubbed; the hooks are the integration point.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleRequestStatusChanged)
	n.dispatcher.Subscribe(events.EventCampRegistration, n.handleCampRegistration)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestCreated",
		zap.String("request_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRequestStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestStatusChanged",
		zap.String("request_id", event.SubjectID),
		zap.String("actor_kind", string(event.Actor.Kind)),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCampRegistration(ctx context.Context, event events.Event) error {
	n.logger.Info("CampRegistration",
		zap.String("camp_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}
