package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// EventPublisher forwards serialized events to an external channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService reacts to domain events: it logs them, counts
// complaint lifecycle metrics and relays them to an external publisher.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	publisher  EventPublisher
	channel    string
}

// NotificationDependencies bundles collaborators. Publisher may be nil.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Publisher  EventPublisher
	Channel    string
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		publisher:  deps.Publisher,
		channel:    deps.Channel,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintDeleted, n.handleComplaintDeleted)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Int64("user_id", event.UserID))
	return n.relay(ctx, event)
}

func (n *NotificationService) handleComplaintCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ComplaintCreated",
		zap.Int64("complaint_id", event.ComplaintID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	n.metrics.RecordComplaint("created")
	return n.relay(ctx, event)
}

func (n *NotificationService) handleComplaintDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ComplaintDeleted",
		zap.Int64("complaint_id", event.ComplaintID),
		zap.Int64("deleted_by", event.UserID))
	n.metrics.RecordComplaint("deleted")
	return n.relay(ctx, event)
}

func (n *NotificationService) relay(ctx context.Context, event events.Event) error {
	if n.publisher == nil || n.channel == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := n.publisher.Publish(ctx, n.channel, payload); err != nil {
		n.logger.Warn("event relay failed",
			zap.String("event_type", string(event.Type)),
			zap.String("channel", n.channel),
			zap.Error(err))
		return err
	}
	return nil
}
