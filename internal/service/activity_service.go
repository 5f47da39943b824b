package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/events"
	"github.com/spec-kit/contact-service/internal/observability"
)

// ActivityService records contact lifecycle events for operators.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventContactCreated, a.handleContactCreated)
	a.dispatcher.Subscribe(events.EventContactUpdated, a.handleContactUpdated)
	a.dispatcher.Subscribe(events.EventContactDeleted, a.handleContactDeleted)
}

func (a *ActivityService) handleContactCreated(_ context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if payload, ok := event.Payload.(events.ContactCreatedPayload); ok {
		fields = append(fields, zap.String("type", string(payload.Type)))
	}
	a.logger.Info("ContactCreated", fields...)
	a.metrics.RecordContactEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleContactUpdated(_ context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if payload, ok := event.Payload.(events.ContactUpdatedPayload); ok {
		fields = append(fields, zap.Strings("fields", payload.Fields))
	}
	a.logger.Info("ContactUpdated", fields...)
	a.metrics.RecordContactEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleContactDeleted(_ context.Context, event events.Event) error {
	a.logger.Info("ContactDeleted", a.baseFields(event)...)
	a.metrics.RecordContactEvent(string(event.Type))
	return nil
}

func (a *ActivityService) baseFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("contact_id", event.ContactID),
		zap.String("owner_id", event.OwnerID),
	}
}
