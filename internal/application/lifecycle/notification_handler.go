package lifecycle

import (
	"context"
	"fmt"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// NotificationHandler writes every NotificationRaised event to the log,
// the sink for notices raised outside a request such as queue tasks
type NotificationHandler struct {
	logger *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger.Named("notifications")}
}

// EventTypes returns the event types this handler is interested in
func (h *NotificationHandler) EventTypes() []string {
	return []string{EventTypeNotificationRaised}
}

// Handle logs a notification at the level of its notice
func (h *NotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	raised, ok := event.(*NotificationRaisedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			EventTypeNotificationRaised, event.EventType())
	}

	n := raised.Notice
	log := h.logger
	fields := []zap.Field{
		zap.String("document", n.Document),
		zap.String("name", n.Name),
		zap.String("event_id", raised.EventID().String()),
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	switch n.Level {
	case NoticeError:
		log.Error(n.Message, fields...)
	case NoticeWarning:
		log.Warn(n.Message, fields...)
	default:
		log.Info(n.Message, fields...)
	}
	return nil
}
