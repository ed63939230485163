package lifecycle

import (
	"context"
	"sync"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoticeLevel is the severity of a user-facing notice
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a non-blocking message shown to the user after a save
type Notice struct {
	Level    NoticeLevel `json:"level"`
	Document string      `json:"document,omitempty"`
	Name     string      `json:"name,omitempty"`
	Message  string      `json:"message"`
}

// noticeCollector gathers the notices raised while one request is handled
type noticeCollector struct {
	mu    sync.Mutex
	items []Notice
}

type noticesKey struct{}

// WithNotices returns a context that collects notices. Nested calls reuse
// the outer collector so one request sees every notice its chains raised.
func WithNotices(ctx context.Context) context.Context {
	if _, ok := ctx.Value(noticesKey{}).(*noticeCollector); ok {
		return ctx
	}
	return context.WithValue(ctx, noticesKey{}, &noticeCollector{})
}

// NoticesFrom returns the notices collected on ctx so far
func NoticesFrom(ctx context.Context) []Notice {
	c, ok := ctx.Value(noticesKey{}).(*noticeCollector)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.items))
	copy(out, c.items)
	return out
}

func addNotice(ctx context.Context, n Notice) {
	c, ok := ctx.Value(noticesKey{}).(*noticeCollector)
	if !ok {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// notifier records notices on the request and publishes them as
// NotificationRaised events
type notifier struct {
	bus    shared.EventPublisher
	logger *zap.Logger
}

func (n notifier) info(ctx context.Context, document, name, message string) {
	n.raise(ctx, Notice{Level: NoticeInfo, Document: document, Name: name, Message: message})
}

// failure reports a best-effort step that did not complete
func (n notifier) failure(ctx context.Context, document, name, message string, err error) {
	logger.L(ctx).Warn(message,
		zap.String("document", document),
		zap.String("name", name),
		zap.Error(err),
	)
	n.raise(ctx, Notice{Level: NoticeError, Document: document, Name: name, Message: message + ": " + err.Error()})
}

func (n notifier) raise(ctx context.Context, notice Notice) {
	addNotice(ctx, notice)
	if n.bus == nil {
		return
	}
	if err := n.bus.Publish(ctx, NewNotificationRaisedEvent(notice)); err != nil {
		n.logger.Warn("failed to publish notification", zap.Error(err))
	}
}

// publishEvents publishes and clears the pending events of an aggregate.
// Publication failures are logged; the write they describe already happened.
func publishEvents(ctx context.Context, bus shared.EventPublisher, agg shared.AggregateRoot) {
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	agg.ClearDomainEvents()
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, events...); err != nil {
		logger.L(ctx).Warn("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}

// AggregateTypeNotification is the aggregate type of notification events
const AggregateTypeNotification = "Notification"

// EventTypeNotificationRaised is published for every user-facing notice
const EventTypeNotificationRaised = "NotificationRaised"

// NotificationRaisedEvent carries a notice to interested subscribers
type NotificationRaisedEvent struct {
	shared.BaseDomainEvent
	Notice Notice `json:"notice"`
}

// NewNotificationRaisedEvent creates a new NotificationRaisedEvent
func NewNotificationRaisedEvent(n Notice) *NotificationRaisedEvent {
	return &NotificationRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeNotificationRaised, AggregateTypeNotification, uuid.Nil),
		Notice:          n,
	}
}
