package partner

import (
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated           = "CustomerCreated"
	EventTypeCustomerCurrencyChanged   = "CustomerCurrencyChanged"
	EventTypeReceivableAccountAttached = "ReceivableAccountAttached"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
	}
}

// CustomerCurrencyChangedEvent is published when the default currency changes
type CustomerCurrencyChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID  uuid.UUID `json:"customer_id"`
	OldCurrency string    `json:"old_currency"`
	NewCurrency string    `json:"new_currency"`
}

// NewCustomerCurrencyChangedEvent creates a new CustomerCurrencyChangedEvent
func NewCustomerCurrencyChangedEvent(c *Customer, oldCurrency, newCurrency string) *CustomerCurrencyChangedEvent {
	return &CustomerCurrencyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCurrencyChanged, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		OldCurrency:     oldCurrency,
		NewCurrency:     newCurrency,
	}
}

// ReceivableAccountAttachedEvent is published when an account entry is appended
type ReceivableAccountAttachedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Customer   string    `json:"customer"`
	Company    string    `json:"company"`
	Account    string    `json:"account"`
}

// NewReceivableAccountAttachedEvent creates a new ReceivableAccountAttachedEvent
func NewReceivableAccountAttachedEvent(c *Customer, company, account string) *ReceivableAccountAttachedEvent {
	return &ReceivableAccountAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivableAccountAttached, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Customer:        c.Name,
		Company:         company,
		Account:         account,
	}
}
