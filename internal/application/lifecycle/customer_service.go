package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerResult is the outcome of a customer save
type CustomerResult struct {
	Customer *partner.Customer
	Created  bool
	Notices  []Notice
}

// CustomerService saves customers edited directly by users
type CustomerService struct {
	customers partner.CustomerRepository
	accounts  *AccountManager
	bus       shared.EventPublisher
	notify    notifier
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers partner.CustomerRepository, accounts *AccountManager, bus shared.EventPublisher, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		accounts:  accounts,
		bus:       bus,
		notify:    notifier{bus: bus, logger: logger},
	}
}

// GetByID returns a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// GetByName returns a customer by name
func (s *CustomerService) GetByName(ctx context.Context, name string) (*partner.Customer, error) {
	return s.customers.FindByName(ctx, name)
}

// Save persists a customer. A new or changed default currency needs its
// receivable account, which is ensured before the write; the attachment
// itself is queued after it.
func (s *CustomerService) Save(ctx context.Context, customer *partner.Customer) (*CustomerResult, error) {
	ctx = WithNotices(ctx)
	ctx = logger.WithDocument(ctx, partner.AggregateTypeCustomer, customer.Name)

	if err := customer.Validate(); err != nil {
		return nil, err
	}
	customer.DefaultCurrency = strings.ToUpper(strings.TrimSpace(customer.DefaultCurrency))

	prev, err := s.customers.FindByID(ctx, customer.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		prev = nil
	case err != nil:
		return nil, fmt.Errorf("load customer: %w", err)
	}

	currencyChanged := customer.DefaultCurrency != "" &&
		(prev == nil || prev.DefaultCurrency != customer.DefaultCurrency)
	if currencyChanged {
		if _, err := s.accounts.EnsureAccount(ctx, customer.DefaultCurrency); err != nil {
			return nil, err
		}
	}

	result := &CustomerResult{Customer: customer}
	if prev == nil {
		_, created, err := s.customers.InsertIfAbsent(ctx, customer)
		if err != nil {
			return nil, fmt.Errorf("insert customer '%s': %w", customer.Name, err)
		}
		if !created {
			return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code,
				fmt.Sprintf("Customer '%s' already exists", customer.Name))
		}
		result.Created = true
	} else if err := s.customers.SaveWithLock(ctx, customer); err != nil {
		return nil, fmt.Errorf("save customer '%s': %w", customer.Name, err)
	}
	publishEvents(ctx, s.bus, customer)

	if currencyChanged {
		if err := s.accounts.ScheduleAttach(ctx, customer.ID, customer.DefaultCurrency); err != nil {
			s.notify.failure(ctx, partner.AggregateTypeCustomer, customer.Name, "Could not attach receivable account", err)
		}
	}

	result.Notices = NoticesFrom(ctx)
	return result, nil
}
