package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CustomerSynchronizer mirrors an organization's billing details onto its customer
type CustomerSynchronizer struct {
	customers partner.CustomerRepository
	accounts  *AccountManager
	bus       shared.EventPublisher
	logger    *zap.Logger
}

// NewCustomerSynchronizer creates a new CustomerSynchronizer
func NewCustomerSynchronizer(
	customers partner.CustomerRepository,
	accounts *AccountManager,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *CustomerSynchronizer {
	return &CustomerSynchronizer{
		customers: customers,
		accounts:  accounts,
		bus:       bus,
		logger:    logger,
	}
}

// linkedCustomer finds the customer of org, or nil when there is none
func (s *CustomerSynchronizer) linkedCustomer(ctx context.Context, org *organization.Organization) (*partner.Customer, error) {
	customer, err := s.customers.FindByOrganization(ctx, org.Kind, org.Name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer for %s '%s': %w", org.Kind, org.Name, err)
	}
	return customer, nil
}

// Sync copies tax, discount, contact and billing address from org onto its
// customer. When the organization's currency differs from the customer's
// default currency, the currency is enabled, its receivable account ensured
// and the attachment queued before the new default currency is stored. If
// that fails the customer keeps its old currency, so a later save tries
// again. An organization without a customer is left alone.
func (s *CustomerSynchronizer) Sync(ctx context.Context, org *organization.Organization) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "sync", "organization", org.Name)
	defer span.End()

	var err error
	for attempt := 1; attempt <= attachRetries; attempt++ {
		err = s.syncOnce(ctx, org)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
		// the attach task may have saved the customer in between
		logger.L(ctx).Debug("customer changed during sync, reloading",
			zap.String("organization", org.Name),
			zap.Int("attempt", attempt),
		)
	}
	telemetry.RecordError(span, err)
	return err
}

func (s *CustomerSynchronizer) syncOnce(ctx context.Context, org *organization.Organization) error {
	customer, err := s.linkedCustomer(ctx, org)
	if err != nil || customer == nil {
		return err
	}

	customer.SyncFromOrganization(org)

	// the currency only moves once its account is on the way
	var attachErr error
	currencyChanged := false
	if customer.CurrencyDiffers(org.Currency) {
		attachErr = s.accounts.ScheduleAttach(ctx, customer.ID, org.Currency)
		if attachErr == nil {
			customer.SetDefaultCurrency(org.Currency)
			currencyChanged = true
		}
	}

	if err := s.customers.SaveWithLock(ctx, customer); err != nil {
		return fmt.Errorf("save customer '%s': %w", customer.Name, err)
	}
	publishEvents(ctx, s.bus, customer)

	logger.L(ctx).Debug("customer synchronized",
		zap.String("customer", customer.Name),
		zap.Bool("currency_changed", currencyChanged),
	)
	if attachErr != nil {
		return fmt.Errorf("attach receivable account to '%s': %w", customer.Name, attachErr)
	}
	return nil
}

// PreflightCurrency checks, before org is written, that a currency change
// it will push to its customer has a receivable account to land on
func (s *CustomerSynchronizer) PreflightCurrency(ctx context.Context, org *organization.Organization) error {
	if org.Currency == "" {
		return nil
	}
	customer, err := s.linkedCustomer(ctx, org)
	if err != nil || customer == nil {
		return err
	}
	if !customer.CurrencyDiffers(org.Currency) {
		return nil
	}
	_, err = s.accounts.EnsureAccount(ctx, org.Currency)
	return err
}
