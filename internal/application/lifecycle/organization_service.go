package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/reference"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationResult is the outcome of an organization save
type OrganizationResult struct {
	Organization *organization.Organization
	Created      bool
	Notices      []Notice
}

// saveOptions tunes one run of the organization chain
type saveOptions struct {
	// register accepts an existing organization with the same kind and name
	// instead of failing with ALREADY_EXISTS
	register bool
	// skipProvision leaves provisioning to the caller
	skipProvision bool
}

// OrganizationService runs the organization save chain: derive currency,
// discount and settings status, write, provision, then sync the customer
type OrganizationService struct {
	orgs        organization.OrganizationRepository
	resolver    reference.Resolver
	provisioner *Provisioner
	customers   *CustomerSynchronizer
	bus         shared.EventPublisher
	notify      notifier
	logger      *zap.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(
	orgs organization.OrganizationRepository,
	resolver reference.Resolver,
	provisioner *Provisioner,
	customers *CustomerSynchronizer,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgs:        orgs,
		resolver:    resolver,
		provisioner: provisioner,
		customers:   customers,
		bus:         bus,
		notify:      notifier{bus: bus, logger: logger},
		logger:      logger,
	}
}

// GetByID returns an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	return s.orgs.FindByID(ctx, id)
}

// GetByName returns an organization by kind and name
func (s *OrganizationService) GetByName(ctx context.Context, kind organization.Kind, name string) (*organization.Organization, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	return s.orgs.FindByName(ctx, kind, name)
}

// List returns a page of organizations of a kind; an empty kind lists all
func (s *OrganizationService) List(ctx context.Context, kind organization.Kind, filter shared.Filter) ([]organization.Organization, int64, error) {
	return s.orgs.FindAll(ctx, kind, filter)
}

// Save creates or updates an organization. Validation, derivation and write
// failures block the save. Provisioning and customer sync run afterwards;
// their failures are reported as notices.
func (s *OrganizationService) Save(ctx context.Context, org *organization.Organization) (*OrganizationResult, error) {
	ctx = WithNotices(ctx)
	stored, created, err := s.save(ctx, org, saveOptions{})
	if err != nil {
		return nil, err
	}
	return &OrganizationResult{
		Organization: stored,
		Created:      created,
		Notices:      NoticesFrom(ctx),
	}, nil
}

func (s *OrganizationService) save(ctx context.Context, org *organization.Organization, opts saveOptions) (*organization.Organization, bool, error) {
	ctx = logger.WithDocument(ctx, string(org.Kind), org.Name)
	ctx, span := telemetry.StartServiceSpan(ctx, "organization", "save",
		"kind", string(org.Kind), "organization", org.Name)
	defer span.End()

	if err := org.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, false, err
	}

	prev, err := s.orgs.FindByID(ctx, org.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		prev = nil
	case err != nil:
		telemetry.RecordError(span, err)
		return nil, false, fmt.Errorf("load organization: %w", err)
	}
	if prev != nil {
		// Set only by provisioning; a stale copy must not clear it
		org.CustomerAndOnboardingCreated = org.CustomerAndOnboardingCreated || prev.CustomerAndOnboardingCreated
	}

	s.derive(ctx, org, prev)

	if prev != nil {
		if err := s.customers.PreflightCurrency(ctx, org); err != nil {
			telemetry.RecordError(span, err)
			return nil, false, err
		}
	}

	stored, created, err := s.write(ctx, org, prev, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, false, err
	}
	if !created && prev == nil {
		// registered against an existing organization; nothing else to do
		return stored, false, nil
	}

	publishEvents(ctx, s.bus, stored)
	if created {
		s.notify.info(ctx, string(stored.Kind), stored.Name, fmt.Sprintf("%s %s created", stored.Kind, stored.Name))
	}

	if !stored.CustomerAndOnboardingCreated && !opts.skipProvision {
		if err := s.provisioner.Provision(ctx, stored); err != nil {
			s.notify.failure(ctx, string(stored.Kind), stored.Name, "Could not create customer and onboarding", err)
		}
	}
	if err := s.customers.Sync(ctx, stored); err != nil {
		s.notify.failure(ctx, "Customer", stored.Name, "Could not update customer", err)
	}

	telemetry.SetAttributes(span, "created", created)
	return stored, created, nil
}

// derive fills the fields computed from reference data
func (s *OrganizationService) derive(ctx context.Context, org, prev *organization.Organization) {
	if org.NeedsCurrency(prev) {
		currency := s.resolver.CurrencyForCountry(org.Country())
		org.ApplyCurrency(currency)
		logger.L(ctx).Debug("currency derived",
			zap.String("country", org.Country()),
			zap.String("currency", currency),
		)
	}
	if org.Association != "" && org.NeedsDiscount(prev) {
		if discount, ok := s.resolver.DiscountForAssociation(org.Association); ok {
			org.ApplyDiscount(discount)
		}
	}
	org.RefreshSettingsStatus()
}

func (s *OrganizationService) write(ctx context.Context, org, prev *organization.Organization, opts saveOptions) (*organization.Organization, bool, error) {
	if prev != nil {
		if err := s.orgs.SaveWithLock(ctx, org); err != nil {
			return nil, false, fmt.Errorf("save %s '%s': %w", org.Kind, org.Name, err)
		}
		return org, false, nil
	}

	stored, created, err := s.orgs.InsertIfAbsent(ctx, org)
	if err != nil {
		return nil, false, fmt.Errorf("insert %s '%s': %w", org.Kind, org.Name, err)
	}
	if !created && !opts.register {
		return nil, false, shared.NewDomainError(shared.ErrAlreadyExists.Code,
			fmt.Sprintf("%s '%s' already exists", org.Kind, org.Name))
	}
	if created {
		// the caller's instance carries the pending events
		return org, true, nil
	}
	return stored, false, nil
}
