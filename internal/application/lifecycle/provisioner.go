package lifecycle

import (
	"context"
	"fmt"

	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Provisioner creates the customer and onboarding that every organization gets
type Provisioner struct {
	orgs        organization.OrganizationRepository
	customers   partner.CustomerRepository
	onboardings onboarding.OnboardingRepository
	phase       onboarding.PhaseFunc
	bus         shared.EventPublisher
	notify      notifier
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(
	orgs organization.OrganizationRepository,
	customers partner.CustomerRepository,
	onboardings onboarding.OnboardingRepository,
	phase onboarding.PhaseFunc,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *Provisioner {
	if phase == nil {
		phase = onboarding.ComputePhase
	}
	return &Provisioner{
		orgs:        orgs,
		customers:   customers,
		onboardings: onboardings,
		phase:       phase,
		bus:         bus,
		notify:      notifier{bus: bus, logger: logger},
	}
}

// Provision creates the customer and onboarding of org when they do not
// exist yet and then sets customer_and_onboarding_created. It is safe to
// call again after a partial failure.
func (p *Provisioner) Provision(ctx context.Context, org *organization.Organization) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "organization", "provision",
		"kind", string(org.Kind), "organization", org.Name)
	defer span.End()

	if err := p.createCustomer(ctx, org); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := p.createOnboarding(ctx, org); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if org.CustomerAndOnboardingCreated {
		return nil
	}
	if err := p.orgs.SetProvisioned(ctx, org.ID); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("mark '%s' provisioned: %w", org.Name, err)
	}
	if err := org.MarkProvisioned(); err != nil {
		return err
	}
	publishEvents(ctx, p.bus, org)
	return nil
}

func (p *Provisioner) createCustomer(ctx context.Context, org *organization.Organization) error {
	customer, err := partner.NewCustomerForOrganization(org)
	if err != nil {
		return err
	}
	customer.SyncFromOrganization(org)

	stored, created, err := p.customers.InsertIfAbsent(ctx, customer)
	if err != nil {
		return fmt.Errorf("create customer '%s': %w", org.Name, err)
	}
	if !created {
		logger.L(ctx).Debug("customer already exists", zap.String("customer", stored.Name))
		return nil
	}
	publishEvents(ctx, p.bus, customer)
	p.notify.info(ctx, "Customer", stored.Name, fmt.Sprintf("Customer %s created", stored.Name))
	return nil
}

func (p *Provisioner) createOnboarding(ctx context.Context, org *organization.Organization) error {
	ob, err := onboarding.NewOnboarding(org.Name, org.Kind)
	if err != nil {
		return err
	}
	ob.RecomputePhase(p.phase)

	stored, created, err := p.onboardings.InsertIfAbsent(ctx, ob)
	if err != nil {
		return fmt.Errorf("create onboarding '%s': %w", org.Name, err)
	}
	if !created {
		logger.L(ctx).Debug("onboarding already exists", zap.String("onboarding", stored.Title))
		return nil
	}
	publishEvents(ctx, p.bus, ob)
	p.notify.info(ctx, "Onboarding", stored.Title, fmt.Sprintf("Onboarding document for %s created", stored.Title))
	return nil
}
