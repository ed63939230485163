package lifecycle

import (
	"context"
	"fmt"

	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ConversionService turns a signed lead into an organization with its
// customer and onboarding
type ConversionService struct {
	leads         crm.LeadRepository
	organizations *OrganizationService
	provisioner   *Provisioner
	bus           shared.EventPublisher
	logger        *zap.Logger
}

// NewConversionService creates a new ConversionService
func NewConversionService(
	leads crm.LeadRepository,
	organizations *OrganizationService,
	provisioner *Provisioner,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *ConversionService {
	return &ConversionService{
		leads:         leads,
		organizations: organizations,
		provisioner:   provisioner,
		bus:           bus,
		logger:        logger,
	}
}

// ConvertLead registers the lead's organization and provisions it. Leads that
// are not signed, or already converted, are left alone. The lead is marked
// converted only after the organization, customer and onboarding all exist.
func (s *ConversionService) ConvertLead(ctx context.Context, lead *crm.Lead) error {
	if !lead.ReadyForConversion() {
		return nil
	}

	ctx = logger.WithDocument(ctx, crm.AggregateTypeLead, lead.Name)
	ctx, span := telemetry.StartServiceSpan(ctx, "lead", "convert",
		"lead", lead.Name, "kind", string(lead.OrganizationKind))
	defer span.End()

	org, err := organization.NewOrganization(lead.OrganizationKind, lead.CompanyName)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	org.SetContact(lead.ContactName, lead.Email, lead.Phone)
	org.LeadReference = lead.Name

	stored, created, err := s.organizations.save(ctx, org, saveOptions{register: true, skipProvision: true})
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("register organization for lead '%s': %w", lead.Name, err)
	}
	if !created {
		logger.L(ctx).Info("organization already registered",
			zap.String("kind", string(stored.Kind)),
			zap.String("organization", stored.Name),
		)
	}

	if err := s.Provision(ctx, stored); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.leads.SetConverted(ctx, lead.ID); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("mark lead '%s' converted: %w", lead.Name, err)
	}
	if err := lead.MarkConverted(); err != nil {
		return err
	}
	publishEvents(ctx, s.bus, lead)

	logger.L(ctx).Info("lead converted",
		zap.String("kind", string(stored.Kind)),
		zap.String("organization", stored.Name),
	)
	return nil
}

// Provision creates the customer and onboarding of an organization
func (s *ConversionService) Provision(ctx context.Context, org *organization.Organization) error {
	return s.provisioner.Provision(ctx, org)
}
