package organization

import (
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeOrganization is the aggregate type for organization events
const AggregateTypeOrganization = "Organization"

// Event type constants
const (
	EventTypeOrganizationCreated     = "OrganizationCreated"
	EventTypeOrganizationProvisioned = "OrganizationProvisioned"
)

// OrganizationCreatedEvent is published when a new organization is registered
type OrganizationCreatedEvent struct {
	shared.BaseDomainEvent
	OrganizationID uuid.UUID `json:"organization_id"`
	Kind           Kind      `json:"kind"`
	Name           string    `json:"name"`
	LeadReference  string    `json:"lead_reference,omitempty"`
}

// NewOrganizationCreatedEvent creates a new OrganizationCreatedEvent
func NewOrganizationCreatedEvent(o *Organization) *OrganizationCreatedEvent {
	return &OrganizationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationCreated, AggregateTypeOrganization, o.ID),
		OrganizationID:  o.ID,
		Kind:            o.Kind,
		Name:            o.Name,
		LeadReference:   o.LeadReference,
	}
}

// OrganizationProvisionedEvent is published once the customer and
// onboarding records exist for an organization
type OrganizationProvisionedEvent struct {
	shared.BaseDomainEvent
	OrganizationID uuid.UUID `json:"organization_id"`
	Kind           Kind      `json:"kind"`
	Name           string    `json:"name"`
}

// NewOrganizationProvisionedEvent creates a new OrganizationProvisionedEvent
func NewOrganizationProvisionedEvent(o *Organization) *OrganizationProvisionedEvent {
	return &OrganizationProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationProvisioned, AggregateTypeOrganization, o.ID),
		OrganizationID:  o.ID,
		Kind:            o.Kind,
		Name:            o.Name,
	}
}
