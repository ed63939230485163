package crm

import (
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
)

// AggregateTypeLead is the aggregate type for lead events
const AggregateTypeLead = "Lead"

// EventTypeLeadConverted is published once a lead has been converted
const EventTypeLeadConverted = "LeadConverted"

// LeadConvertedEvent is published when a signed lead has produced its
// organization, customer and onboarding records
type LeadConvertedEvent struct {
	shared.BaseDomainEvent
	LeadName         string            `json:"lead_name"`
	CompanyName      string            `json:"company_name"`
	OrganizationKind organization.Kind `json:"organization_kind"`
}

// NewLeadConvertedEvent creates a new LeadConvertedEvent
func NewLeadConvertedEvent(l *Lead) *LeadConvertedEvent {
	return &LeadConvertedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeLeadConverted, AggregateTypeLead, l.ID),
		LeadName:         l.Name,
		CompanyName:      l.CompanyName,
		OrganizationKind: l.OrganizationKind,
	}
}
