package crm

import (
	"strings"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
)

// LeadPhase is the sales pipeline stage of a lead
type LeadPhase string

const (
	LeadPhaseNew       LeadPhase = "New"
	LeadPhaseContacted LeadPhase = "Contacted"
	LeadPhaseQualified LeadPhase = "Qualified"
	LeadPhaseProposal  LeadPhase = "Proposal"
	LeadPhaseSigned    LeadPhase = "Signed"
	LeadPhaseLost      LeadPhase = "Lost"
)

// IsValid reports whether p is a known phase
func (p LeadPhase) IsValid() bool {
	switch p {
	case LeadPhaseNew, LeadPhaseContacted, LeadPhaseQualified, LeadPhaseProposal, LeadPhaseSigned, LeadPhaseLost:
		return true
	}
	return false
}

// Lead is a prospective organization moving through the sales pipeline
type Lead struct {
	shared.BaseAggregateRoot
	Name             string
	CompanyName      string
	ContactName      string
	Email            string
	Phone            string
	OrganizationKind organization.Kind
	Phase            LeadPhase
	Converted        bool
}

// NewLead creates a new lead in the New phase
func NewLead(name, companyName string, kind organization.Kind) (*Lead, error) {
	name = strings.TrimSpace(name)
	companyName = strings.TrimSpace(companyName)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Lead company name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization type must be 'Camp' or 'Other Organization'")
	}
	return &Lead{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CompanyName:       companyName,
		OrganizationKind:  kind,
		Phase:             LeadPhaseNew,
	}, nil
}

// Validate checks field-level invariants before a write
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if strings.TrimSpace(l.CompanyName) == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Lead company name cannot be empty")
	}
	if !l.OrganizationKind.IsValid() {
		return shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization type must be 'Camp' or 'Other Organization'")
	}
	if !l.Phase.IsValid() {
		return shared.NewDomainError("INVALID_PHASE", "Unknown lead phase '"+string(l.Phase)+"'")
	}
	return nil
}

// ReadyForConversion reports whether the lead is signed and not yet converted
func (l *Lead) ReadyForConversion() bool {
	return l.Phase == LeadPhaseSigned && !l.Converted
}

// MarkConverted flips the converted flag. It can only happen once and only
// for a signed lead.
func (l *Lead) MarkConverted() error {
	if l.Converted {
		return shared.NewDomainError("ALREADY_CONVERTED", "Lead has already been converted")
	}
	if l.Phase != LeadPhaseSigned {
		return shared.NewDomainError("INVALID_STATE", "Only signed leads can be converted")
	}
	l.Converted = true
	l.AddDomainEvent(NewLeadConvertedEvent(l))
	return nil
}
