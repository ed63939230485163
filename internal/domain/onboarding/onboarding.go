package onboarding

import (
	"strings"
	"time"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
)

// Details are the editable fields an onboarding mirrors onto its organization
type Details struct {
	RegistrationMethod    string
	ExemptStatus          organization.TaxStatus
	TaxExemptID           string
	FirstDayOfCamp        *time.Time
	Association           string
	ShippingAddress       valueobject.Address
	BillingAddress        valueobject.Address
	BillingSameAsShipping bool
	POCName               string
	POCEmail              string
	POCPhone              string
	Username              string
	Password              string
	ParentPortalLink      string
	OrderID               string
	ExternalSystemID      string
}

// Onboarding is the checklist that walks a new organization to go-live.
// Its title is the organization name.
type Onboarding struct {
	shared.BaseAggregateRoot
	Title            string
	OrganizationKind organization.Kind
	Phase            Phase
	Milestones       Milestones
	Details          Details
}

// NewOnboarding creates an onboarding for an organization. Camp-only
// milestones are pre-marked for other organizations so they cannot block
// phase advancement.
func NewOnboarding(title string, kind organization.Kind) (*Onboarding, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Onboarding title cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization type must be 'Camp' or 'Other Organization'")
	}

	ob := &Onboarding{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		OrganizationKind:  kind,
		Phase:             Stage1,
	}
	if !kind.IsCamp() {
		ob.Milestones.RegistrationIdentified = true
		ob.Milestones.FirstDayOfCampProvided = true
	}
	ob.AddDomainEvent(NewOnboardingCreatedEvent(ob))
	return ob, nil
}

// Validate checks field-level invariants before a write
func (o *Onboarding) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Onboarding title cannot be empty")
	}
	if !o.OrganizationKind.IsValid() {
		return shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization type must be 'Camp' or 'Other Organization'")
	}
	if !o.Details.ExemptStatus.IsValid() {
		return shared.NewDomainError("INVALID_TAX_STATUS", "Exempt status must be Exempt, Taxed or Pending")
	}
	return nil
}

// RaiseMilestones sets every flag raised in m. Flags are never cleared.
func (o *Onboarding) RaiseMilestones(m Milestones) {
	o.Milestones = o.Milestones.Raise(m)
}

// RecomputePhase derives the phase from the current milestones and reports
// whether it moved
func (o *Onboarding) RecomputePhase(compute PhaseFunc) bool {
	next := compute(o.Milestones)
	if next == o.Phase {
		return false
	}
	prev := o.Phase
	o.Phase = next
	o.AddDomainEvent(NewOnboardingPhaseChangedEvent(o, prev, next))
	return true
}

// Clone returns a deep copy, used as the pre-save snapshot
func (o *Onboarding) Clone() *Onboarding {
	c := *o
	if o.Details.FirstDayOfCamp != nil {
		d := *o.Details.FirstDayOfCamp
		c.Details.FirstDayOfCamp = &d
	}
	c.ClearDomainEvents()
	return &c
}
