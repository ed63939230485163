package organization

import (
	"strings"
	"time"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Organization is a camp or other organization served by the business.
// It is the hub that leads convert into and that customers and onboardings
// link back to.
type Organization struct {
	shared.BaseAggregateRoot
	Kind                  Kind
	Name                  string
	ContactName           string
	Email                 string
	Phone                 string
	LeadReference         string
	RegistrationSoftware  string
	TaxStatus             TaxStatus
	TaxExemptionNumber    string
	FirstDayOfCamp        *time.Time
	Association           string
	AssociationDiscount   decimal.NullDecimal
	Currency              string
	ShippingAddress       valueobject.Address
	BillingAddress        valueobject.Address
	BillingSameAsShipping bool
	Username              string
	Password              string
	ParentPortalLink      string
	OrderID               string
	ExternalSystemID      string
	SettingsLink          string
	SettingsStatus        SettingsStatus

	// CustomerAndOnboardingCreated flips to true once the customer and
	// onboarding records have been provisioned for this organization.
	CustomerAndOnboardingCreated bool
}

// NewOrganization creates a new organization of the given kind
func NewOrganization(kind Kind, name string) (*Organization, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization kind must be 'Camp' or 'Other Organization'")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 140 {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 140 characters")
	}

	org := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Name:              name,
	}
	if kind.IsCamp() {
		org.SettingsStatus = SettingsStatusUnlinked
	}
	org.AddDomainEvent(NewOrganizationCreatedEvent(org))
	return org, nil
}

// SetContact replaces the primary contact details
func (o *Organization) SetContact(contactName, email, phone string) {
	o.ContactName = strings.TrimSpace(contactName)
	o.Email = strings.TrimSpace(email)
	o.Phone = strings.TrimSpace(phone)
}

// Validate checks field-level invariants before a write
func (o *Organization) Validate() error {
	if !o.Kind.IsValid() {
		return shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization kind must be 'Camp' or 'Other Organization'")
	}
	if strings.TrimSpace(o.Name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if !o.TaxStatus.IsValid() {
		return shared.NewDomainError("INVALID_TAX_STATUS", "Tax status must be Exempt, Taxed or Pending")
	}
	if o.AssociationDiscount.Valid && o.AssociationDiscount.Decimal.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Association discount cannot be negative")
	}
	return nil
}

// Country returns the country used for currency derivation:
// shipping country first, billing country otherwise
func (o *Organization) Country() string {
	if o.ShippingAddress.Country != "" {
		return o.ShippingAddress.Country
	}
	return o.BillingAddress.Country
}

// NeedsCurrency reports whether the currency should be derived on this save.
// prev is nil for organizations that have not been stored yet.
func (o *Organization) NeedsCurrency(prev *Organization) bool {
	if o.Country() == "" {
		return false
	}
	if prev == nil {
		return true
	}
	return prev.ShippingAddress.Country != o.ShippingAddress.Country
}

// NeedsDiscount reports whether the association discount should be looked up
func (o *Organization) NeedsDiscount(prev *Organization) bool {
	if prev == nil {
		return true
	}
	return o.Association != "" && prev.Association != o.Association
}

// ApplyCurrency sets the derived currency code
func (o *Organization) ApplyCurrency(code string) {
	o.Currency = strings.ToUpper(strings.TrimSpace(code))
}

// ApplyDiscount sets the derived association discount
func (o *Organization) ApplyDiscount(d decimal.Decimal) {
	o.AssociationDiscount = decimal.NullDecimal{Decimal: d, Valid: true}
}

// RefreshSettingsStatus marks a camp as linked once it references its settings record
func (o *Organization) RefreshSettingsStatus() {
	if !o.Kind.IsCamp() {
		return
	}
	if o.SettingsLink != "" {
		o.SettingsStatus = SettingsStatusLinked
	} else if o.SettingsStatus == "" {
		o.SettingsStatus = SettingsStatusUnlinked
	}
}

// MarkProvisioned records that the customer and onboarding exist.
// The flag only ever moves from false to true.
func (o *Organization) MarkProvisioned() error {
	if o.CustomerAndOnboardingCreated {
		return shared.NewDomainError("ALREADY_PROVISIONED", "Customer and onboarding were already created for this organization")
	}
	o.CustomerAndOnboardingCreated = true
	o.AddDomainEvent(NewOrganizationProvisionedEvent(o))
	return nil
}

// Clone returns a deep copy, used as the pre-save snapshot
func (o *Organization) Clone() *Organization {
	c := *o
	if o.FirstDayOfCamp != nil {
		d := *o.FirstDayOfCamp
		c.FirstDayOfCamp = &d
	}
	c.ClearDomainEvents()
	return &c
}
