package partner

import (
	"strings"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CustomerType represents the type of customer
type CustomerType string

const (
	CustomerTypeCompany    CustomerType = "Company"
	CustomerTypeIndividual CustomerType = "Individual"
)

// AccountEntry binds a customer to a receivable account for one company
type AccountEntry struct {
	Company string `json:"company"`
	Account string `json:"account"`
}

// Customer is the billing party for an organization.
// Exactly one of CampLink and OtherOrganizationLink is set.
type Customer struct {
	shared.BaseAggregateRoot
	Name                  string
	LeadReference         string
	CustomerType          CustomerType
	CampLink              string
	OtherOrganizationLink string
	TaxStatus             organization.TaxStatus
	TaxExemptionNumber    string
	Discount              decimal.NullDecimal
	BillingAddress        valueobject.Address
	Email                 string
	Phone                 string
	DefaultCurrency       string
	Accounts              []AccountEntry
}

// NewCustomer creates a company customer with no organization link yet
func NewCustomer(name string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CustomerType:      CustomerTypeCompany,
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// NewCustomerForOrganization creates the customer that bills an organization
func NewCustomerForOrganization(org *organization.Organization) (*Customer, error) {
	if org == nil {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c, err := NewCustomer(org.Name)
	if err != nil {
		return nil, err
	}
	c.LeadReference = org.LeadReference
	c.Email = org.Email
	c.Phone = org.Phone
	c.LinkTo(org.Kind, org.Name)
	return c, nil
}

// LinkTo points the customer at an organization, clearing the other link
func (c *Customer) LinkTo(kind organization.Kind, name string) {
	if kind.IsCamp() {
		c.CampLink, c.OtherOrganizationLink = name, ""
		return
	}
	c.CampLink, c.OtherOrganizationLink = "", name
}

// OrganizationLink returns the kind and name of the linked organization
func (c *Customer) OrganizationLink() (organization.Kind, string) {
	if c.CampLink != "" {
		return organization.KindCamp, c.CampLink
	}
	return organization.KindOtherOrganization, c.OtherOrganizationLink
}

// Validate checks field-level invariants before a write
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if (c.CampLink == "") == (c.OtherOrganizationLink == "") {
		return shared.NewDomainError("INVALID_ORGANIZATION_LINK", "Customer must link to exactly one camp or other organization")
	}
	if !c.TaxStatus.IsValid() {
		return shared.NewDomainError("INVALID_TAX_STATUS", "Tax status must be Exempt, Taxed or Pending")
	}
	return nil
}

// SyncFromOrganization copies tax, discount and contact details from org and
// recomputes the billing address. A complete billing address on the
// organization wins, then a complete shipping address; otherwise the
// customer's billing address is left as it is.
func (c *Customer) SyncFromOrganization(org *organization.Organization) {
	c.TaxStatus = org.TaxStatus
	c.TaxExemptionNumber = org.TaxExemptionNumber
	c.Discount = org.AssociationDiscount
	c.Email = org.Email
	c.Phone = org.Phone

	switch {
	case org.BillingAddress.Complete():
		c.BillingAddress = org.BillingAddress
	case org.ShippingAddress.Complete():
		c.BillingAddress = org.ShippingAddress
	}
}

// CurrencyDiffers reports whether code differs from the default currency
func (c *Customer) CurrencyDiffers(code string) bool {
	return code != "" && !strings.EqualFold(c.DefaultCurrency, code)
}

// SetDefaultCurrency changes the default currency
func (c *Customer) SetDefaultCurrency(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == c.DefaultCurrency {
		return
	}
	prev := c.DefaultCurrency
	c.DefaultCurrency = code
	c.AddDomainEvent(NewCustomerCurrencyChangedEvent(c, prev, code))
}

// HasAccount reports whether an identical account entry exists
func (c *Customer) HasAccount(company, account string) bool {
	for _, e := range c.Accounts {
		if e.Company == company && e.Account == account {
			return true
		}
	}
	return false
}

// AttachAccount appends a receivable account entry. Identical entries are
// not appended twice; the return value reports whether one was added.
func (c *Customer) AttachAccount(company, account string) bool {
	if c.HasAccount(company, account) {
		return false
	}
	c.Accounts = append(c.Accounts, AccountEntry{Company: company, Account: account})
	c.AddDomainEvent(NewReceivableAccountAttachedEvent(c, company, account))
	return true
}
