package handler

import (
	"time"

	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
)

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"customer_name"`
	LeadReference         string                 `json:"lead_reference,omitempty"`
	CustomerType          string                 `json:"customer_type"`
	CampLink              string                 `json:"camp_link,omitempty"`
	OtherOrganizationLink string                 `json:"other_organization_link,omitempty"`
	TaxStatus             string                 `json:"tax_status"`
	TaxExemptionNumber    string                 `json:"tax_exemption_number"`
	Discount              *string                `json:"discount"`
	BillingAddress        valueobject.Address    `json:"billing_address"`
	Email                 string                 `json:"email"`
	Phone                 string                 `json:"phone"`
	DefaultCurrency       string                 `json:"default_currency"`
	Accounts              []partner.AccountEntry `json:"accounts"`
	Version               int                    `json:"version"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

func toCustomerResponse(c *partner.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:                    c.ID.String(),
		Name:                  c.Name,
		LeadReference:         c.LeadReference,
		CustomerType:          string(c.CustomerType),
		CampLink:              c.CampLink,
		OtherOrganizationLink: c.OtherOrganizationLink,
		TaxStatus:             string(c.TaxStatus),
		TaxExemptionNumber:    c.TaxExemptionNumber,
		BillingAddress:        c.BillingAddress,
		Email:                 c.Email,
		Phone:                 c.Phone,
		DefaultCurrency:       c.DefaultCurrency,
		Accounts:              c.Accounts,
		Version:               c.Version,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
	if resp.Accounts == nil {
		resp.Accounts = []partner.AccountEntry{}
	}
	if c.Discount.Valid {
		d := c.Discount.Decimal.String()
		resp.Discount = &d
	}
	return resp
}
