package handler

import (
	"time"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
)

// OrganizationResponse represents an organization in API responses.
// The portal password is never returned.
type OrganizationResponse struct {
	ID                           string              `json:"id"`
	OrganizationType             string              `json:"organization_type"`
	Name                         string              `json:"organization_name"`
	ContactName                  string              `json:"contact_name"`
	Email                        string              `json:"email"`
	Phone                        string              `json:"phone"`
	LeadReference                string              `json:"lead_reference,omitempty"`
	RegistrationSoftware         string              `json:"registration_software"`
	TaxStatus                    string              `json:"tax_exempt"`
	TaxExemptionNumber           string              `json:"tax_exemption_number"`
	FirstDayOfCamp               string              `json:"first_day_of_camp,omitempty"`
	Association                  string              `json:"association"`
	AssociationDiscount          *string             `json:"association_discount"`
	Currency                     string              `json:"currency"`
	ShippingAddress              valueobject.Address `json:"shipping_address"`
	BillingAddress               valueobject.Address `json:"billing_address"`
	BillingSameAsShipping        bool                `json:"billing_same_as_shipping"`
	Username                     string              `json:"username"`
	ParentPortalLink             string              `json:"parent_portal_link"`
	OrderID                      string              `json:"order_id"`
	ExternalSystemID             string              `json:"external_system_id"`
	SettingsLink                 string              `json:"settings_link,omitempty"`
	SettingsStatus               string              `json:"settings_status,omitempty"`
	CustomerAndOnboardingCreated bool                `json:"customer_and_onboarding_created"`
	Version                      int                 `json:"version"`
	CreatedAt                    time.Time           `json:"created_at"`
	UpdatedAt                    time.Time           `json:"updated_at"`
}

func toOrganizationResponse(o *organization.Organization) OrganizationResponse {
	resp := OrganizationResponse{
		ID:                           o.ID.String(),
		OrganizationType:             string(o.Kind),
		Name:                         o.Name,
		ContactName:                  o.ContactName,
		Email:                        o.Email,
		Phone:                        o.Phone,
		LeadReference:                o.LeadReference,
		RegistrationSoftware:         o.RegistrationSoftware,
		TaxStatus:                    string(o.TaxStatus),
		TaxExemptionNumber:           o.TaxExemptionNumber,
		FirstDayOfCamp:               formatDate(o.FirstDayOfCamp),
		Association:                  o.Association,
		Currency:                     o.Currency,
		ShippingAddress:              o.ShippingAddress,
		BillingAddress:               o.BillingAddress,
		BillingSameAsShipping:        o.BillingSameAsShipping,
		Username:                     o.Username,
		ParentPortalLink:             o.ParentPortalLink,
		OrderID:                      o.OrderID,
		ExternalSystemID:             o.ExternalSystemID,
		SettingsLink:                 o.SettingsLink,
		SettingsStatus:               string(o.SettingsStatus),
		CustomerAndOnboardingCreated: o.CustomerAndOnboardingCreated,
		Version:                      o.Version,
		CreatedAt:                    o.CreatedAt,
		UpdatedAt:                    o.UpdatedAt,
	}
	if o.AssociationDiscount.Valid {
		d := o.AssociationDiscount.Decimal.String()
		resp.AssociationDiscount = &d
	}
	return resp
}
