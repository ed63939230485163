package handler

import (
	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles camp and other organization endpoints
type OrganizationHandler struct {
	BaseHandler
	organizationService *lifecycle.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(organizationService *lifecycle.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// OrganizationFields are the editable organization fields. Nil leaves a
// field as it is; an empty string clears it.
type OrganizationFields struct {
	ContactName           *string              `json:"contact_name" binding:"omitempty,max=140"`
	Email                 *string              `json:"email" binding:"omitempty,email"`
	Phone                 *string              `json:"phone" binding:"omitempty,max=40"`
	RegistrationSoftware  *string              `json:"registration_software" binding:"omitempty,max=140"`
	TaxStatus             *string              `json:"tax_exempt" binding:"omitempty,oneof=Exempt Taxed Pending"`
	TaxExemptionNumber    *string              `json:"tax_exemption_number" binding:"omitempty,max=140"`
	FirstDayOfCamp        *string              `json:"first_day_of_camp"`
	Association           *string              `json:"association" binding:"omitempty,max=140"`
	ShippingAddress       *valueobject.Address `json:"shipping_address"`
	BillingAddress        *valueobject.Address `json:"billing_address"`
	BillingSameAsShipping *bool                `json:"billing_same_as_shipping"`
	Username              *string              `json:"username" binding:"omitempty,max=140"`
	Password              *string              `json:"password" binding:"omitempty,max=140"`
	ParentPortalLink      *string              `json:"parent_portal_link" binding:"omitempty,url"`
	OrderID               *string              `json:"order_id" binding:"omitempty,max=140"`
	ExternalSystemID      *string              `json:"external_system_id" binding:"omitempty,max=140"`
	SettingsLink          *string              `json:"settings_link" binding:"omitempty,max=140"`
}

// CreateOrganizationRequest represents a request to create an organization
type CreateOrganizationRequest struct {
	OrganizationType string `json:"organization_type" binding:"required,oneof=Camp 'Other Organization'"`
	Name             string `json:"organization_name" binding:"required,max=140"`
	LeadReference    string `json:"lead_reference" binding:"max=140"`
	OrganizationFields
}

// UpdateOrganizationRequest represents a request to update an organization.
// Version, when set, must match the stored version.
type UpdateOrganizationRequest struct {
	Version int `json:"version" binding:"gte=0"`
	OrganizationFields
}

// apply copies the set fields onto org
func (f OrganizationFields) apply(org *organization.Organization) error {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&org.ContactName, f.ContactName)
	setString(&org.Email, f.Email)
	setString(&org.Phone, f.Phone)
	setString(&org.RegistrationSoftware, f.RegistrationSoftware)
	setString(&org.TaxExemptionNumber, f.TaxExemptionNumber)
	setString(&org.Association, f.Association)
	setString(&org.Username, f.Username)
	setString(&org.Password, f.Password)
	setString(&org.ParentPortalLink, f.ParentPortalLink)
	setString(&org.OrderID, f.OrderID)
	setString(&org.ExternalSystemID, f.ExternalSystemID)
	setString(&org.SettingsLink, f.SettingsLink)

	if f.TaxStatus != nil {
		org.TaxStatus = organization.TaxStatus(*f.TaxStatus)
	}
	if f.FirstDayOfCamp != nil {
		day, err := parseDate(*f.FirstDayOfCamp)
		if err != nil {
			return err
		}
		org.FirstDayOfCamp = day
	}
	if f.ShippingAddress != nil {
		org.ShippingAddress = f.ShippingAddress.Normalized()
	}
	if f.BillingAddress != nil {
		org.BillingAddress = f.BillingAddress.Normalized()
	}
	if f.BillingSameAsShipping != nil {
		org.BillingSameAsShipping = *f.BillingSameAsShipping
	}
	return nil
}

// Create saves a new organization and provisions its customer and onboarding
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	org, err := organization.NewOrganization(organization.Kind(req.OrganizationType), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	org.LeadReference = req.LeadReference
	if err := req.apply(org); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.organizationService.Save(c.Request.Context(), org)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toOrganizationResponse(result.Organization), result.Notices)
}

// Update edits an organization
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "organization")
	if !ok {
		return
	}
	var req UpdateOrganizationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	org, err := h.organizationService.GetByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Version != 0 {
		org.Version = req.Version
	}
	if err := req.apply(org); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.organizationService.Save(ctx, org)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithNotices(c, toOrganizationResponse(result.Organization), result.Notices)
}

// GetByID returns an organization
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "organization")
	if !ok {
		return
	}
	org, err := h.organizationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrganizationResponse(org))
}

// List returns organizations, optionally of one organization_type
func (h *OrganizationHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	kind := organization.Kind(c.Query("organization_type"))
	if kind != "" && !kind.IsValid() {
		h.HandleError(c, shared.NewDomainError("INVALID_ORGANIZATION_KIND", "Organization kind must be 'Camp' or 'Other Organization'"))
		return
	}

	orgs, total, err := h.organizationService.List(c.Request.Context(), kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		items[i] = toOrganizationResponse(&orgs[i])
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}
